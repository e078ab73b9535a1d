package errors

import "errors"

var (
	ErrInvalidSize  = errors.New("invalid board size")
	ErrInvalidKomi  = errors.New("komi must be an integer or a half-integer")
	ErrOutOfBounds  = errors.New("coordinates are out of bounds")
	ErrOccupied     = errors.New("intersection is occupied")
	ErrKoViolation  = errors.New("immediate recapture of a ko is forbidden")
	ErrSuicide      = errors.New("move leaves its own group without liberties")
	ErrGameOver     = errors.New("game is over")
	ErrGameNotOver  = errors.New("game is not over")
	ErrNoHistory    = errors.New("nothing to undo")
	ErrNoFuture     = errors.New("nothing to redo")
	ErrImport       = errors.New("malformed game state")
	ErrGameNotFound = errors.New("game not found")
	ErrInternal     = errors.New("internal error")
)

// Reason is the tag a presentation layer switches on.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonInvalidSize  Reason = "InvalidSize"
	ReasonInvalidKomi  Reason = "InvalidKomi"
	ReasonOutOfBounds  Reason = "OutOfBounds"
	ReasonOccupied     Reason = "Occupied"
	ReasonKoViolation  Reason = "KoViolation"
	ReasonSuicide      Reason = "Suicide"
	ReasonGameOver     Reason = "GameOver"
	ReasonGameNotOver  Reason = "GameNotOver"
	ReasonNoHistory    Reason = "NoHistory"
	ReasonNoFuture     Reason = "NoFuture"
	ReasonImportError  Reason = "ImportError"
	ReasonGameNotFound Reason = "GameNotFound"
	ReasonInternal     Reason = "Internal"
)

var reasons = []struct {
	err    error
	reason Reason
}{
	{ErrInvalidSize, ReasonInvalidSize},
	{ErrInvalidKomi, ReasonInvalidKomi},
	{ErrOutOfBounds, ReasonOutOfBounds},
	{ErrOccupied, ReasonOccupied},
	{ErrKoViolation, ReasonKoViolation},
	{ErrSuicide, ReasonSuicide},
	{ErrGameOver, ReasonGameOver},
	{ErrGameNotOver, ReasonGameNotOver},
	{ErrNoHistory, ReasonNoHistory},
	{ErrNoFuture, ReasonNoFuture},
	{ErrImport, ReasonImportError},
	{ErrGameNotFound, ReasonGameNotFound},
}

// ReasonOf maps err to its reason tag. Errors that wrap none of the
// sentinels above are reported as ReasonInternal, nil as ReasonNone.
func ReasonOf(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ReasonInternal
}

// IsInputError reports whether err was caused by caller-correctable input.
func IsInputError(err error) bool {
	switch ReasonOf(err) {
	case ReasonInvalidSize, ReasonInvalidKomi, ReasonOutOfBounds, ReasonImportError:
		return true
	}
	return false
}

// IsRuleViolation reports whether err rejects a move by the rules of Go.
func IsRuleViolation(err error) bool {
	switch ReasonOf(err) {
	case ReasonOccupied, ReasonKoViolation, ReasonSuicide:
		return true
	}
	return false
}

// IsStateError reports whether err rejects a command the current game
// state does not allow.
func IsStateError(err error) bool {
	switch ReasonOf(err) {
	case ReasonGameOver, ReasonGameNotOver, ReasonNoHistory, ReasonNoFuture:
		return true
	}
	return false
}
