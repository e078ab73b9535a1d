package enginerpc

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	errs "go_engine/internal/errors"
)

// Status converts an engine or service error into a gRPC status carrying
// the reason tag as an ErrorInfo detail.
func Status(err error) *status.Status {
	reason := errs.ReasonOf(err)
	code := codes.Internal
	msg := "internal error"
	switch {
	case errs.IsInputError(err):
		code = codes.InvalidArgument
	case reason == errs.ReasonGameNotFound:
		code = codes.NotFound
	case errs.IsRuleViolation(err), errs.IsStateError(err):
		code = codes.FailedPrecondition
	}
	if code != codes.Internal {
		msg = err.Error()
	}

	st := status.New(code, msg)
	withInfo, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: string(reason),
		Domain: ErrorDomain,
	})
	if detailErr != nil {
		return st
	}
	return withInfo
}

// ReasonOf extracts the engine reason tag from an error returned by a
// GameServiceClient. Errors without one map to errs.ReasonInternal.
func ReasonOf(err error) errs.Reason {
	if err == nil {
		return errs.ReasonNone
	}
	st, ok := status.FromError(err)
	if !ok {
		return errs.ReasonInternal
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return errs.Reason(info.GetReason())
		}
	}
	return errs.ReasonInternal
}
