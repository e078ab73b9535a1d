package game

import (
	"sync"

	"go_engine/internal/domain/game"
)

const streamBuffer = 16

// broker fans committed states out to the viewers of each game. A viewer
// that falls behind by more than streamBuffer events misses the rest.
type broker struct {
	mu   sync.Mutex
	subs map[string]map[chan game.StreamEvent]struct{}
}

func newBroker() *broker {
	return &broker{subs: make(map[string]map[chan game.StreamEvent]struct{})}
}

func (b *broker) subscribe(gameID string) (chan game.StreamEvent, func()) {
	ch := make(chan game.StreamEvent, streamBuffer)

	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan game.StreamEvent]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[gameID][ch]; !ok {
			return
		}
		delete(b.subs[gameID], ch)
		if len(b.subs[gameID]) == 0 {
			delete(b.subs, gameID)
		}
		close(ch)
	}
	return ch, cancel
}

// closeGame ends every subscription to gameID. Later cancels are no-ops.
func (b *broker) closeGame(gameID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[gameID] {
		close(ch)
	}
	delete(b.subs, gameID)
}

func (b *broker) publish(gameID string, ev game.StreamEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[gameID] {
		deliver(ch, ev)
	}
}

func (b *broker) count(gameID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[gameID])
}

func deliver(ch chan game.StreamEvent, ev game.StreamEvent) {
	select {
	case ch <- ev:
	default:
	}
}
