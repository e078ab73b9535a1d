// Package gametest provides an in-memory game store for tests of the
// layers built on the game use case.
package gametest

import (
	"context"
	"sync"

	"go_engine/internal/domain/game"
	errs "go_engine/internal/errors"
)

// MemStore keeps snapshots and archived games in maps.
type MemStore struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	archived  map[string]game.ArchivedGame
	saveErr   error
}

func NewMemStore() *MemStore {
	return &MemStore{
		snapshots: make(map[string][]byte),
		archived:  make(map[string]game.ArchivedGame),
	}
}

// FailSaves makes every following SaveSnapshot return err. A nil err
// restores normal behavior.
func (m *MemStore) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

func (m *MemStore) HasSnapshot(gameID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.snapshots[gameID]
	return ok
}

func (m *MemStore) SaveSnapshot(_ context.Context, gameID string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshots[gameID] = append([]byte(nil), doc...)
	return nil
}

func (m *MemStore) LoadSnapshot(_ context.Context, gameID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.snapshots[gameID]
	if !ok {
		return nil, errs.ErrGameNotFound
	}
	return doc, nil
}

func (m *MemStore) DeleteSnapshot(_ context.Context, gameID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, gameID)
	return nil
}

func (m *MemStore) ArchiveGame(_ context.Context, archived game.ArchivedGame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.archived[archived.GameID] = archived
	return nil
}

func (m *MemStore) GetArchivedGame(_ context.Context, gameID string) (game.ArchivedGame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.archived[gameID]
	if !ok {
		return game.ArchivedGame{}, errs.ErrGameNotFound
	}
	return a, nil
}
