// Package undo remembers the single most recent reversible mutation per
// owner. Each new mutation overwrites the slot; taking the slot consumes it.
package undo

import (
	"context"
	"sync"

	"taskbot/internal/store"
)

type Kind string

const (
	KindCreate  Kind = "create"
	KindDone    Kind = "done"
	KindDoneAll Kind = "done_all"
	KindDelete  Kind = "delete"
	KindEdit    Kind = "edit"
)

// Action captures enough state to reverse one mutation. Which fields are
// set depends on Kind: create/done use TaskID, done_all uses TaskIDs,
// delete snapshots the whole record, edit keeps the changed column and its
// previous value.
type Action struct {
	Kind     Kind        `json:"kind"`
	TaskID   int64       `json:"task_id,omitempty"`
	TaskIDs  []int64     `json:"task_ids,omitempty"`
	Field    string      `json:"field,omitempty"`
	OldValue string      `json:"old_value,omitempty"`
	Snapshot *store.Task `json:"snapshot,omitempty"`
}

// Store holds at most one pending action per owner. Take is one-shot: it
// returns nil once the slot is empty.
type Store interface {
	Put(ctx context.Context, ownerID int64, action Action) error
	Take(ctx context.Context, ownerID int64) (*Action, error)
}

// MemoryStore keeps undo slots in process memory, guarded for concurrent
// handlers sharing the owner map.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[int64]Action
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[int64]Action)}
}

func (s *MemoryStore) Put(_ context.Context, ownerID int64, action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[ownerID] = action
	return nil
}

func (s *MemoryStore) Take(_ context.Context, ownerID int64) (*Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	action, ok := s.slots[ownerID]
	if !ok {
		return nil, nil
	}
	delete(s.slots, ownerID)
	return &action, nil
}
