package tools

import (
	"context"
	"sync"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultActionTTL is how long a prepared action stays confirmable.
const DefaultActionTTL = 15 * time.Minute

// PendingAction is a prepared-but-uncommitted write. Confirm executes the
// commit closure; until then nothing has touched a store.
type PendingAction struct {
	ID        string                 `json:"action_id"`
	UserID    string                 `json:"user_id"`
	Type      string                 `json:"action_type"`
	Data      map[string]interface{} `json:"action_data"`
	Message   string                 `json:"confirmation_message"`
	CreatedAt time.Time              `json:"created_at"`

	commit func(ctx context.Context) error
}

// ActionStore holds prepared actions until they are confirmed, cancelled
// or expire.
type ActionStore struct {
	mu      sync.Mutex
	actions map[string]*PendingAction
	ttl     time.Duration
	now     func() time.Time
}

// NewActionStore creates a store with the given TTL. A non-positive TTL
// falls back to the default.
func NewActionStore(ttl time.Duration) *ActionStore {
	if ttl <= 0 {
		ttl = DefaultActionTTL
	}
	return &ActionStore{
		actions: make(map[string]*PendingAction),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Prepare records a pending action and returns it with a fresh ID.
func (s *ActionStore) Prepare(userID, actionType, message string, data map[string]interface{}, commit func(ctx context.Context) error) *PendingAction {
	a := &PendingAction{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      actionType,
		Data:      data,
		Message:   message,
		CreatedAt: s.now(),
		commit:    commit,
	}
	s.mu.Lock()
	s.actions[a.ID] = a
	s.mu.Unlock()
	return a
}

// Confirm commits the action and removes it. A stale action comes back
// as domain.ErrActionExpired; absent or foreign ones as
// domain.ErrActionNotFound.
func (s *ActionStore) Confirm(ctx context.Context, userID, actionID string) (*PendingAction, error) {
	s.mu.Lock()
	a, ok := s.actions[actionID]
	if ok && a.UserID != userID {
		ok = false
	}
	expired := false
	if ok {
		delete(s.actions, actionID)
		expired = s.now().Sub(a.CreatedAt) > s.ttl
	}
	s.mu.Unlock()

	if !ok {
		return nil, domain.ErrActionNotFound
	}
	if expired {
		return nil, domain.ErrActionExpired
	}
	if err := a.commit(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Cancel drops a pending action without committing.
func (s *ActionStore) Cancel(userID, actionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.actions[actionID]
	if !ok || a.UserID != userID {
		return domain.ErrActionNotFound
	}
	delete(s.actions, actionID)
	return nil
}

// Sweep removes expired actions. Called periodically by the maintenance
// job.
func (s *ActionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, a := range s.actions {
		if a.CreatedAt.Before(cutoff) {
			delete(s.actions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("Swept expired pending actions")
	}
	return removed
}

// Len returns the number of pending actions.
func (s *ActionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}
