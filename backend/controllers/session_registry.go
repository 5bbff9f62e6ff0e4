package controllers

import (
	"sync"
	"time"

	"resetclub/backend/quiz"

	"github.com/google/uuid"
)

type hostedSession struct {
	owner    uint
	session  *quiz.Session
	lastSeen time.Time
}

// SessionRegistry keeps the quiz sessions of every learner in memory. One
// mutex serializes all access, so each hosted session sees a single actor.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*hostedSession
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionRegistry(ttl time.Duration) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*hostedSession),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Add stores s for owner and returns its id. Idle sessions are swept first.
func (r *SessionRegistry) Add(owner uint, s *quiz.Session) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	id := uuid.NewString()
	r.sessions[id] = &hostedSession{owner: owner, session: s, lastSeen: now}
	return id
}

// Do runs fn on the session under the registry lock.
func (r *SessionRegistry) Do(id string, owner uint, fn func(s *quiz.Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := r.lookupLocked(id, owner)
	if err != nil {
		return err
	}
	h.lastSeen = r.now()
	return fn(h.session)
}

func (r *SessionRegistry) Remove(id string, owner uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookupLocked(id, owner); err != nil {
		return err
	}
	delete(r.sessions, id)
	return nil
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) lookupLocked(id string, owner uint) (*hostedSession, error) {
	h, ok := r.sessions[id]
	if !ok || r.expired(h, r.now()) {
		delete(r.sessions, id)
		return nil, quiz.ErrSessionNotFound
	}
	if h.owner != owner {
		return nil, quiz.ErrSessionOwner
	}
	return h, nil
}

func (r *SessionRegistry) sweepLocked(now time.Time) {
	for id, h := range r.sessions {
		if r.expired(h, now) {
			delete(r.sessions, id)
		}
	}
}

func (r *SessionRegistry) expired(h *hostedSession, now time.Time) bool {
	return r.ttl > 0 && now.Sub(h.lastSeen) > r.ttl
}
