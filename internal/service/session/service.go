package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"metalmarket-storefront/internal/domain"
)

// SlotName is the storage slot sessions are persisted under.
const SlotName = "session"

type slotRepo interface {
	Read(ctx context.Context, ownerID, name string) ([]byte, error)
	Write(ctx context.Context, ownerID, name string, payload []byte) error
	Delete(ctx context.Context, ownerID, name string) error
}

// Service tracks the authenticated identity and bearer token per owner. The
// credential itself is issued by the upstream auth endpoint; this store only
// holds and persists it. A corrupt persisted session degrades to logged out.
type Service struct {
	slots  slotRepo
	logger *log.Logger

	mu       sync.Mutex
	sessions map[string]domain.Session
	subs     map[int]func(ownerID string, s domain.Session)
	nextSub  int
}

func New(slots slotRepo, logger *log.Logger) *Service {
	return &Service{
		slots:    slots,
		logger:   logger,
		sessions: make(map[string]domain.Session),
		subs:     make(map[int]func(string, domain.Session)),
	}
}

// Subscribe registers fn to run after sign-in and sign-out. The returned
// func unregisters it. fn runs outside the service lock, so it may call back
// into the service.
func (s *Service) Subscribe(fn func(ownerID string, sess domain.Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Current returns the session for ownerID, restoring it from storage on
// first access. The zero session means logged out.
func (s *Service) Current(ctx context.Context, ownerID string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, ownerID)
}

// Token returns the bearer token for ownerID, empty when logged out or when
// the session cannot be read. Callers sending upstream requests treat an
// absent token as "send unauthenticated".
func (s *Service) Token(ctx context.Context, ownerID string) string {
	sess, err := s.Current(ctx, ownerID)
	if err != nil {
		s.logger.Printf("session read for %s failed, proceeding unauthenticated: %v", ownerID, err)
		return ""
	}
	return sess.Token
}

// SignIn stores the token and identity returned by the upstream login.
func (s *Service) SignIn(ctx context.Context, ownerID, token string, user domain.User) (domain.Session, error) {
	sess := domain.Session{Token: token, User: &user}
	payload, err := json.Marshal(sess)
	if err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	if err := s.slots.Write(ctx, ownerID, SlotName, payload); err != nil {
		s.mu.Unlock()
		return domain.Session{}, err
	}
	s.sessions[ownerID] = sess
	subs := s.subscribers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ownerID, sess)
	}
	return sess, nil
}

// SignOut drops the identity and deletes the persisted slot.
func (s *Service) SignOut(ctx context.Context, ownerID string) error {
	s.mu.Lock()
	if err := s.slots.Delete(ctx, ownerID, SlotName); err != nil {
		s.mu.Unlock()
		return err
	}
	s.sessions[ownerID] = domain.Session{}
	subs := s.subscribers()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ownerID, domain.Session{})
	}
	return nil
}

func (s *Service) load(ctx context.Context, ownerID string) (domain.Session, error) {
	if sess, ok := s.sessions[ownerID]; ok {
		return sess, nil
	}
	payload, err := s.slots.Read(ctx, ownerID, SlotName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.sessions[ownerID] = domain.Session{}
			return domain.Session{}, nil
		}
		return domain.Session{}, err
	}
	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		s.logger.Printf("session slot for %s is unreadable, treating as logged out: %v", ownerID, err)
		sess = domain.Session{}
	}
	s.sessions[ownerID] = sess
	return sess, nil
}

// subscribers snapshots the callbacks so they can run unlocked. The caller
// must hold s.mu.
func (s *Service) subscribers() []func(string, domain.Session) {
	subs := make([]func(string, domain.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}
