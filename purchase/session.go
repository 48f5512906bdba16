package purchase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dakshininfra/purchase-api/models"
)

// Session binds one wizard to one browser session. It carries the auth token
// it was opened with so handlers can associate the completed order with a
// user profile.
type Session struct {
	ID           string    `json:"id"`
	Token        string    `json:"-"`
	Wizard       *Wizard   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	ExpiresAt    time.Time `json:"expires_at"`

	// unitNumber and order are written from concurrent handler requests;
	// a re-clicked pay button can overlap an in-flight initiation.
	mu         sync.Mutex
	unitNumber string
	order      *models.PurchaseOrder
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

func (s *Session) Touch() {
	s.LastActivity = time.Now()
}

func (s *Session) UnitNumber() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unitNumber
}

func (s *Session) SetUnitNumber(unit string) {
	s.mu.Lock()
	s.unitNumber = unit
	s.mu.Unlock()
}

// Order returns the order created at payment initiation, nil before that.
func (s *Session) Order() *models.PurchaseOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order
}

func (s *Session) SetOrder(o *models.PurchaseOrder) {
	s.mu.Lock()
	s.order = o
	s.mu.Unlock()
}

// Store owns every live wizard session. It replaces the frontend's implicit
// global auth/wizard context with one explicit object handed to handlers.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

const DefaultSessionTTL = 2 * time.Hour

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create starts a new session with a fresh wizard and primary account.
func (st *Store) Create(token string) *Session {
	now := time.Now()
	s := &Session{
		ID:           uuid.NewString(),
		Token:        token,
		Wizard:       NewWizard(uuid.NewString()),
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    now.Add(st.ttl),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get returns the live session for id. Expired sessions are dropped on
// access; active ones have their activity stamped and their expiry extended.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if s.IsExpired() {
		delete(st.sessions, id)
		return nil, false
	}
	s.Touch()
	s.ExpiresAt = time.Now().Add(st.ttl)
	return s, true
}

// Delete abandons a session. Closing the payment modal lands here; an
// already-dispatched gateway request is not cancelled.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
