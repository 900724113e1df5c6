package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"csvdash/internal/dataset"
)

// Session holds one browser's uploaded file, axis selections, derived view
// and the single summary slot. Everything is replaced wholesale when a new
// file arrives; the raw dataset itself is never mutated.
type Session struct {
	ID string

	mu       sync.Mutex
	fileName string
	header   []string
	keys     []string
	raw      *dataset.Dataset
	view     *dataset.View
	xKey     string
	yKey     string
	summary  string
}

// Replace installs a freshly parsed file, dropping the previous datasets
// and axis selections. The new raw dataset is a new allocation, so the
// derived view invalidates on its own.
func (s *Session) Replace(fileName string, header, keys []string, raw dataset.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fileName = fileName
	s.header = header
	s.keys = keys
	s.raw = &raw
	s.xKey = ""
	s.yKey = ""
	s.summary = ""
}

// Select records the active axis keys.
func (s *Session) Select(xKey, yKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.xKey = xKey
	s.yKey = yKey
}

// Display returns the memoized sorted-then-sampled dataset for the current
// selection, plus the selected keys.
func (s *Session) Display() (dataset.Dataset, string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Display(s.raw, s.xKey), s.xKey, s.yKey
}

// Raw returns the immutable source-of-truth dataset.
func (s *Session) Raw() dataset.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == nil {
		return nil
	}
	return *s.raw
}

// Keys returns the selectable axis keys.
func (s *Session) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys
}

// SetSummary overwrites the summary slot. Overlapping requests are not
// deduplicated: whichever response lands last wins.
func (s *Session) SetSummary(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = text
}

func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// Sessions is a TTL-bounded store of live dashboard sessions.
type Sessions struct {
	c         *gocache.Cache
	maxPoints int
}

func NewSessions(ttl time.Duration, maxPoints int) *Sessions {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Sessions{c: gocache.New(ttl, 2*ttl), maxPoints: maxPoints}
}

// Create registers a new empty session.
func (s *Sessions) Create() *Session {
	sess := &Session{
		ID:   uuid.NewString(),
		view: dataset.NewView(s.maxPoints),
	}
	s.c.Set(sess.ID, sess, gocache.DefaultExpiration)
	return sess
}

// Get looks a session up and refreshes its TTL.
func (s *Sessions) Get(id string) (*Session, bool) {
	v, ok := s.c.Get(id)
	if !ok {
		return nil, false
	}
	s.c.Set(id, v, gocache.DefaultExpiration)
	return v.(*Session), true
}
