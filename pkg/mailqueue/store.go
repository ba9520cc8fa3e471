package mailqueue

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// store is the in-process source of truth for queued messages. A map keyed by
// id plus an insertion-order slice keeps listing stable when two messages
// share a QueuedAt timestamp.
type store struct {
	mu       sync.RWMutex
	messages map[uuid.UUID]*Message
	order    []uuid.UUID
}

func newStore() *store {
	return &store{
		messages: make(map[uuid.UUID]*Message),
	}
}

func (s *store) insert(m *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages[m.ID] = m
	s.order = append(s.order, m.ID)
}

func (s *store) get(id uuid.UUID) (Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.messages[id]
	if !ok {
		return Message{}, false
	}
	return *m, true
}

func (s *store) remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.messages[id]; !ok {
		return false
	}
	delete(s.messages, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// list returns copies of all messages ordered by QueuedAt ascending, with
// insertion order breaking ties.
func (s *store) list() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Message, 0, len(s.order))
	for _, id := range s.order {
		if m, ok := s.messages[id]; ok {
			out = append(out, *m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].QueuedAt.Before(out[j].QueuedAt)
	})
	return out
}

func (s *store) clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.messages)
	s.messages = make(map[uuid.UUID]*Message)
	s.order = nil
	return count
}

func (s *store) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.messages)
}

// oldest returns the QueuedAt of the message that would drain first, or nil
// when the store is empty.
func (s *store) oldest() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var oldest *time.Time
	for _, id := range s.order {
		m, ok := s.messages[id]
		if !ok {
			continue
		}
		if oldest == nil || m.QueuedAt.Before(*oldest) {
			t := m.QueuedAt
			oldest = &t
		}
	}
	return oldest
}

// beginAttempt charges one attempt to the message before delivery runs, so a
// crash mid-send still counts it. Returns a copy for the sender; ok is false
// when the message was removed since the drain snapshot was taken.
func (s *store) beginAttempt(id uuid.UUID, now time.Time) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[id]
	if !ok {
		return Message{}, false
	}
	m.Attempts++
	m.LastAttemptAt = &now
	return *m, true
}

// recordError notes the latest delivery failure on the message, if it is
// still queued.
func (s *store) recordError(id uuid.UUID, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.messages[id]; ok {
		m.LastError = &errMsg
	}
}

// restore replaces the store contents with a rehydrated snapshot.
func (s *store) restore(msgs []Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = make(map[uuid.UUID]*Message, len(msgs))
	s.order = make([]uuid.UUID, 0, len(msgs))
	for i := range msgs {
		m := msgs[i]
		s.messages[m.ID] = &m
		s.order = append(s.order, m.ID)
	}
}
