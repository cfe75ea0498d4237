package catalog

import (
	"sync"

	"github.com/google/uuid"

	"github.com/aletube/catalogd/model"
)

const updateBuffer = 64

// Session is one catalog retrieval in flight. Records() is the
// authoritative accumulation; Updates() is a best-effort incremental
// notification stream so consumers can show the first items before the
// full catalog lands. A slow consumer misses notifications, never
// records.
type Session struct {
	id        uuid.UUID
	channelID model.ChannelID
	summary   model.ChannelSummary

	updates chan model.VideoRecord
	done    chan struct{}

	mu      sync.Mutex
	seen    map[model.VideoID]bool
	records []model.VideoRecord
	err     error
}

func newSession(channelID model.ChannelID, summary model.ChannelSummary) *Session {
	return &Session{
		id:        uuid.New(),
		channelID: channelID,
		summary:   summary,
		updates:   make(chan model.VideoRecord, updateBuffer),
		done:      make(chan struct{}),
		seen:      map[model.VideoID]bool{},
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) ChannelID() model.ChannelID { return s.channelID }

// Summary is the channel snapshot taken when the session started.
func (s *Session) Summary() model.ChannelSummary { return s.summary }

// Updates delivers normalized records as detail batches resolve, in
// completion order, not upstream enumeration order. Closed when the
// session ends.
func (s *Session) Updates() <-chan model.VideoRecord { return s.updates }

// Done is closed when retrieval has finished, successfully or not.
func (s *Session) Done() <-chan struct{} { return s.done }

// Err is nil after a complete fetch. A *PageError means the catalog is
// partial but the accumulated records are valid.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Records returns a snapshot copy of the accumulated catalog.
func (s *Session) Records() []model.VideoRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]model.VideoRecord, len(s.records))
	copy(records, s.records)
	return records
}

// add appends a record unless its id was already seen this session.
func (s *Session) add(record model.VideoRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[record.ID] {
		return false
	}
	s.seen[record.ID] = true
	s.records = append(s.records, record)
	return true
}

func (s *Session) notify(record model.VideoRecord) {
	select {
	case s.updates <- record:
	default:
	}
}

func (s *Session) finish(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.updates)
	close(s.done)
}
