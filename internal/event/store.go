package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/idutil"
	"github.com/wiverson/life-calendar/internal/logger"
	"github.com/wiverson/life-calendar/internal/storage"
)

// ErrCorruptState indicates the persisted events could not be read and were
// discarded.
var ErrCorruptState = errors.New("corrupt persisted state")

// Store owns the event collection. Collection order is insertion order,
// with updates kept in place; the first event overlapping a week is the
// one that gets displayed, so order matters.
type Store struct {
	kv     storage.KV
	ids    *idutil.Generator
	events []Event

	// unread is set when the persisted events could not be read; writes
	// are refused so they cannot replace events that were never loaded.
	unread bool
}

// NewStore creates an empty store backed by kv.
func NewStore(kv storage.KV, ids *idutil.Generator) *Store {
	if ids == nil {
		ids = idutil.NewGenerator()
	}
	return &Store{kv: kv, ids: ids}
}

// Load reads the persisted events from kv, normalizes every date to
// YYYY-MM-DD, drops duplicates by (name, startDate, endDate) and writes the
// cleaned list back.
//
// A missing key yields an empty store. A payload that is not a JSON array
// is discarded: the store comes back empty together with ErrCorruptState.
// A failed read returns an empty store and an error wrapping
// storage.ErrUnavailable; the persisted events are left untouched and the
// store will not overwrite them. The returned store is always usable, even
// when an error is returned.
func Load(kv storage.KV, ids *idutil.Generator) (*Store, error) {
	s := NewStore(kv, ids)

	raw, ok, err := kv.Get(storage.KeyEvents)
	if errors.Is(err, storage.ErrCorrupt) {
		return s, s.discard(fmt.Errorf("reading events: %w", err))
	}
	if err != nil {
		s.unread = true
		return s, storage.Unavailable("reading events", err)
	}
	if !ok {
		return s, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return s, s.discard(fmt.Errorf("parsing events: %w", err))
	}

	loaded := make([]Event, 0, len(records))
	for i, rec := range records {
		e, err := decodeRecord(rec)
		if err != nil {
			logger.Warn("dropping unreadable event", "index", i, "err", err)
			continue
		}
		loaded = append(loaded, e)
	}

	s.events = dedupe(loaded)
	s.assignIDs()

	logger.Debug("events loaded", "records", len(records), "kept", len(s.events))

	if err := s.persist(); err != nil {
		return s, err
	}
	return s, nil
}

// All returns a copy of the events in collection order.
func (s *Store) All() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// Len returns the number of stored events.
func (s *Store) Len() int {
	return len(s.events)
}

// Get returns the event with the given id.
func (s *Store) Get(id int64) (Event, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.events[i], true
	}
	return Event{}, false
}

// NextID returns an id that has never been used by this store.
func (s *Store) NextID() int64 {
	return s.ids.Next()
}

// Upsert replaces the event with the same id in place, or appends it.
// An event without an id gets a fresh one. The in-memory change is kept
// even when persisting fails; the returned error then wraps
// storage.ErrUnavailable.
func (s *Store) Upsert(e Event) (Event, error) {
	if e.ID == 0 {
		e.ID = s.ids.Next()
	} else {
		s.ids.Observe(e.ID)
	}

	if i := s.indexOf(e.ID); i >= 0 {
		s.events[i] = e
	} else {
		s.events = append(s.events, e)
	}
	return e, s.persist()
}

// Delete removes the event with the given id. It reports whether an event
// was removed; deleting an unknown id is a no-op and writes nothing.
func (s *Store) Delete(id int64) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.events = append(s.events[:i:i], s.events[i+1:]...)
	return true, s.persist()
}

// Reset removes every event from memory and from persistence.
func (s *Store) Reset() error {
	s.events = nil
	s.unread = false
	if err := s.kv.Delete(storage.KeyEvents); err != nil {
		return storage.Unavailable("clearing events", err)
	}
	return nil
}

func (s *Store) indexOf(id int64) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persist() error {
	if s.unread {
		return fmt.Errorf("saving events: stored events were never loaded: %w", storage.ErrUnavailable)
	}
	events := s.events
	if events == nil {
		events = []Event{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	if err := s.kv.Set(storage.KeyEvents, string(data)); err != nil {
		return storage.Unavailable("saving events", err)
	}
	return nil
}

// discard empties the store after an unreadable payload and overwrites the
// payload with an empty list.
func (s *Store) discard(cause error) error {
	logger.Warn("discarding persisted events", "err", cause)
	s.events = nil
	corrupt := fmt.Errorf("%w: %v", ErrCorruptState, cause)
	if err := s.persist(); err != nil {
		return errors.Join(corrupt, err)
	}
	return corrupt
}

// assignIDs gives a fresh id to events without one and to later events
// that reuse an id already taken.
func (s *Store) assignIDs() {
	for _, e := range s.events {
		s.ids.Observe(e.ID)
	}
	seen := make(map[int64]bool, len(s.events))
	for i := range s.events {
		id := s.events[i].ID
		if id == 0 || seen[id] {
			s.events[i].ID = s.ids.Next()
			logger.Debug("assigned event id", "name", s.events[i].Name, "id", s.events[i].ID)
		}
		seen[s.events[i].ID] = true
	}
}

// dedupe keeps one event per composite key. The last occurrence wins and
// takes the position of the first.
func dedupe(events []Event) []Event {
	index := make(map[key]int, len(events))
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if i, ok := index[e.key()]; ok {
			logger.Debug("dropping duplicate event", "name", e.Name, "start", e.StartDate, "end", e.EndDate)
			out[i] = e
			continue
		}
		index[e.key()] = len(out)
		out = append(out, e)
	}
	return out
}

// record is the lenient on-disk shape: ids may be numbers or numeric strings.
type record struct {
	ID        json.RawMessage `json:"id"`
	Name      string          `json:"name"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Color     string          `json:"color"`
}

func decodeRecord(raw json.RawMessage) (Event, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return Event{}, err
	}
	return Event{
		ID:        parseID(r.ID),
		Name:      r.Name,
		StartDate: normalizeDate(r.StartDate),
		EndDate:   normalizeDate(r.EndDate),
		Color:     r.Color,
	}, nil
}

// parseID returns 0 for ids that cannot be read; those are reassigned.
func parseID(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int64(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return id
		}
	}
	return 0
}

// normalizeDate rewrites a date into storage form, keeping unparsable
// values verbatim so they can be reported and skipped at render time.
func normalizeDate(s string) string {
	d, err := dateutil.Normalize(s)
	if err != nil {
		logger.Warn("event has an unreadable date", "value", s)
		return s
	}
	return dateutil.FormatForStorage(d)
}
