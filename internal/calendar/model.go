// Package calendar ties the birthday, the event store and the week grid
// together and exposes the operations a renderer calls.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/event"
	"github.com/wiverson/life-calendar/internal/idutil"
	"github.com/wiverson/life-calendar/internal/logger"
	"github.com/wiverson/life-calendar/internal/storage"
)

// DefaultColor is used for events saved without a color.
const DefaultColor = "#4a90d9"

// ErrNoBirthday is returned by operations that need the anchor date before
// one has been submitted.
var ErrNoBirthday = errors.New("birthday not set; run 'lifecal init' first")

// ErrEventNotFound is returned when an id does not match a stored event.
var ErrEventNotFound = errors.New("event not found")

// ErrDuplicateEvent is returned by Import for events already stored.
var ErrDuplicateEvent = errors.New("event already exists")

// Options configures a Model.
type Options struct {
	Grid GridOptions
	// DefaultColor replaces the package default when set.
	DefaultColor string
	// IDs generates event ids; a wall-clock generator is used when nil.
	IDs *idutil.Generator
}

// Model is the life calendar: an optional birthday and the events laid
// over it. It is not safe for concurrent use.
type Model struct {
	kv     storage.KV
	opts   Options
	anchor time.Time
	hasAnc bool
	events *event.Store
}

// New loads the birthday and the events from kv. Corrupt persisted state is
// discarded and reported with event.ErrCorruptState; the returned model is
// usable whenever it is non-nil.
func New(kv storage.KV, opts Options) (*Model, error) {
	if opts.IDs == nil {
		opts.IDs = idutil.NewGenerator()
	}
	opts.Grid = opts.Grid.normalize()

	m := &Model{kv: kv, opts: opts}

	var errs []error
	if err := m.loadBirthday(); err != nil {
		errs = append(errs, err)
	}

	store, err := event.Load(kv, opts.IDs)
	if err != nil {
		errs = append(errs, err)
	}
	m.events = store

	return m, errors.Join(errs...)
}

func (m *Model) loadBirthday() error {
	raw, ok, err := m.kv.Get(storage.KeyBirthday)
	if errors.Is(err, storage.ErrCorrupt) {
		return fmt.Errorf("%w: birthday: %v", event.ErrCorruptState, err)
	}
	if err != nil {
		return storage.Unavailable("reading birthday", err)
	}
	if !ok {
		return nil
	}

	d, err := dateutil.Normalize(raw)
	if err != nil {
		logger.Warn("discarding unreadable birthday", "value", raw)
		corrupt := fmt.Errorf("%w: birthday: %v", event.ErrCorruptState, err)
		if derr := m.kv.Delete(storage.KeyBirthday); derr != nil {
			return errors.Join(corrupt, storage.Unavailable("removing birthday", derr))
		}
		return corrupt
	}

	m.anchor, m.hasAnc = d, true
	return nil
}

// Anchor returns the birthday and whether one is set.
func (m *Model) Anchor() (time.Time, bool) {
	return m.anchor, m.hasAnc
}

// Events returns the events in collection order.
func (m *Model) Events() []event.Event {
	return m.events.All()
}

// Event returns the event with the given id.
func (m *Model) Event(id int64) (event.Event, bool) {
	return m.events.Get(id)
}

// Form returns the editable form of an existing event.
func (m *Model) Form(id int64) (Form, bool) {
	e, ok := m.events.Get(id)
	if !ok {
		return Form{}, false
	}
	return Form{ID: e.ID, Name: e.Name, StartDate: e.StartDate, EndDate: e.EndDate, Color: e.Color}, true
}

// GridOptions returns the configured grid size.
func (m *Model) GridOptions() GridOptions {
	return m.opts.Grid
}

// StoragePath describes where the calendar is persisted.
func (m *Model) StoragePath() string {
	return m.kv.Path()
}

// SubmitBirthday parses input and replaces the birthday. The new value is
// kept in memory even when persisting fails.
func (m *Model) SubmitBirthday(input string) (time.Time, error) {
	d, err := dateutil.Normalize(input)
	if err != nil {
		return time.Time{}, &ValidationError{
			Rule:    "birthday",
			Message: fmt.Sprintf("birthday %q is not a valid date", input),
			Err:     err,
		}
	}

	m.anchor, m.hasAnc = d, true
	logger.Debug("birthday set", "date", dateutil.FormatForStorage(d))

	if err := m.kv.Set(storage.KeyBirthday, dateutil.FormatISO(d)); err != nil {
		return d, storage.Unavailable("saving birthday", err)
	}
	return d, nil
}

// SaveEvent validates f and stores the result. Editing an id that does not
// exist fails with ErrEventNotFound. A storage error leaves the saved event
// in memory and is returned alongside it.
func (m *Model) SaveEvent(f Form) (event.Event, error) {
	if !m.hasAnc {
		return event.Event{}, ErrNoBirthday
	}
	if f.ID != 0 {
		if _, ok := m.events.Get(f.ID); !ok {
			return event.Event{}, fmt.Errorf("%w: %d", ErrEventNotFound, f.ID)
		}
	}
	if f.Color == "" {
		f.Color = m.opts.DefaultColor
	}

	e, err := ValidateNewEvent(f, m.anchor, m.events.NextID)
	if err != nil {
		return event.Event{}, err
	}
	return m.events.Upsert(e)
}

// DeleteEvent removes the event with the given id.
func (m *Model) DeleteEvent(id int64) error {
	removed, err := m.events.Delete(id)
	if !removed {
		return fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}
	return err
}

// Reset forgets the birthday and every event, in memory and in storage.
// Memory is always cleared; a storage failure is still reported.
func (m *Model) Reset() error {
	m.anchor, m.hasAnc = time.Time{}, false
	evErr := m.events.Reset()

	var bdErr error
	if err := m.kv.Delete(storage.KeyBirthday); err != nil {
		bdErr = storage.Unavailable("clearing birthday", err)
	}
	return errors.Join(evErr, bdErr)
}

// Render builds the render model for the current state.
func (m *Model) Render() (RenderModel, error) {
	if !m.hasAnc {
		return RenderModel{}, ErrNoBirthday
	}
	return BuildRenderModel(m.anchor, m.events.All(), m.opts.Grid), nil
}

// Import validates and saves each form as a new event. Invalid forms and
// exact duplicates of stored events are skipped and reported by index. A
// storage failure does not stop the import and is returned at the end.
func (m *Model) Import(forms []Form) (saved []event.Event, rejected map[int]error, err error) {
	if !m.hasAnc {
		return nil, nil, ErrNoBirthday
	}

	seen := make(map[[3]string]bool, m.events.Len())
	for _, e := range m.events.All() {
		seen[[3]string{e.Name, e.StartDate, e.EndDate}] = true
	}

	rejected = make(map[int]error)
	var storeErr error
	for i, f := range forms {
		f.ID = 0
		if f.Color == "" {
			f.Color = m.opts.DefaultColor
		}
		e, err := ValidateNewEvent(f, m.anchor, func() int64 { return 0 })
		if err != nil {
			rejected[i] = err
			continue
		}
		k := [3]string{e.Name, e.StartDate, e.EndDate}
		if seen[k] {
			rejected[i] = fmt.Errorf("%w: %s", ErrDuplicateEvent, e.Name)
			continue
		}
		seen[k] = true

		e, err = m.events.Upsert(e)
		if err != nil {
			storeErr = err
		}
		saved = append(saved, e)
	}
	return saved, rejected, storeErr
}
