package calendar

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiverson/life-calendar/internal/event"
	"github.com/wiverson/life-calendar/internal/grid"
	"github.com/wiverson/life-calendar/internal/idutil"
	"github.com/wiverson/life-calendar/internal/storage"
	"github.com/wiverson/life-calendar/internal/storage/file"
	"github.com/wiverson/life-calendar/internal/storage/memory"
)

func testOptions() Options {
	return Options{IDs: idutil.NewGeneratorWithClock(func() time.Time {
		return time.UnixMilli(1_700_000_000_000)
	})}
}

func newModel(t *testing.T, kv storage.KV) *Model {
	t.Helper()
	m, err := New(kv, testOptions())
	require.NoError(t, err)
	return m
}

func withBirthday(t *testing.T, kv storage.KV) *Model {
	t.Helper()
	m := newModel(t, kv)
	_, err := m.SubmitBirthday("2000-01-01")
	require.NoError(t, err)
	return m
}

func TestNewEmpty(t *testing.T) {
	m := newModel(t, memory.New())
	_, ok := m.Anchor()
	assert.False(t, ok)
	assert.Empty(t, m.Events())

	_, err := m.Render()
	assert.ErrorIs(t, err, ErrNoBirthday)
}

func TestSubmitBirthdayPersistsISO(t *testing.T) {
	kv := memory.New()
	m := newModel(t, kv)

	d, err := m.SubmitBirthday("1990-06-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), d)

	raw, ok, err := kv.Get(storage.KeyBirthday)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "1990-06-15T00:00:00.000Z", raw)

	reloaded := newModel(t, kv)
	got, ok := reloaded.Anchor()
	require.True(t, ok)
	assert.Equal(t, d, got)
}

func TestSubmitBirthdayInvalid(t *testing.T) {
	m := newModel(t, memory.New())
	_, err := m.SubmitBirthday("")
	assert.True(t, IsValidation(err))
	_, ok := m.Anchor()
	assert.False(t, ok)
}

func TestNewCorruptBirthday(t *testing.T) {
	kv := memory.NewWithValues(map[string]string{storage.KeyBirthday: "Invalid Date"})

	m, err := New(kv, testOptions())
	require.ErrorIs(t, err, event.ErrCorruptState)
	require.NotNil(t, m)

	_, ok := m.Anchor()
	assert.False(t, ok)
	_, ok, _ = kv.Get(storage.KeyBirthday)
	assert.False(t, ok)
}

func TestNewCorruptEventsKeepsBirthday(t *testing.T) {
	kv := memory.NewWithValues(map[string]string{
		storage.KeyBirthday: "2000-01-01T00:00:00.000Z",
		storage.KeyEvents:   "{oops",
	})

	m, err := New(kv, testOptions())
	require.ErrorIs(t, err, event.ErrCorruptState)

	_, ok := m.Anchor()
	assert.True(t, ok)
	assert.Empty(t, m.Events())
}

func TestNewUnparsableStorageFileIsCorruptState(t *testing.T) {
	kv := file.New(t.TempDir())
	require.NoError(t, os.WriteFile(kv.Path(), []byte("{not json"), 0o600))

	m, err := New(kv, testOptions())
	require.NotNil(t, m)
	assert.ErrorIs(t, err, event.ErrCorruptState)
	assert.NotErrorIs(t, err, storage.ErrUnavailable)

	_, ok := m.Anchor()
	assert.False(t, ok)
	assert.Empty(t, m.Events())

	raw, ok, err := kv.Get(storage.KeyEvents)
	require.NoError(t, err, "the unparsable file is replaced")
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestNewBirthdayReadFailure(t *testing.T) {
	kv := memory.NewWithValues(map[string]string{
		storage.KeyBirthday: "2000-01-01T00:00:00.000Z",
		storage.KeyEvents:   `[{"id":1,"name":"Trip","startDate":"2000-01-10","endDate":"2000-01-20","color":"#f00"}]`,
	})
	kv.FailReads = 1

	m, err := New(kv, testOptions())
	assert.ErrorIs(t, err, storage.ErrUnavailable)
	assert.NotErrorIs(t, err, event.ErrCorruptState)

	_, ok := m.Anchor()
	assert.False(t, ok)
	assert.Len(t, m.Events(), 1)

	raw, _, _ := kv.Get(storage.KeyBirthday)
	assert.Equal(t, "2000-01-01T00:00:00.000Z", raw)
}

func TestSaveEventRequiresBirthday(t *testing.T) {
	m := newModel(t, memory.New())
	_, err := m.SaveEvent(Form{Name: "A", StartDate: "2000-01-01", EndDate: "2000-01-02"})
	assert.ErrorIs(t, err, ErrNoBirthday)
}

func TestSaveEventValidationLeavesStateUntouched(t *testing.T) {
	kv := memory.New()
	m := withBirthday(t, kv)

	_, err := m.SaveEvent(Form{Name: "A", StartDate: "2000-02-10", EndDate: "2000-02-01"})
	assert.True(t, IsValidation(err))
	assert.Empty(t, m.Events())

	_, ok, _ := kv.Get(storage.KeyEvents)
	assert.False(t, ok)
}

func TestSaveAndEditEvent(t *testing.T) {
	m := withBirthday(t, memory.New())
	m.opts.DefaultColor = "#123456"

	e, err := m.SaveEvent(Form{Name: "Trip", StartDate: "2000-01-10", EndDate: "2000-01-20"})
	require.NoError(t, err)
	assert.Equal(t, "#123456", e.Color)

	f, ok := m.Form(e.ID)
	require.True(t, ok)
	f.Name = "Long trip"
	f.EndDate = "2000-02-20"
	edited, err := m.SaveEvent(f)
	require.NoError(t, err)
	assert.Equal(t, e.ID, edited.ID)

	events := m.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "Long trip", events[0].Name)

	_, err = m.SaveEvent(Form{ID: 12345, Name: "Ghost", StartDate: "2000-01-10", EndDate: "2000-01-20"})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestDeleteEventScenario(t *testing.T) {
	kv := memory.New()
	m := withBirthday(t, kv)

	trip, err := m.SaveEvent(Form{Name: "Trip", StartDate: "2000-01-10", EndDate: "2000-01-20", Color: "#f00"})
	require.NoError(t, err)

	week1 := grid.BuildWeeks(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 2)[1]
	require.Len(t, grid.EventsForWeek(week1, m.Events()), 1)

	require.NoError(t, m.DeleteEvent(trip.ID))
	assert.Empty(t, m.Events())
	assert.Empty(t, grid.EventsForWeek(week1, m.Events()))

	raw, ok, err := kv.Get(storage.KeyEvents)
	require.NoError(t, err)
	require.True(t, ok)
	var stored []event.Event
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Empty(t, stored)

	assert.ErrorIs(t, m.DeleteEvent(trip.ID), ErrEventNotFound)
}

func TestStorageUnavailableKeepsMemory(t *testing.T) {
	kv := memory.New()
	m := withBirthday(t, kv)
	kv.FailWrites = true

	e, err := m.SaveEvent(Form{Name: "Trip", StartDate: "2000-01-10", EndDate: "2000-01-20"})
	require.ErrorIs(t, err, storage.ErrUnavailable)
	assert.NotZero(t, e.ID)
	assert.Len(t, m.Events(), 1)

	rm, err := m.Render()
	require.NoError(t, err)
	require.NotNil(t, rm.Weeks[1].Event)
}

func TestReset(t *testing.T) {
	kv := memory.New()
	m := withBirthday(t, kv)
	_, err := m.SaveEvent(Form{Name: "Trip", StartDate: "2000-01-10", EndDate: "2000-01-20"})
	require.NoError(t, err)

	require.NoError(t, m.Reset())

	_, ok := m.Anchor()
	assert.False(t, ok)
	assert.Empty(t, m.Events())
	for _, key := range []string{storage.KeyBirthday, storage.KeyEvents} {
		_, ok, _ := kv.Get(key)
		assert.False(t, ok, key)
	}
}

func TestResetClearsMemoryWhenStorageFails(t *testing.T) {
	kv := memory.New()
	m := withBirthday(t, kv)
	kv.FailWrites = true

	err := m.Reset()
	assert.ErrorIs(t, err, storage.ErrUnavailable)
	_, ok := m.Anchor()
	assert.False(t, ok)
}

func TestImport(t *testing.T) {
	m := withBirthday(t, memory.New())
	_, err := m.SaveEvent(Form{Name: "Trip", StartDate: "2000-01-10", EndDate: "2000-01-20"})
	require.NoError(t, err)

	saved, rejected, err := m.Import([]Form{
		{ID: 99, Name: "School", StartDate: "2005-09-01", EndDate: "2010-06-30"},
		{Name: "", StartDate: "2005-09-01", EndDate: "2010-06-30"},
		{Name: "Trip", StartDate: "2000-01-10", EndDate: "2000-01-20"},
		{Name: "Before", StartDate: "1999-01-01", EndDate: "1999-02-01"},
	})
	require.NoError(t, err)

	require.Len(t, saved, 1)
	assert.Equal(t, "School", saved[0].Name)
	assert.NotEqual(t, int64(99), saved[0].ID)

	require.Len(t, rejected, 3)
	assert.True(t, IsValidation(rejected[1]))
	assert.ErrorIs(t, rejected[2], ErrDuplicateEvent)
	assert.True(t, IsValidation(rejected[3]))
	assert.Len(t, m.Events(), 2)
}
