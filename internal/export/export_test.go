package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/event"
)

var (
	anchor = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	now    = time.Date(2002, 1, 15, 9, 0, 0, 0, time.UTC)
)

func sampleEvents() []event.Event {
	return []event.Event{
		{ID: 1, Name: "Trip", StartDate: "2000-01-10", EndDate: "2000-01-20", Color: "#ff0000"},
		{ID: 2, Name: "School", StartDate: "2001-09-01", EndDate: "2001-12-20", Color: "#0a0"},
		{ID: 3, Name: "Broken", StartDate: "someday", EndDate: "2001-12-20", Color: "nope"},
	}
}

func sampleSummary() Summary {
	events := sampleEvents()
	rm := calendar.BuildRenderModel(anchor, events, calendar.GridOptions{WeeksPerRow: 52, Rows: 5})
	return BuildSummary(rm, events, now)
}

func TestBuildSummary(t *testing.T) {
	s := sampleSummary()

	require.Len(t, s.Events, 3)
	assert.Equal(t, 2, s.Events[0].Weeks)
	assert.Equal(t, 0, s.Events[0].StartAge)
	assert.True(t, s.Events[0].Valid)
	assert.Equal(t, 1, s.Events[1].StartAge)
	assert.False(t, s.Events[2].Valid)
	assert.Zero(t, s.Events[2].Weeks)

	// Week 106 starts on 2002-01-12, week 107 on 2002-01-19.
	assert.Equal(t, 107, s.LivedWeeks)
}

func TestSavePDFCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calendar.pdf")

	require.NoError(t, SavePDF(sampleSummary(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestPDFBytes(t *testing.T) {
	data, err := PDF(sampleSummary())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFEmptyModel(t *testing.T) {
	_, err := PDF(Summary{})
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	c, ok := parseHexColor("#ff8000")
	require.True(t, ok)
	assert.Equal(t, props.Color{Red: 255, Green: 128, Blue: 0}, c)

	c, ok = parseHexColor("#0a0")
	require.True(t, ok)
	assert.Equal(t, props.Color{Red: 0, Green: 170, Blue: 0}, c)

	for _, bad := range []string{"", "red", "#12345", "#zzzzzz"} {
		_, ok := parseHexColor(bad)
		assert.False(t, ok, bad)
	}
}

func TestBackupJSON(t *testing.T) {
	var buf bytes.Buffer
	b := NewBackup(anchor, true, sampleEvents()[:2], now)
	require.NoError(t, WriteBackup(&buf, b, FormatJSON))
	assert.Contains(t, buf.String(), `"birthday": "2000-01-01"`)

	got, err := ReadBackup(&buf, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, b, got)
}

func TestBackupYAML(t *testing.T) {
	var buf bytes.Buffer
	b := NewBackup(anchor, true, sampleEvents()[:2], now)
	require.NoError(t, WriteBackup(&buf, b, FormatYAML))
	assert.Contains(t, buf.String(), "startDate:")
	assert.Contains(t, buf.String(), "2000-01-10")

	got, err := ReadBackup(&buf, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01", got.Birthday)
	assert.Equal(t, b.Events, got.Events)
}

func TestReadBackupBareList(t *testing.T) {
	b, err := ReadBackup(strings.NewReader(`[{"name":"Trip","startDate":"2000-01-10","endDate":"2000-01-20","color":"#f00"}]`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, b.Birthday)
	require.Len(t, b.Events, 1)

	forms := b.Forms()
	assert.Equal(t, calendar.Form{Name: "Trip", StartDate: "2000-01-10", EndDate: "2000-01-20", Color: "#f00"}, forms[0])
}

func TestReadBackupInvalid(t *testing.T) {
	_, err := ReadBackup(strings.NewReader("{"), FormatJSON)
	assert.Error(t, err)

	_, err = ReadBackup(strings.NewReader(""), "csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestNewBackupWithoutBirthday(t *testing.T) {
	b := NewBackup(time.Time{}, false, nil, now)
	assert.Empty(t, b.Birthday)
	assert.NotNil(t, b.Events)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"out.pdf":       FormatPDF,
		"cal.ICS":       FormatICS,
		"backup.json":   FormatJSON,
		"backup.yml":    FormatYAML,
		"dir/back.yaml": FormatYAML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got)
	}

	_, err := FormatFromPath("notes.txt")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "lifecal-2002-01-15.pdf", DefaultFileName(FormatPDF, now))
}
