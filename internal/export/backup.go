package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/event"
)

// BackupVersion is written into every backup.
const BackupVersion = 1

// Formats understood by the export and import commands.
const (
	FormatPDF  = "pdf"
	FormatICS  = "ics"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for unsupported file formats.
var ErrUnknownFormat = errors.New("unknown format")

// Backup is the full calendar state in a portable form.
type Backup struct {
	Version    int           `json:"version" yaml:"version"`
	ExportedAt time.Time     `json:"exportedAt" yaml:"exportedAt"`
	Birthday   string        `json:"birthday,omitempty" yaml:"birthday,omitempty"`
	Events     []event.Event `json:"events" yaml:"events"`
}

// NewBackup captures the birthday, if set, and the events.
func NewBackup(anchor time.Time, hasAnchor bool, events []event.Event, now time.Time) Backup {
	b := Backup{
		Version:    BackupVersion,
		ExportedAt: now.UTC().Truncate(time.Second),
		Events:     events,
	}
	if hasAnchor {
		b.Birthday = dateutil.FormatForStorage(anchor)
	}
	if b.Events == nil {
		b.Events = []event.Event{}
	}
	return b
}

// Forms returns the backed-up events as forms for import.
func (b Backup) Forms() []calendar.Form {
	forms := make([]calendar.Form, len(b.Events))
	for i, e := range b.Events {
		forms[i] = calendar.Form{Name: e.Name, StartDate: e.StartDate, EndDate: e.EndDate, Color: e.Color}
	}
	return forms
}

// WriteBackup encodes b as JSON or YAML.
func WriteBackup(w io.Writer, b Backup, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// ReadBackup decodes a JSON or YAML backup. A bare JSON or YAML list of
// events is accepted too.
func ReadBackup(r io.Reader, format string) (Backup, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Backup{}, err
	}

	var (
		b      Backup
		events []event.Event
	)
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &b); err != nil {
			if lerr := json.Unmarshal(data, &events); lerr != nil {
				return Backup{}, fmt.Errorf("parsing JSON backup: %w", err)
			}
			b = Backup{Events: events}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &b); err != nil {
			if lerr := yaml.Unmarshal(data, &events); lerr != nil {
				return Backup{}, fmt.Errorf("parsing YAML backup: %w", err)
			}
			b = Backup{Events: events}
		}
	default:
		return Backup{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return b, nil
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return FormatPDF, nil
	case ".ics", ".ical":
		return FormatICS, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// DefaultFileName is the output name used when no path is given.
func DefaultFileName(format string, now time.Time) string {
	return fmt.Sprintf("lifecal-%s.%s", now.Format("2006-01-02"), format)
}
