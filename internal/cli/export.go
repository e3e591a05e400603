package cli

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/export"
	"github.com/wiverson/life-calendar/internal/ics"
)

// stdoutPath selects standard output as the export destination.
const stdoutPath = "-"

var exportCmd = LeafCommand{
	Use:   "export",
	Short: "Export the calendar as PDF, iCalendar, JSON or YAML",
	Example: "  lifecal export\n" +
		"  lifecal export --format ics --output life.ics\n" +
		"  lifecal export --output backup.yaml\n" +
		"  lifecal export --format json --output - > backup.json",
	Args: cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "format", Shorthand: "f", Usage: "pdf, ics, json or yaml (default: from --output, else pdf)"},
		{Name: "output", Shorthand: "o", Usage: "output path, or - for standard output (default: lifecal-DATE.FORMAT)"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		return withEnv(cmd, func(env *appEnv) error {
			return runExport(cmd, env.model, format, output, time.Now)
		})
	},
}.Build()

func runExport(cmd *cobra.Command, model *calendar.Model, format, output string, nowFn func() time.Time) error {
	now := nowFn()

	if format == "" {
		format = export.FormatPDF
		if output != "" && output != stdoutPath {
			f, err := export.FormatFromPath(output)
			if err != nil {
				return err
			}
			format = f
		}
	}

	data, err := encodeExport(model, format, now)
	if err != nil {
		return err
	}

	if output == stdoutPath {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if output == "" {
		output = export.DefaultFileName(format, now)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(model.Events()), Primary(output))
	return nil
}

// encodeExport renders the calendar in format.
func encodeExport(model *calendar.Model, format string, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case export.FormatPDF:
		rm, err := model.Render()
		if err != nil {
			return nil, err
		}
		return export.PDF(export.BuildSummary(rm, model.Events(), now))
	case export.FormatICS:
		if err := ics.Export(&buf, model.Events(), now); err != nil {
			return nil, err
		}
	case export.FormatJSON, export.FormatYAML:
		anchor, ok := model.Anchor()
		b := export.NewBackup(anchor, ok, model.Events(), now)
		if err := export.WriteBackup(&buf, b, format); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s (expected pdf, ics, json or yaml)", export.ErrUnknownFormat, format)
	}
	return buf.Bytes(), nil
}
