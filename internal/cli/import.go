package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/export"
	"github.com/wiverson/life-calendar/internal/ics"
)

var importCmd = LeafCommand{
	Use:     "import FILE",
	Short:   "Import events from an .ics, .json or .yaml file",
	Example: "  lifecal import holidays.ics\n  lifecal import lifecal-2025-01-01.yaml",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *appEnv) error {
			return runImport(cmd, env.model, args[0])
		})
	},
}.Build()

func runImport(cmd *cobra.Command, model *calendar.Model, path string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	format, err := export.FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var forms []calendar.Form
	switch format {
	case export.FormatICS:
		parsed, skipped, err := ics.Parse(f)
		if err != nil {
			return err
		}
		for _, s := range skipped {
			_, _ = fmt.Fprintln(errOut, Warning(fmt.Sprintf("skipped %q: %s", s.Summary, s.Reason)))
		}
		forms = parsed
	case export.FormatJSON, export.FormatYAML:
		b, err := export.ReadBackup(f, format)
		if err != nil {
			return err
		}
		if err := restoreBirthday(cmd, model, b.Birthday); err != nil {
			return err
		}
		forms = b.Forms()
	default:
		return fmt.Errorf("%w: cannot import %s files", export.ErrUnknownFormat, format)
	}

	saved, rejected, err := model.Import(forms)
	if err := storageWarning(errOut, err); err != nil {
		return err
	}

	indexes := make([]int, 0, len(rejected))
	for i := range rejected {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	for _, i := range indexes {
		_, _ = fmt.Fprintln(errOut, Warning(fmt.Sprintf("skipped %q: %v", forms[i].Name, describeError(rejected[i]))))
	}

	_, _ = fmt.Fprintf(out, "Imported %s of %d events.\n", Primary(fmt.Sprint(len(saved))), len(forms))
	return nil
}

// restoreBirthday sets the birthday from a backup when none is set yet. An
// existing, different birthday is kept.
func restoreBirthday(cmd *cobra.Command, model *calendar.Model, birthday string) error {
	if birthday == "" {
		return nil
	}
	if current, ok := model.Anchor(); ok {
		if dateutil.FormatForStorage(current) != birthday {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", Warning(fmt.Sprintf(
				"keeping birthday %s; the backup has %s", dateutil.FormatForStorage(current), birthday)))
		}
		return nil
	}

	d, err := model.SubmitBirthday(birthday)
	if err := storageWarning(cmd.ErrOrStderr(), err); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Birthday set to %s.\n", dateutil.FormatForDisplay(d))
	return nil
}
