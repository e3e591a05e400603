package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/dateutil"
)

var initCmd = LeafCommand{
	Use:     "init",
	Short:   "Set your birthday",
	Example: "  lifecal init --birthday 1990-05-17\n  lifecal init --birthday \"May 17 1990\" --yes",
	Args:    cobra.NoArgs,
	StrFlags: []StringFlag{
		{Name: "birthday", Shorthand: "b", Usage: "birthday (YYYY-MM-DD or a date like \"May 17 1990\")"},
	},
	BoolFlags: []BoolFlag{
		{Name: "yes", Shorthand: "y", Usage: "replace an existing birthday without asking"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		birthday, _ := cmd.Flags().GetString("birthday")
		yes, _ := cmd.Flags().GetBool("yes")

		kit := NewPromptKit(cmd.InOrStdin(), cmd.OutOrStdout())
		confirm := kit.Confirm
		if yes {
			confirm = AlwaysYes()
		}

		return withEnv(cmd, func(env *appEnv) error {
			return runInit(cmd, env.model, birthday, kit.Prompt, confirm, time.Now)
		})
	},
}.Build()

func runInit(
	cmd *cobra.Command,
	model *calendar.Model,
	birthday string,
	prompt PromptFunc,
	confirm ConfirmFunc,
	nowFn func() time.Time,
) error {
	out := cmd.OutOrStdout()

	if existing, ok := model.Anchor(); ok {
		replace, err := confirm(fmt.Sprintf("Birthday is already set to %s. Replace it?", dateutil.FormatForDisplay(existing)))
		if err != nil {
			return err
		}
		if !replace {
			_, _ = fmt.Fprintln(out, "Birthday unchanged.")
			return nil
		}
	}

	if strings.TrimSpace(birthday) == "" {
		var err error
		birthday, err = prompt("Your birthday (YYYY-MM-DD)")
		if err != nil {
			return err
		}
	}

	d, err := model.SubmitBirthday(resolveDate(birthday, nowFn()))
	if err := storageWarning(cmd.ErrOrStderr(), err); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Birthday set to %s. You are %s weeks old.\n",
		Primary(dateutil.FormatForDisplay(d)),
		Primary(fmt.Sprint(weeksLived(d, nowFn()))))
	return nil
}

// resolveDate turns natural expressions such as "today" or "May 17 1990"
// into YYYY-MM-DD. Input that does not parse is returned trimmed so the
// calendar can report it.
func resolveDate(input string, now time.Time) string {
	input = strings.TrimSpace(input)
	if d, err := dateutil.ParseDate(input, now); err == nil {
		return dateutil.FormatForStorage(d)
	}
	return input
}

// weeksLived counts the whole weeks between anchor and now.
func weeksLived(anchor, now time.Time) int {
	days := int(dateutil.FromTime(now).Sub(anchor).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / 7
}
