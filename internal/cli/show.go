package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/config"
	"github.com/wiverson/life-calendar/internal/event"
)

var showCmd = LeafCommand{
	Use:   "show",
	Short: "Show the life calendar",
	Args:  cobra.NoArgs,
	IntFlags: []IntFlag{
		{Name: "years", Usage: "number of rows to draw (default from config)"},
	},
	BoolFlags: []BoolFlag{
		{Name: "static", Usage: "print the grid once instead of opening the interactive view"},
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		years, _ := cmd.Flags().GetInt("years")
		static, _ := cmd.Flags().GetBool("static")

		return withEnv(cmd, func(env *appEnv) error {
			return runShow(cmd, env.model, years, static, time.Now)
		})
	},
}.Build()

func runShow(cmd *cobra.Command, model *calendar.Model, years int, static bool, nowFn func() time.Time) error {
	if years < 0 || years > config.MaxYears {
		return fmt.Errorf("invalid --years value %d (expected 1 to %d)", years, config.MaxYears)
	}

	rm, err := renderCalendar(model, years)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	now := nowFn()

	if f, ok := out.(*os.File); static || !ok || !isatty.IsTerminal(f.Fd()) {
		return printStaticGrid(out, rm, model.Events(), now)
	}

	p := tea.NewProgram(newShowModel(model, years, now), tea.WithAltScreen(), tea.WithOutput(out))
	_, err = p.Run()
	return err
}

// renderCalendar builds the render model, overriding the configured row
// count when years is positive.
func renderCalendar(model *calendar.Model, years int) (calendar.RenderModel, error) {
	if years <= 0 {
		return model.Render()
	}
	anchor, ok := model.Anchor()
	if !ok {
		return calendar.RenderModel{}, calendar.ErrNoBirthday
	}
	opts := model.GridOptions()
	opts.Rows = years
	return calendar.BuildRenderModel(anchor, model.Events(), opts), nil
}

func printStaticGrid(w io.Writer, rm calendar.RenderModel, events []event.Event, now time.Time) error {
	_, err := fmt.Fprint(w, renderStatic(rm, events, now))
	return err
}
