package cli

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/storage"
	"github.com/wiverson/life-calendar/internal/storage/memory"
)

var testNow = time.Date(2001, 3, 1, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

// newTestCmd returns a bare command writing to the returned buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd, out, errOut
}

func newTestModel(t *testing.T, kv storage.KV) *calendar.Model {
	t.Helper()
	m, err := calendar.New(kv, calendar.Options{Grid: calendar.GridOptions{Rows: 3}})
	require.NoError(t, err)
	return m
}

// modelWithBirthday returns a calendar anchored at 2000-01-01.
func modelWithBirthday(t *testing.T) (*calendar.Model, *memory.Store) {
	t.Helper()
	kv := memory.New()
	m := newTestModel(t, kv)
	_, err := m.SubmitBirthday("2000-01-01")
	require.NoError(t, err)
	return m, kv
}

func addTrip(t *testing.T, m *calendar.Model) int64 {
	t.Helper()
	e, err := m.SaveEvent(calendar.Form{Name: "Trip", StartDate: "2000-01-10", EndDate: "2000-01-20", Color: "#ff8800"})
	require.NoError(t, err)
	return e.ID
}

func mockPrompt(responses ...string) PromptFunc {
	i := 0
	return func(prompt string) (string, error) {
		if i >= len(responses) {
			return "", fmt.Errorf("unexpected prompt %q", prompt)
		}
		r := responses[i]
		i++
		return r, nil
	}
}

func mockConfirm(answer bool) ConfirmFunc {
	return func(_ string) (bool, error) {
		return answer, nil
	}
}

func mockSelect(index int) SelectFunc {
	return func(_ string, options []string) (int, error) {
		if index >= len(options) {
			return 0, fmt.Errorf("no option %d", index)
		}
		return index, nil
	}
}
