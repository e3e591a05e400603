package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ConfirmFunc prompts the user for confirmation and returns true if confirmed.
type ConfirmFunc func(prompt string) (bool, error)

// PromptFunc prompts the user for free-text input and returns the response.
type PromptFunc func(prompt string) (string, error)

// SelectFunc prompts the user to select one option from a list. Returns 0-based index.
type SelectFunc func(title string, options []string) (int, error)

// NewConfirmFunc creates a line-based ConfirmFunc reading y/N answers from in.
func NewConfirmFunc(in io.Reader, out io.Writer) ConfirmFunc {
	r := bufio.NewReader(in)
	return func(prompt string) (bool, error) {
		_, _ = fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := readLine(r)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	}
}

// NewPromptFunc creates a line-based PromptFunc reading one line from in.
func NewPromptFunc(in io.Reader, out io.Writer) PromptFunc {
	r := bufio.NewReader(in)
	return func(prompt string) (string, error) {
		_, _ = fmt.Fprintf(out, "%s: ", prompt)
		return readLine(r)
	}
}

// NewSelectFunc creates a line-based SelectFunc that lists numbered options
// and reads the chosen number from in.
func NewSelectFunc(in io.Reader, out io.Writer) SelectFunc {
	r := bufio.NewReader(in)
	return func(title string, options []string) (int, error) {
		if len(options) == 0 {
			return 0, errors.New("nothing to select")
		}
		_, _ = fmt.Fprintln(out, title)
		for i, o := range options {
			_, _ = fmt.Fprintf(out, "  %d) %s\n", i+1, o)
		}
		_, _ = fmt.Fprintf(out, "Choice [1-%d]: ", len(options))
		line, err := readLine(r)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(options) {
			return 0, fmt.Errorf("invalid choice %q", line)
		}
		return n - 1, nil
	}
}

// readLine returns the next trimmed line. EOF after a partial line returns
// that line; EOF with no input returns an empty string.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AlwaysYes returns a ConfirmFunc that always confirms.
func AlwaysYes() ConfirmFunc {
	return func(_ string) (bool, error) {
		return true, nil
	}
}

// newHuhConfirmFunc creates a ConfirmFunc using huh's interactive confirm component.
func newHuhConfirmFunc() ConfirmFunc {
	return func(prompt string) (bool, error) {
		var result bool
		err := huh.NewConfirm().
			Title(prompt).
			Value(&result).
			Run()
		return result, err
	}
}

// newHuhPromptFunc creates a PromptFunc using huh's interactive input component.
func newHuhPromptFunc() PromptFunc {
	return func(prompt string) (string, error) {
		var result string
		err := huh.NewInput().
			Title(prompt).
			Value(&result).
			Run()
		return strings.TrimSpace(result), err
	}
}

// newHuhSelectFunc creates a SelectFunc using huh's interactive select component.
func newHuhSelectFunc() SelectFunc {
	return func(title string, options []string) (int, error) {
		var result int
		opts := make([]huh.Option[int], len(options))
		for i, o := range options {
			opts[i] = huh.NewOption(o, i)
		}
		err := huh.NewSelect[int]().
			Title(title).
			Options(opts...).
			Value(&result).
			Run()
		return result, err
	}
}

// PromptKit bundles all prompt function types for dependency injection.
type PromptKit struct {
	Prompt  PromptFunc
	Confirm ConfirmFunc
	Select  SelectFunc
}

// NewPromptKit returns huh-based prompts when in is a terminal and
// line-based prompts otherwise, so piped input keeps working.
func NewPromptKit(in io.Reader, out io.Writer) PromptKit {
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return PromptKit{
			Prompt:  newHuhPromptFunc(),
			Confirm: newHuhConfirmFunc(),
			Select:  newHuhSelectFunc(),
		}
	}
	r := bufio.NewReader(in)
	return PromptKit{
		Prompt:  NewPromptFunc(r, out),
		Confirm: NewConfirmFunc(r, out),
		Select:  NewSelectFunc(r, out),
	}
}
