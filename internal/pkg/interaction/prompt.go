package interaction

import (
	"errors"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

type Confirm struct {
	Label   string
	Help    string
	Default bool
}

type Question struct {
	Label     string
	Help      string
	Default   string
	Validator survey.Validator
	Hidden    bool
}

// Prompt is a user interaction, it degrades to the default values
// when the terminal is not interactive.
type Prompt struct {
	interactive bool
	stdin       terminal.FileReader
	stdout      terminal.FileWriter
	stderr      io.Writer
}

func NewPrompt(stdin terminal.FileReader, stdout terminal.FileWriter, stderr io.Writer) *Prompt {
	return &Prompt{
		interactive: isInteractiveTerminal(stdin, stdout),
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}
}

func isInteractiveTerminal(stdin terminal.FileReader, stdout terminal.FileWriter) bool {
	return isatty.IsTerminal(stdin.Fd()) && isatty.IsTerminal(stdout.Fd())
}

// SetInteractive overrides the terminal detection, for tests.
func (p *Prompt) SetInteractive(v bool) {
	p.interactive = v
}

func (p *Prompt) IsInteractive() bool {
	return p.interactive
}

func (p *Prompt) Printf(format string, a ...any) {
	fmt.Fprintf(p.stdout, format+"\n", a...)
}

func (p *Prompt) Confirm(c *Confirm) bool {
	if !p.interactive {
		return c.Default
	}

	result := c.Default
	err := survey.AskOne(
		&survey.Confirm{Message: c.Label, Help: c.Help, Default: c.Default},
		&result,
		p.stdio(),
	)
	if err != nil {
		p.handleError(err)
		return c.Default
	}
	return result
}

func (p *Prompt) Ask(q *Question) (result string, ok bool) {
	if !p.interactive {
		return q.Default, len(q.Default) > 0
	}

	var prompt survey.Prompt
	if q.Hidden {
		prompt = &survey.Password{Message: q.Label, Help: q.Help}
	} else {
		prompt = &survey.Input{Message: q.Label, Help: q.Help, Default: q.Default}
	}

	opts := []survey.AskOpt{p.stdio()}
	if q.Validator != nil {
		opts = append(opts, survey.WithValidator(q.Validator))
	}

	if err := survey.AskOne(prompt, &result, opts...); err != nil {
		p.handleError(err)
		return "", false
	}
	return result, true
}

func (p *Prompt) stdio() survey.AskOpt {
	return survey.WithStdio(p.stdin, p.stdout, p.stderr)
}

func (p *Prompt) handleError(err error) {
	if errors.Is(err, terminal.InterruptErr) {
		fmt.Fprintln(p.stderr, "Aborted.")
		return
	}
	fmt.Fprintf(p.stderr, "Prompt failed: %s\n", err)
}
