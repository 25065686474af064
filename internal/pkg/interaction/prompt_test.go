package interaction

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newNonInteractivePrompt() *Prompt {
	p := NewPrompt(os.Stdin, os.Stdout, os.Stderr)
	p.SetInteractive(false)
	return p
}

func TestConfirmNonInteractiveReturnsDefault(t *testing.T) {
	t.Parallel()
	p := newNonInteractivePrompt()
	assert.True(t, p.Confirm(&Confirm{Label: "Continue?", Default: true}))
	assert.False(t, p.Confirm(&Confirm{Label: "Continue?", Default: false}))
}

func TestAskNonInteractiveReturnsDefault(t *testing.T) {
	t.Parallel()
	p := newNonInteractivePrompt()

	value, ok := p.Ask(&Question{Label: "Project name", Default: "my-project"})
	assert.True(t, ok)
	assert.Equal(t, "my-project", value)

	value, ok = p.Ask(&Question{Label: "Project name"})
	assert.False(t, ok)
	assert.Empty(t, value)
}
