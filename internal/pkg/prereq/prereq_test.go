package prereq

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dsascode/dsc/internal/pkg/log"
)

func stubLookPath(t *testing.T, available ...string) {
	t.Helper()
	original := lookPath
	lookPath = func(command string) (string, error) {
		for _, name := range available {
			if name == command {
				return "/usr/bin/" + command, nil
			}
		}
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", command)
	}
	t.Cleanup(func() {
		lookPath = original
	})
}

func TestAvailable(t *testing.T) {
	stubLookPath(t, "git")
	assert.True(t, Available("git"))
	assert.False(t, Available("poetry"))
}

func TestCheckOne(t *testing.T) {
	stubLookPath(t, "git")
	assert.NoError(t, CheckOne("git"))

	err := CheckOne("poetry")
	assert.Error(t, err)
	assert.Equal(t, `command "poetry" is not available, you have to install it first`, err.Error())
}

func TestCheckAllFound(t *testing.T) {
	stubLookPath(t, "git", "poetry")
	logger := log.NewDebugLogger()
	assert.NoError(t, Check(logger, []string{"git", "poetry"}))
	assert.Contains(t, logger.DebugMessages(), `Command "git" found.`)
	assert.Contains(t, logger.DebugMessages(), `Command "poetry" found.`)
}

func TestCheckSomeMissing(t *testing.T) {
	stubLookPath(t, "git")
	logger := log.NewDebugLogger()
	err := Check(logger, []string{"git", "poetry", "dvc"})
	assert.Error(t, err)
	expected := `missing prerequisites:
  - command "poetry" is not available, you have to install it first
  - command "dvc" is not available, you have to install it first`
	assert.Equal(t, expected, err.Error())
}
