package prereq

import (
	"fmt"
	"os/exec"

	"github.com/dsascode/dsc/internal/pkg/log"
	"github.com/dsascode/dsc/internal/pkg/utils"
)

// lookPath can be replaced in tests.
// nolint: gochecknoglobals
var lookPath = exec.LookPath

// Available returns true if the command is on PATH.
func Available(command string) bool {
	_, err := lookPath(command)
	return err == nil
}

// CheckOne returns an error if the command is not on PATH.
func CheckOne(command string) error {
	if !Available(command) {
		return fmt.Errorf(`command "%s" is not available, you have to install it first`, command)
	}
	return nil
}

// Check all required commands. The check runs before any side effect,
// a missing command aborts the whole operation.
func Check(logger log.Logger, commands []string) error {
	errs := utils.NewMultiError()
	for _, command := range commands {
		if err := CheckOne(command); err != nil {
			errs.Append(err)
			continue
		}
		logger.Debugf(`Command "%s" found.`, command)
	}

	if errs.Len() > 0 {
		return utils.PrefixError("missing prerequisites", errs)
	}
	return nil
}
