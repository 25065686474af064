package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/dsascode/dsc/internal/pkg/log"
	"github.com/dsascode/dsc/internal/pkg/prereq"
	"github.com/dsascode/dsc/internal/pkg/utils"
)

// printToolsStatus logs one line per tool and returns an error
// when some of the tools is not available.
func printToolsStatus(logger log.Logger, tools []string) error {
	errs := utils.NewMultiError()
	for _, tool := range tools {
		if prereq.Available(tool) {
			logger.Infof(`%s %s`, color.GreenString("[ok]"), tool)
		} else {
			logger.Infof(`%s %s`, color.RedString("[missing]"), tool)
			errs.Append(fmt.Errorf(`command "%s" is not available, you have to install it first`, tool))
		}
	}

	if errs.Len() > 0 {
		return utils.PrefixError("missing prerequisites", errs)
	}
	return nil
}
