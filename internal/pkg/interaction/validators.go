package interaction

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
)

// nolint: gochecknoglobals
var datasetRefRegexp = regexp.MustCompile(`^[A-Za-z0-9._-]+/[A-Za-z0-9._-]+$`)

func ValueRequired(val any) error {
	str, ok := val.(string)
	if !ok || len(str) == 0 {
		return errors.New("value is required")
	}
	return nil
}

func UrlValidator(val any) error {
	if err := ValueRequired(val); err != nil {
		return err
	}
	str := val.(string)
	u, err := url.Parse(str)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return errors.New("invalid URL")
	}
	return nil
}

// DatasetRefValidator checks the "owner/dataset" format used by the dataset CLI.
func DatasetRefValidator(val any) error {
	if err := ValueRequired(val); err != nil {
		return err
	}
	str := val.(string)
	if !datasetRefRegexp.MatchString(str) {
		return fmt.Errorf(`invalid dataset reference "%s", expected format "owner/dataset"`, str)
	}
	return nil
}
