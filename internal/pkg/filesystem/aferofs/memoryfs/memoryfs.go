package memoryfs

import (
	"github.com/spf13/afero"
)

func New() afero.Fs {
	return afero.NewMemMapFs()
}
