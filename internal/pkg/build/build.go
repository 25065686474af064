package build

// Values are set by the build, see Makefile.
var (
	BuildVersion = DevVersionValue // nolint gochecknoglobals
	BuildDate    = "-"             // nolint gochecknoglobals
	GitCommit    = "-"             // nolint gochecknoglobals
)

const DevVersionValue = "dev"
