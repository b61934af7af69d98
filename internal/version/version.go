package version

// Set through -ldflags "-X github.com/bnema/mfimport/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
)
