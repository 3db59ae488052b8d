package version

// Package version holds build-time metadata injected via -ldflags.
// When nothing is injected, helpers fall back to development defaults.

var (
	// Version is a SemVer tag like v1.2.3 for releases. Empty for dev builds.
	Version = ""
	// Commit is the short git SHA for the build.
	Commit = ""
	// Dirty is "dirty" when the working tree had uncommitted changes, otherwise "clean".
	Dirty = ""
)

// String returns a compact human-readable version for banners and tooltips.
// For releases, returns Version. For dev builds, returns "dev-<sha>" with a
// trailing "*" when the tree was dirty, or plain "dev" with no metadata.
func String() string {
	if Version != "" {
		return Version
	}
	if Commit != "" {
		suffix := Commit
		if Dirty == "dirty" {
			suffix += "*"
		}
		return "dev-" + suffix
	}
	return "dev"
}
