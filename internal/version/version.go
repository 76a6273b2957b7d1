package version

// Version is the annotator version, overridden at build time with
// -ldflags "-X github.com/annotation-forge/annotator/internal/version.Version=..."
var Version = "0.1.0-dev"
