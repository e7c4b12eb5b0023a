package version

// Version is overridden at build time with
// -ldflags "-X github.com/frebib/tautulli-status/version.Version=..."
var Version = "dev"
