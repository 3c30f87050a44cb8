package version

// Version is overridden at build time with -ldflags "-X apidocs/internal/version.Version=...".
var Version = "dev"
