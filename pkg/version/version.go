// Package version exposes the service identity reported by the health
// endpoint and the request logger.
//
// Priority for the commit: -ldflags override > VCS info from debug.BuildInfo > "dev".
//
//	version.Version    // "2.0.0"
//	version.GitCommit  // "a3f8c2d1" or "dev"
//	version.Full()     // "prism-ai/2.0.0+a3f8c2d1"
package version

import "runtime/debug"

// ServiceName is the name reported by GET /api/health.
const ServiceName = "prism-ai"

// Version is the released API version of the pipeline service.
const Version = "2.0.0"

// gitCommitOverride is set via -ldflags at build time for container builds
// where .git is unavailable.
var gitCommitOverride string

// GitCommit is the short git commit hash (8 chars), or "dev".
var GitCommit = resolveCommit(gitCommitOverride, debug.ReadBuildInfo)

func resolveCommit(override string, readInfo func() (*debug.BuildInfo, bool)) string {
	if override != "" {
		return shorten(override)
	}
	info, ok := readInfo()
	if !ok {
		return "dev"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return shorten(s.Value)
		}
	}
	return "dev"
}

func shorten(rev string) string {
	if len(rev) > 8 {
		return rev[:8]
	}
	return rev
}

// Full returns "prism-ai/<version>+<commit>" for user-agent strings and logs.
func Full() string {
	return ServiceName + "/" + Version + "+" + GitCommit
}
