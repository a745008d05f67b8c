package config

import "time"

type GlobalConfig struct {
	GitLabToken               string
	GitLabURL                 string
	GitHubGitToken            string
	GitHubApiToken            string
	GitHubAppID               int
	GitHubAppInstallationID   int
	GitHubAppPrivateKey       string
	GitHubAppPrivateKeyAsFile bool
	GitHubOwner               string
	WorkingDir                string
	LogLevel                  string
}

type MigrateConfig struct {
	// ReposFile is the ordered list of source repository URLs, one per line.
	// Blank lines and lines starting with '#' are skipped.
	ReposFile string
	// OverridesFile is an optional two-column CSV mapping a source URL to a
	// destination repository name.
	OverridesFile string
	// Delay is the fixed pause applied after each migrated merge request.
	Delay time.Duration
}
