package migration

import (
	"fmt"
	"strings"
	"time"
)

// destRemote is the name under which the destination repository is registered
// in the mirror clone.
const destRemote = "dest"

// Options tunes a migration run.
type Options struct {
	// WorkingDir is the base directory under which each repository gets an
	// exclusive workspace.
	WorkingDir string
	// Delay is the fixed pause applied after each migrated merge request.
	Delay time.Duration
}

// GitAuth holds the tokens embedded into git remote URLs.
type GitAuth struct {
	SourceToken   string
	SourceBaseURL string
	DestToken     string
}

// Engine drives the migration of a list of repositories. All collaborators
// are injected; the engine holds no state between repositories beyond them.
type Engine struct {
	Source  Source
	Dest    Destination
	Git     GitRunner
	Owner   string
	Auth    GitAuth
	Options Options
}

// sourceRemoteURL builds the authenticated clone URL for a source project.
func (e *Engine) sourceRemoteURL(spec *RepositorySpec) string {
	host := strings.TrimPrefix(strings.TrimPrefix(e.Auth.SourceBaseURL, "https://"), "http://")
	return fmt.Sprintf("https://oauth2:%s@%s/%s.git", e.Auth.SourceToken, host, spec.ProjectPath)
}

// destRemoteURL builds the authenticated push URL for the destination
// repository.
func (e *Engine) destRemoteURL(spec *RepositorySpec) string {
	return fmt.Sprintf("https://%s@github.com/%s/%s.git", e.Auth.DestToken, e.Owner, spec.DestName)
}
