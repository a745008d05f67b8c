package migration

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// RepositorySpec is the resolved identity of one repository to migrate.
// Immutable once resolved for the run.
type RepositorySpec struct {
	SourceURL   string
	ProjectID   int
	ProjectPath string
	DestName    string
	Visibility  string
	WebURL      string
}

// DeriveProjectPath derives the URL-encodable project path from a source URL:
// the URL path without its leading slash and trailing .git.
func DeriveProjectPath(sourceURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(sourceURL))
	if err != nil {
		return "", fmt.Errorf("failed to parse source URL %s: %w", sourceURL, err)
	}
	path := strings.Trim(parsed.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	if path == "" {
		return "", fmt.Errorf("source URL has no project path: %s", sourceURL)
	}
	return path, nil
}

// DeriveBaseName derives the repository base name from a source URL: the final
// path segment without .git.
func DeriveBaseName(sourceURL string) (string, error) {
	path, err := DeriveProjectPath(sourceURL)
	if err != nil {
		return "", err
	}
	segments := strings.Split(path, "/")
	return segments[len(segments)-1], nil
}

// ResolveRepository derives the repository spec for one source URL line. The
// destination name is the override entry matching the source URL if present,
// else the base name. Failure to resolve a numeric project identity is fatal
// for this repository.
func (e *Engine) ResolveRepository(ctx context.Context, sourceURL string, overrides map[string]string) (*RepositorySpec, error) {
	projectPath, err := DeriveProjectPath(sourceURL)
	if err != nil {
		return nil, err
	}

	destName, ok := overrides[sourceURL]
	if !ok {
		destName, err = DeriveBaseName(sourceURL)
		if err != nil {
			return nil, err
		}
	}

	project, err := e.Source.ResolveProject(ctx, projectPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project identity for %s: %w", sourceURL, err)
	}

	return &RepositorySpec{
		SourceURL:   sourceURL,
		ProjectID:   project.ID,
		ProjectPath: project.Path,
		DestName:    destName,
		Visibility:  project.Visibility,
		WebURL:      project.WebURL,
	}, nil
}
