package migration

import (
	"fmt"

	"github.com/gitport/gitport/pkg/logger"
	"github.com/gitport/gitport/pkg/workspace"
)

// ReconcileTags is a verification pass after the bulk mirror step: it lists
// tags on source and destination independently, and repairs each tag present
// on source but missing on destination by fetching that single ref and
// pushing it. Guards against silent tag loss in the bulk push path.
func (e *Engine) ReconcileTags(spec *RepositorySpec, ws *workspace.Workspace) error {
	dir := ws.MirrorDir()

	sourceTags, err := e.Git.ListRemoteTags(dir, "origin")
	if err != nil {
		return fmt.Errorf("failed to list source tags: %w", err)
	}
	destTags, err := e.Git.ListRemoteTags(dir, destRemote)
	if err != nil {
		return fmt.Errorf("failed to list destination tags: %w", err)
	}

	missing := MissingTags(sourceTags, destTags)
	if len(missing) == 0 {
		logger.Debug("All tags present on destination", "repo", spec.DestName, "tags", len(sourceTags))
		return nil
	}

	var repaired int
	for _, tag := range missing {
		if err := e.Git.FetchTagRef(dir, "origin", tag); err != nil {
			logger.Warn("Failed to fetch missing tag", "repo", spec.DestName, "tag", tag, "error", err)
			continue
		}
		if err := e.Git.PushTag(dir, destRemote, tag); err != nil {
			logger.Warn("Failed to push missing tag", "repo", spec.DestName, "tag", tag, "error", err)
			continue
		}
		repaired++
	}
	logger.Info("Reconciled tags", "repo", spec.DestName, "missing", len(missing), "repaired", repaired)
	return nil
}

// MissingTags computes source − destination by tag name, preserving source
// order.
func MissingTags(sourceTags, destTags []string) []string {
	present := make(map[string]struct{}, len(destTags))
	for _, tag := range destTags {
		present[tag] = struct{}{}
	}
	var missing []string
	for _, tag := range sourceTags {
		if _, ok := present[tag]; !ok {
			missing = append(missing, tag)
		}
	}
	return missing
}
