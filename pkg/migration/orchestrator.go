package migration

import (
	"context"

	"github.com/gitport/gitport/pkg/logger"
	"github.com/gitport/gitport/pkg/workspace"
)

// Run iterates the repository list and migrates each repository in turn.
// Failures are isolated at repository granularity: a fatal failure in one
// repository is logged and the run continues with the next. The unit of
// interruption is "stop before starting the next repository".
func (e *Engine) Run(ctx context.Context, repoURLs []string, overrides map[string]string) error {
	for _, sourceURL := range repoURLs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		logger.Info("Migrating repository", "source", sourceURL)
		if err := e.migrateRepository(ctx, sourceURL, overrides); err != nil {
			logger.Error("Repository migration failed", "source", sourceURL, "error", err)
			continue
		}
		logger.Info("Repository migration completed", "source", sourceURL)
	}
	return nil
}

// migrateRepository runs the full pipeline for one repository inside an
// exclusive workspace, released on every exit path. Stage errors after the
// mirror step are recoverable: they are logged and the remaining stages still
// run.
func (e *Engine) migrateRepository(ctx context.Context, sourceURL string, overrides map[string]string) error {
	spec, err := e.ResolveRepository(ctx, sourceURL, overrides)
	if err != nil {
		return err
	}

	ws, err := workspace.New(e.Options.WorkingDir, spec.DestName)
	if err != nil {
		return err
	}
	defer ws.Release()

	created, err := e.SyncMirror(ctx, spec, ws)
	if err != nil {
		return err
	}

	if err := e.SyncLabels(ctx, spec, created); err != nil {
		logger.Warn("Label synchronization failed", "repo", spec.DestName, "error", err)
	}
	if err := e.SyncSecrets(ctx, spec); err != nil {
		logger.Warn("Secret migration failed", "repo", spec.DestName, "error", err)
	}
	if err := e.MigrateMergeRequests(ctx, spec, ws); err != nil {
		logger.Warn("Merge request migration failed", "repo", spec.DestName, "error", err)
	}
	if err := e.ReconcileTags(spec, ws); err != nil {
		logger.Warn("Tag reconciliation failed", "repo", spec.DestName, "error", err)
	}
	return nil
}
