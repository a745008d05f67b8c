package migration

import (
	"context"
	"fmt"

	"github.com/gitport/gitport/pkg/logger"
	"github.com/gitport/gitport/pkg/workspace"
)

// SyncMirror reconciles the full object history of one repository: branches,
// commits, tags. It returns whether the destination repository was created on
// this run, which selects the bootstrap paths of the later stages.
//
// Destination-absent: create the repository and push an exact mirror; the
// destination is empty, so mirror semantics are safe. Destination-present:
// force-push source branches under their own names without prune semantics,
// so destination-only branches survive, then push tags separately.
func (e *Engine) SyncMirror(ctx context.Context, spec *RepositorySpec, ws *workspace.Workspace) (bool, error) {
	exists, err := e.Dest.RepositoryExists(ctx, e.Owner, spec.DestName)
	if err != nil {
		return false, err
	}

	dir := ws.MirrorDir()
	sourceURL := e.sourceRemoteURL(spec)

	if !exists {
		logger.Info("Destination repository does not exist, creating...", "owner", e.Owner, "repo", spec.DestName)
		description := fmt.Sprintf("Migrated from GitLab: %s", spec.ProjectPath)
		private := spec.Visibility == "private"
		if err := e.Dest.CreateRepository(ctx, e.Owner, spec.DestName, description, private); err != nil {
			return false, err
		}

		if err := e.Git.MirrorClone(dir, sourceURL); err != nil {
			return false, err
		}
		if err := e.Git.AddRemote(dir, destRemote, e.destRemoteURL(spec)); err != nil {
			return false, err
		}
		if err := e.Git.PushMirror(dir, destRemote); err != nil {
			return false, fmt.Errorf("failed to push bootstrap mirror: %w", err)
		}
		logger.Info("Bootstrapped destination repository", "repo", spec.DestName)
		return true, nil
	}

	if err := e.Git.MirrorClone(dir, sourceURL); err != nil {
		return false, err
	}
	if err := e.Git.FetchTags(dir); err != nil {
		return false, err
	}
	if err := e.Git.AddRemote(dir, destRemote, e.destRemoteURL(spec)); err != nil {
		return false, err
	}
	if err := e.Git.Fetch(dir, destRemote); err != nil {
		return false, err
	}

	// Force-push overwrites same-named branches with the source's version;
	// branches that exist only on the destination are never touched.
	if err := e.Git.PushAllBranchesForce(dir, destRemote); err != nil {
		logger.Warn("Bulk branch push failed, falling back to per-branch pushes", "repo", spec.DestName, "error", err)
		e.pushBranchesIndividually(dir, spec)
	}

	if err := e.Git.PushTags(dir, destRemote); err != nil {
		// The tag reconciler repairs missing tags afterwards.
		logger.Warn("Failed to push tags", "repo", spec.DestName, "error", err)
	}
	return false, nil
}

// pushBranchesIndividually pushes branches one by one so a single bad ref does
// not block the rest. Failures are reported and skipped.
func (e *Engine) pushBranchesIndividually(dir string, spec *RepositorySpec) {
	branches, err := e.Git.ListBranches(dir)
	if err != nil {
		logger.Warn("Failed to list local branches for fallback push", "repo", spec.DestName, "error", err)
		return
	}
	for _, branch := range branches {
		if err := e.Git.PushBranch(dir, destRemote, branch); err != nil {
			logger.Warn("Failed to push branch", "repo", spec.DestName, "branch", branch, "error", err)
			continue
		}
		logger.Debug("Pushed branch", "repo", spec.DestName, "branch", branch)
	}
}
