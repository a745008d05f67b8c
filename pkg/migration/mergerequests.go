package migration

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitport/gitport/pkg/logger"
	"github.com/gitport/gitport/pkg/utils"
	"github.com/gitport/gitport/pkg/workspace"
	"golang.org/x/time/rate"
)

// MigrationMarker prefixes the title of every migrated pull request. The
// prefixed title participates in the signature, so reruns recognize migrated
// requests without a persisted ID map.
const MigrationMarker = "[Migrated] "

// Signature identifies a merge request across platforms by content: marker-
// prefixed title plus the branch pair. Two requests with equal signatures are
// the same request; this is the sole idempotency check.
type Signature struct {
	Title string
	Head  string
	Base  string
}

// NewSignature computes the signature a source merge request will carry on the
// destination. The title is truncated to the destination's limit first, so the
// signature matches what the destination actually stores and lists back.
func NewSignature(mr MergeRequest) Signature {
	return Signature{
		Title: utils.TruncateText(MigrationMarker+mr.Title, utils.MaxPRTitleLength),
		Head:  mr.SourceBranch,
		Base:  mr.TargetBranch,
	}
}

// SignatureOfPullRequest reads the signature off an existing destination pull
// request.
func SignatureOfPullRequest(pr PullRequest) Signature {
	return Signature{
		Title: pr.Title,
		Head:  pr.Head,
		Base:  pr.Base,
	}
}

// OutcomeKind is the terminal state of one merge request's migration.
type OutcomeKind int

const (
	// OutcomeSkipped means the signature matched an existing destination pull
	// request; nothing was created.
	OutcomeSkipped OutcomeKind = iota
	// OutcomeFailed means a precondition could not be met (missing branch) or
	// creation itself failed.
	OutcomeFailed
	// OutcomeMigrated means the pull request was created; enrichment may have
	// partially failed, which does not revert creation.
	OutcomeMigrated
)

// Outcome is the tagged result of one merge request's migration.
type Outcome struct {
	Kind   OutcomeKind
	Reason string
	Number int
}

// MigrateMergeRequests reconciles all source merge requests into destination
// pull requests, one at a time, with a fixed pacing delay between items.
func (e *Engine) MigrateMergeRequests(ctx context.Context, spec *RepositorySpec, ws *workspace.Workspace) error {
	mrs, err := e.Source.ListMergeRequests(ctx, spec.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to list merge requests: %w", err)
	}
	if len(mrs) == 0 {
		return nil
	}

	prs, err := e.Dest.ListPullRequests(ctx, e.Owner, spec.DestName)
	if err != nil {
		return fmt.Errorf("failed to list destination pull requests: %w", err)
	}
	existing := make(map[Signature]struct{})
	for _, pr := range prs {
		existing[SignatureOfPullRequest(pr)] = struct{}{}
	}

	// Pacing control against destination rate limits, not a correctness
	// mechanism.
	limiter := rate.NewLimiter(rate.Every(e.Options.Delay), 1)

	var skipped, failed, migrated int
	for _, mr := range mrs {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		outcome := e.migrateMergeRequest(ctx, spec, ws, mr, existing)
		switch outcome.Kind {
		case OutcomeSkipped:
			skipped++
			logger.Debug("Skipping already migrated MR", "iid", mr.IID, "title", mr.Title)
		case OutcomeFailed:
			failed++
			logger.Warn("Failed to migrate MR", "iid", mr.IID, "title", mr.Title, "reason", outcome.Reason)
		case OutcomeMigrated:
			migrated++
			logger.Info("Migrated MR", "iid", mr.IID, "pr", outcome.Number)
		}
	}

	logger.Info("Merge request migration completed",
		"repo", spec.DestName,
		"total", len(mrs),
		"migrated", migrated,
		"skipped", skipped,
		"failed", failed)
	return nil
}

// migrateMergeRequest runs one merge request through the state machine:
// signature check, branch availability, creation, enrichment.
func (e *Engine) migrateMergeRequest(ctx context.Context, spec *RepositorySpec, ws *workspace.Workspace, mr MergeRequest, existing map[Signature]struct{}) Outcome {
	// 1. Signature check
	sig := NewSignature(mr)
	if _, ok := existing[sig]; ok {
		return Outcome{Kind: OutcomeSkipped}
	}

	// 2. Branch availability. The destination branch list is re-queried at
	// point of use; it can change between merge requests.
	branches, err := e.Dest.ListBranches(ctx, e.Owner, spec.DestName)
	if err != nil {
		return Outcome{Kind: OutcomeFailed, Reason: fmt.Sprintf("failed to list destination branches: %v", err)}
	}
	present := make(map[string]struct{})
	for _, branch := range branches {
		present[branch] = struct{}{}
	}
	for _, branch := range []string{mr.SourceBranch, mr.TargetBranch} {
		if _, ok := present[branch]; ok {
			continue
		}
		if err := e.repairBranch(ws, branch); err != nil {
			return Outcome{Kind: OutcomeFailed, Reason: fmt.Sprintf("missing branch %s: %v", branch, err)}
		}
	}

	// 3. Creation
	pr, err := e.Dest.CreatePullRequest(ctx, e.Owner, spec.DestName, PullRequestOptions{
		Title: sig.Title,
		Body:  synthesizeBody(mr),
		Head:  mr.SourceBranch,
		Base:  mr.TargetBranch,
		Draft: mr.Draft,
	})
	if err != nil {
		return Outcome{Kind: OutcomeFailed, Reason: fmt.Sprintf("failed to create pull request: %v", err)}
	}
	existing[sig] = struct{}{}

	// 4. Enrichment, each step best-effort; nothing here reverts creation.
	e.enrichPullRequest(ctx, spec, mr, pr)

	return Outcome{Kind: OutcomeMigrated, Number: pr.Number}
}

// repairBranch fetches a single branch from the source into a namespaced
// local ref and pushes it to the destination under its original name.
func (e *Engine) repairBranch(ws *workspace.Workspace, branch string) error {
	dir := ws.MirrorDir()
	localRef := "refs/migrate/" + branch
	if err := e.Git.FetchBranchRef(dir, "origin", branch, localRef); err != nil {
		return err
	}
	if err := e.Git.PushRef(dir, destRemote, localRef, branch); err != nil {
		return err
	}
	logger.Debug("Repaired missing destination branch", "branch", branch)
	return nil
}

// enrichPullRequest applies labels, closes non-open requests, and migrates
// discussion notes.
func (e *Engine) enrichPullRequest(ctx context.Context, spec *RepositorySpec, mr MergeRequest, pr *PullRequest) {
	if len(mr.Labels) > 0 {
		if err := e.Dest.AddLabels(ctx, e.Owner, spec.DestName, pr.Number, mr.Labels); err != nil {
			logger.Warn("Failed to add labels to PR", "pr", pr.Number, "error", err)
		}
	}

	if mr.State != "opened" {
		if err := e.Dest.AddLabels(ctx, e.Owner, spec.DestName, pr.Number, []string{mr.State}); err != nil {
			logger.Warn("Failed to add state label to PR", "pr", pr.Number, "state", mr.State, "error", err)
		}
		if err := e.Dest.ClosePullRequest(ctx, e.Owner, spec.DestName, pr.Number); err != nil {
			logger.Warn("Failed to close PR", "pr", pr.Number, "error", err)
		}
	}

	notes, err := e.Source.ListNotes(ctx, spec.ProjectID, mr.IID)
	if err != nil {
		logger.Warn("Failed to list MR notes", "iid", mr.IID, "error", err)
		return
	}
	for _, note := range notes {
		if note.System {
			// Platform-generated audit entries are not migrated.
			continue
		}
		if err := e.Dest.CreateComment(ctx, e.Owner, spec.DestName, pr.Number, formatCommentBody(note)); err != nil {
			logger.Warn("Failed to create comment", "pr", pr.Number, "error", err)
			continue
		}
	}
}

// synthesizeBody builds the destination pull request body: a provenance
// header followed by the sanitized original description.
func synthesizeBody(mr MergeRequest) string {
	createdAt := ""
	if !mr.CreatedAt.IsZero() {
		createdAt = mr.CreatedAt.Format("2006-01-02 15:04:05 MST")
	}

	header := fmt.Sprintf("<details><summary>Migrated merge request</summary>\n\n"+
		"**Original MR:** %s\n"+
		"**Author:** `%s`\n"+
		"**Created:** %s\n"+
		"**State:** %s\n"+
		"**Labels:** %s\n"+
		"</details>\n\n",
		mr.WebURL,
		mr.Author,
		createdAt,
		mr.State,
		strings.Join(mr.Labels, ", "))

	// Leave room for the header within the destination's body limit.
	description := utils.TruncateText(utils.SanitizeBody(mr.Description), utils.MaxPRDescriptionLength-500)
	return utils.TruncateText(header+description, utils.MaxPRDescriptionLength)
}

// formatCommentBody builds a migrated comment: attribution header plus the
// sanitized original note body.
func formatCommentBody(note Note) string {
	commentDate := ""
	if !note.CreatedAt.IsZero() {
		commentDate = note.CreatedAt.Format("2006-01-02 15:04:05 MST")
	}
	body := utils.TruncateText(utils.SanitizeBody(note.Body), utils.MaxCommentLength-200)
	return fmt.Sprintf("`%s` wrote at `%s`:\n\n%s", note.Author, commentDate, body)
}
