package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gitport/gitport/pkg/utils"
)

// Runner drives the system git binary. All repository-scoped operations take
// the directory of a bare mirror clone; remote-scoped operations take a URL.
type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

// MirrorClone creates a bare mirror clone of url at dir.
func (r *Runner) MirrorClone(dir, url string) error {
	cloneCmd := fmt.Sprintf("git clone --mirror %s %s", url, filepath.Base(dir))
	if err := utils.ExecuteCommand(filepath.Dir(dir), cloneCmd); err != nil {
		return fmt.Errorf("failed to mirror clone: %w", err)
	}
	return nil
}

// PushMirror pushes an exact replica of all refs to the remote URL, including
// ref deletions. Only safe against an empty destination.
func (r *Runner) PushMirror(dir, url string) error {
	if err := utils.ExecuteCommand(dir, fmt.Sprintf("git push --mirror %s", url)); err != nil {
		return fmt.Errorf("failed to mirror push: %w", err)
	}
	return nil
}

// FetchTags fetches all tags from the origin remote.
func (r *Runner) FetchTags(dir string) error {
	if err := utils.ExecuteCommand(dir, "git fetch origin --tags"); err != nil {
		return fmt.Errorf("failed to fetch tags: %w", err)
	}
	return nil
}

// AddRemote registers a named remote.
func (r *Runner) AddRemote(dir, name, url string) error {
	if err := utils.ExecuteCommand(dir, fmt.Sprintf("git remote add %s %s", name, url)); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}

// Fetch fetches the current refs of a named remote.
func (r *Runner) Fetch(dir, remote string) error {
	if err := utils.ExecuteCommand(dir, fmt.Sprintf("git fetch %s", remote)); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", remote, err)
	}
	return nil
}

// PushAllBranchesForce force-pushes every local branch to the remote under its
// own name. No mirror or prune semantics: remote-only branches are untouched.
func (r *Runner) PushAllBranchesForce(dir, remote string) error {
	pushCmd := fmt.Sprintf("git push %s --force 'refs/heads/*:refs/heads/*'", remote)
	if err := utils.ExecuteCommand(dir, pushCmd); err != nil {
		return fmt.Errorf("failed to push branches: %w", err)
	}
	return nil
}

// PushBranch force-pushes a single branch to the remote.
func (r *Runner) PushBranch(dir, remote, branch string) error {
	pushCmd := fmt.Sprintf("git push %s --force refs/heads/%s:refs/heads/%s", remote, branch, branch)
	if err := utils.ExecuteCommand(dir, pushCmd); err != nil {
		return fmt.Errorf("failed to push branch %s: %w", branch, err)
	}
	return nil
}

// PushTags pushes all local tags to the remote.
func (r *Runner) PushTags(dir, remote string) error {
	if err := utils.ExecuteCommand(dir, fmt.Sprintf("git push %s --tags", remote)); err != nil {
		return fmt.Errorf("failed to push tags: %w", err)
	}
	return nil
}

// FetchTagRef fetches a single tag ref from the remote.
func (r *Runner) FetchTagRef(dir, remote, tag string) error {
	fetchCmd := fmt.Sprintf("git fetch %s refs/tags/%s:refs/tags/%s", remote, tag, tag)
	if err := utils.ExecuteCommand(dir, fetchCmd); err != nil {
		return fmt.Errorf("failed to fetch tag %s: %w", tag, err)
	}
	return nil
}

// PushTag pushes a single tag to the remote.
func (r *Runner) PushTag(dir, remote, tag string) error {
	if err := utils.ExecuteCommand(dir, fmt.Sprintf("git push %s refs/tags/%s", remote, tag)); err != nil {
		return fmt.Errorf("failed to push tag %s: %w", tag, err)
	}
	return nil
}

// FetchBranchRef fetches a single branch from the remote into a namespaced
// local ref. The leading '+' lets reruns overwrite the local copy.
func (r *Runner) FetchBranchRef(dir, remote, branch, localRef string) error {
	fetchCmd := fmt.Sprintf("git fetch %s +refs/heads/%s:%s", remote, branch, localRef)
	if err := utils.ExecuteCommand(dir, fetchCmd); err != nil {
		return fmt.Errorf("failed to fetch branch %s: %w", branch, err)
	}
	return nil
}

// PushRef pushes a local ref to the remote under the given branch name.
func (r *Runner) PushRef(dir, remote, localRef, branch string) error {
	pushCmd := fmt.Sprintf("git push %s %s:refs/heads/%s", remote, localRef, branch)
	if err := utils.ExecuteCommand(dir, pushCmd); err != nil {
		return fmt.Errorf("failed to push ref %s: %w", localRef, err)
	}
	return nil
}

// ListBranches lists local branch names of the clone.
func (r *Runner) ListBranches(dir string) ([]string, error) {
	output, err := utils.ExecuteCommandOutput(dir, "git for-each-ref refs/heads --format='%(refname:short)'")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return splitLines(output), nil
}

// ListRemoteTags lists tag names visible on a remote without cloning it.
func (r *Runner) ListRemoteTags(dir, url string) ([]string, error) {
	output, err := utils.ExecuteCommandOutput(dir, fmt.Sprintf("git ls-remote --tags --refs %s", url))
	if err != nil {
		return nil, fmt.Errorf("failed to list remote tags: %w", err)
	}
	return ParseLsRemoteTags(output), nil
}

// ParseLsRemoteTags extracts tag names from `git ls-remote --tags --refs`
// output.
func ParseLsRemoteTags(output string) []string {
	var tags []string
	for _, line := range splitLines(output) {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		ref := fields[1]
		if !strings.HasPrefix(ref, "refs/tags/") {
			continue
		}
		tags = append(tags, strings.TrimPrefix(ref, "refs/tags/"))
	}
	return tags
}

func splitLines(output string) []string {
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
