package migration

import (
	"context"
	"time"
)

// Project is the resolved identity of a source project.
type Project struct {
	ID         int
	Path       string
	Visibility string
	WebURL     string
}

// Label is a category label on either platform. Name is the unique key on the
// destination.
type Label struct {
	Name        string
	Color       string
	Description string
}

// Variable is a source CI/CD variable. The value is only visible on the source
// side; the destination never returns stored values.
type Variable struct {
	Key   string
	Value string
}

// MergeRequest is a source merge request.
type MergeRequest struct {
	IID          int
	Title        string
	Description  string
	SourceBranch string
	TargetBranch string
	State        string
	Author       string
	CreatedAt    time.Time
	Labels       []string
	Draft        bool
	WebURL       string
}

// Note is a discussion comment on a merge request. System notes are
// platform-generated audit entries and are not migrated.
type Note struct {
	Author    string
	Body      string
	CreatedAt time.Time
	System    bool
}

// PullRequest is an existing destination pull request, reduced to the fields
// participating in the migration signature.
type PullRequest struct {
	Number int
	Title  string
	Head   string
	Base   string
}

// PullRequestOptions describes a pull request to create on the destination.
type PullRequestOptions struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}

// PublicKey is the destination repository's secret-encryption key. Key is the
// base64-encoded 32-byte sealed-box public key.
type PublicKey struct {
	KeyID string
	Key   string
}

// Source is the source platform API.
type Source interface {
	ResolveProject(ctx context.Context, path string) (*Project, error)
	ListLabels(ctx context.Context, projectID int) ([]Label, error)
	ListVariables(ctx context.Context, projectID int) ([]Variable, error)
	ListMergeRequests(ctx context.Context, projectID int) ([]MergeRequest, error)
	ListNotes(ctx context.Context, projectID, mrIID int) ([]Note, error)
}

// Destination is the destination platform API. Secrets are write-only: only
// names ever come back.
type Destination interface {
	CurrentLogin(ctx context.Context) (string, error)
	RepositoryExists(ctx context.Context, owner, repo string) (bool, error)
	CreateRepository(ctx context.Context, owner, repo, description string, private bool) error
	ListLabelNames(ctx context.Context, owner, repo string) ([]string, error)
	CreateLabel(ctx context.Context, owner, repo string, label Label) error
	ListSecretNames(ctx context.Context, owner, repo string) ([]string, error)
	GetPublicKey(ctx context.Context, owner, repo string) (*PublicKey, error)
	PutSecret(ctx context.Context, owner, repo, name, keyID, encryptedValue string) error
	ListPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error)
	CreatePullRequest(ctx context.Context, owner, repo string, opts PullRequestOptions) (*PullRequest, error)
	AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error
	ClosePullRequest(ctx context.Context, owner, repo string, number int) error
	CreateComment(ctx context.Context, owner, repo string, number int, body string) error
	ListBranches(ctx context.Context, owner, repo string) ([]string, error)
}

// GitRunner is the version control transport, operating on the repository's
// bare mirror clone inside the workspace.
type GitRunner interface {
	MirrorClone(dir, url string) error
	PushMirror(dir, url string) error
	FetchTags(dir string) error
	AddRemote(dir, name, url string) error
	Fetch(dir, remote string) error
	PushAllBranchesForce(dir, remote string) error
	PushBranch(dir, remote, branch string) error
	PushTags(dir, remote string) error
	FetchTagRef(dir, remote, tag string) error
	PushTag(dir, remote, tag string) error
	FetchBranchRef(dir, remote, branch, localRef string) error
	PushRef(dir, remote, localRef, branch string) error
	ListBranches(dir string) ([]string, error)
	ListRemoteTags(dir, url string) ([]string, error)
}
