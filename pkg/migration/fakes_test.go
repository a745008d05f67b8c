package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitport/gitport/pkg/utils"
)

// fakeSource is an in-memory Source.
type fakeSource struct {
	projects  map[string]*Project
	labels    []Label
	variables []Variable
	mrs       []MergeRequest
	notes     map[int][]Note
}

func (s *fakeSource) ResolveProject(_ context.Context, path string) (*Project, error) {
	project, ok := s.projects[path]
	if !ok {
		return nil, fmt.Errorf("project not found: %s", path)
	}
	return project, nil
}

func (s *fakeSource) ListLabels(context.Context, int) ([]Label, error) {
	return s.labels, nil
}

func (s *fakeSource) ListVariables(context.Context, int) ([]Variable, error) {
	return s.variables, nil
}

func (s *fakeSource) ListMergeRequests(context.Context, int) ([]MergeRequest, error) {
	return s.mrs, nil
}

func (s *fakeSource) ListNotes(_ context.Context, _ int, mrIID int) ([]Note, error) {
	return s.notes[mrIID], nil
}

// fakeDest is an in-memory Destination recording every mutation.
type fakeDest struct {
	login        string
	repoExists   bool
	createdRepos []string

	labelNames    []string
	createdLabels []Label

	secretNames  []string
	publicKey    *PublicKey
	publicKeyErr error
	putSecrets   map[string]string // name -> encrypted value
	putKeyIDs    map[string]string // name -> key id

	prs          []PullRequest
	nextPRNumber int
	createPRErr  error

	branches    []string
	addedLabels map[int][]string
	closedPRs   []int
	comments    map[int][]string
}

func newFakeDest() *fakeDest {
	return &fakeDest{
		login:        "octocat",
		nextPRNumber: 1,
		putSecrets:   make(map[string]string),
		putKeyIDs:    make(map[string]string),
		addedLabels:  make(map[int][]string),
		comments:     make(map[int][]string),
	}
}

func (d *fakeDest) CurrentLogin(context.Context) (string, error) {
	return d.login, nil
}

func (d *fakeDest) RepositoryExists(context.Context, string, string) (bool, error) {
	return d.repoExists, nil
}

func (d *fakeDest) CreateRepository(_ context.Context, _, repo, _ string, _ bool) error {
	d.createdRepos = append(d.createdRepos, repo)
	d.repoExists = true
	return nil
}

func (d *fakeDest) ListLabelNames(context.Context, string, string) ([]string, error) {
	return d.labelNames, nil
}

func (d *fakeDest) CreateLabel(_ context.Context, _, _ string, label Label) error {
	d.createdLabels = append(d.createdLabels, label)
	d.labelNames = append(d.labelNames, label.Name)
	return nil
}

func (d *fakeDest) ListSecretNames(context.Context, string, string) ([]string, error) {
	return d.secretNames, nil
}

func (d *fakeDest) GetPublicKey(context.Context, string, string) (*PublicKey, error) {
	if d.publicKeyErr != nil {
		return nil, d.publicKeyErr
	}
	return d.publicKey, nil
}

func (d *fakeDest) PutSecret(_ context.Context, _, _, name, keyID, encryptedValue string) error {
	d.putSecrets[name] = encryptedValue
	d.putKeyIDs[name] = keyID
	d.secretNames = append(d.secretNames, name)
	return nil
}

func (d *fakeDest) ListPullRequests(context.Context, string, string) ([]PullRequest, error) {
	return d.prs, nil
}

func (d *fakeDest) CreatePullRequest(_ context.Context, _, _ string, opts PullRequestOptions) (*PullRequest, error) {
	if d.createPRErr != nil {
		return nil, d.createPRErr
	}
	pr := PullRequest{
		Number: d.nextPRNumber,
		// The destination stores and lists back the truncated title, like the
		// real adapter.
		Title: utils.TruncateText(opts.Title, utils.MaxPRTitleLength),
		Head:  opts.Head,
		Base:  opts.Base,
	}
	d.nextPRNumber++
	d.prs = append(d.prs, pr)
	return &pr, nil
}

func (d *fakeDest) AddLabels(_ context.Context, _, _ string, number int, labels []string) error {
	d.addedLabels[number] = append(d.addedLabels[number], labels...)
	return nil
}

func (d *fakeDest) ClosePullRequest(_ context.Context, _, _ string, number int) error {
	d.closedPRs = append(d.closedPRs, number)
	return nil
}

func (d *fakeDest) CreateComment(_ context.Context, _, _ string, number int, body string) error {
	d.comments[number] = append(d.comments[number], body)
	return nil
}

func (d *fakeDest) ListBranches(context.Context, string, string) ([]string, error) {
	return d.branches, nil
}

// fakeGit records transport operations instead of shelling out.
type fakeGit struct {
	calls []string

	localBranches []string
	remoteTags    map[string][]string

	failBulkPush    bool
	failPushBranch  map[string]bool
	failFetchBranch map[string]bool
	failFetchTag    map[string]bool
}

func newFakeGit() *fakeGit {
	return &fakeGit{
		remoteTags:      make(map[string][]string),
		failPushBranch:  make(map[string]bool),
		failFetchBranch: make(map[string]bool),
		failFetchTag:    make(map[string]bool),
	}
}

func (g *fakeGit) record(format string, args ...interface{}) {
	g.calls = append(g.calls, fmt.Sprintf(format, args...))
}

func (g *fakeGit) MirrorClone(_, url string) error {
	g.record("clone %s", url)
	return nil
}

func (g *fakeGit) PushMirror(_, remote string) error {
	g.record("push-mirror %s", remote)
	return nil
}

func (g *fakeGit) FetchTags(string) error {
	g.record("fetch-tags")
	return nil
}

func (g *fakeGit) AddRemote(_, name, url string) error {
	g.record("add-remote %s %s", name, url)
	return nil
}

func (g *fakeGit) Fetch(_, remote string) error {
	g.record("fetch %s", remote)
	return nil
}

func (g *fakeGit) PushAllBranchesForce(_, remote string) error {
	g.record("push-all-force %s", remote)
	if g.failBulkPush {
		return errors.New("bulk push failed")
	}
	return nil
}

func (g *fakeGit) PushBranch(_, remote, branch string) error {
	g.record("push-branch %s %s", remote, branch)
	if g.failPushBranch[branch] {
		return fmt.Errorf("push failed: %s", branch)
	}
	return nil
}

func (g *fakeGit) PushTags(_, remote string) error {
	g.record("push-tags %s", remote)
	return nil
}

func (g *fakeGit) FetchTagRef(_, remote, tag string) error {
	g.record("fetch-tag %s %s", remote, tag)
	if g.failFetchTag[tag] {
		return fmt.Errorf("fetch failed: %s", tag)
	}
	return nil
}

func (g *fakeGit) PushTag(_, remote, tag string) error {
	g.record("push-tag %s %s", remote, tag)
	return nil
}

func (g *fakeGit) FetchBranchRef(_, remote, branch, localRef string) error {
	g.record("fetch-branch %s %s %s", remote, branch, localRef)
	if g.failFetchBranch[branch] {
		return fmt.Errorf("fetch failed: %s", branch)
	}
	return nil
}

func (g *fakeGit) PushRef(_, remote, localRef, branch string) error {
	g.record("push-ref %s %s %s", remote, localRef, branch)
	return nil
}

func (g *fakeGit) ListBranches(string) ([]string, error) {
	return g.localBranches, nil
}

func (g *fakeGit) ListRemoteTags(_, remote string) ([]string, error) {
	return g.remoteTags[remote], nil
}
