package github

import (
	"context"
	"fmt"

	"github.com/gitport/gitport/pkg/logger"
	githublib "github.com/google/go-github/v70/github"
	"github.com/shurcooL/githubv4"
)

// CurrentLogin resolves the authenticated user's login, used to namespace
// destination repositories when no owner is configured.
func (client *Client) CurrentLogin(ctx context.Context) (string, error) {
	var login string
	err := RetryableOperation(ctx, func() error {
		user, _, err := client.GetInner().Users.Get(ctx, "")
		if err != nil {
			return err
		}
		login = user.GetLogin()
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to resolve authenticated user: %w", err)
	}
	return login, nil
}

// RepositoryExists checks whether the repository exists on GitHub.
func (client *Client) RepositoryExists(ctx context.Context, owner, repo string) (bool, error) {
	var exists bool
	err := RetryableOperation(ctx, func() error {
		_, resp, err := client.GetInner().Repositories.Get(ctx, owner, repo)
		if err != nil {
			if resp != nil && resp.StatusCode == 404 {
				// 404 just means the repository is absent
				exists = false
				return nil
			}
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to check GitHub repository: %w", err)
	}
	return exists, nil
}

// CreateRepository creates an empty GitHub repository. The GraphQL API is used
// so visibility can be set in the same call.
func (client *Client) CreateRepository(ctx context.Context, owner, repo, description string, private bool) error {
	logger.Debug("Creating GitHub repository", "owner", owner, "repo", repo, "private", private)

	ownerDetail, _, err := client.GetInner().Users.Get(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to get owner detail: %w", err)
	}

	var mutation struct {
		CreateRepository struct {
			Repository struct {
				ID    githubv4.ID
				Name  githubv4.String
				Owner struct {
					Login githubv4.String
				}
			}
		} `graphql:"createRepository(input: $input)"`
	}
	visibility := githubv4.RepositoryVisibilityPublic
	if private {
		visibility = githubv4.RepositoryVisibilityPrivate
	}
	input := githubv4.CreateRepositoryInput{
		Name:           githubv4.String(repo),
		Visibility:     visibility,
		OwnerID:        githubv4.NewID(ownerDetail.GetNodeID()),
		Description:    githubv4.NewString(githubv4.String(description)),
		HasWikiEnabled: githubv4.NewBoolean(false),
	}
	err = RetryableOperation(ctx, func() error {
		return client.GetV4().Mutate(ctx, &mutation, input, nil)
	})
	if err != nil {
		logger.Error("Failed to create GitHub repository", "owner", owner, "repo", repo, "error", err)
		return fmt.Errorf("failed to create GitHub repository: %w", err)
	}

	logger.Debug("Successfully created GitHub repository", "owner", owner, "repo", repo)
	return nil
}

// ListBranches lists the repository's current branch names.
func (client *Client) ListBranches(ctx context.Context, owner, repo string) ([]string, error) {
	var branches []string
	var page = 1
	for {
		opts := &githublib.BranchListOptions{
			ListOptions: githublib.ListOptions{
				PerPage: 100,
				Page:    page,
			},
		}
		list, _, err := client.GetInner().Repositories.ListBranches(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list GitHub branches: %w", err)
		}
		for _, branch := range list {
			branches = append(branches, branch.GetName())
		}
		if len(list) < 100 {
			break
		}
		page += 1
	}
	return branches, nil
}
