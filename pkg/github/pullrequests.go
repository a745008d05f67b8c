package github

import (
	"context"
	"fmt"
	"time"

	"github.com/gitport/gitport/pkg/logger"
	"github.com/gitport/gitport/pkg/migration"
	"github.com/gitport/gitport/pkg/utils"
	githublib "github.com/google/go-github/v70/github"
)

// ListPullRequests lists pull requests in every state, reduced to the fields
// participating in the migration signature.
func (client *Client) ListPullRequests(ctx context.Context, owner, repo string) ([]migration.PullRequest, error) {
	var ret []migration.PullRequest
	var page = 1
	for {
		opts := &githublib.PullRequestListOptions{
			State: "all",
			ListOptions: githublib.ListOptions{
				PerPage: 100,
				Page:    page,
			},
		}
		prs, _, err := client.GetInner().PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to get GitHub PRs: %w", err)
		}
		for _, pr := range prs {
			ret = append(ret, migration.PullRequest{
				Number: pr.GetNumber(),
				Title:  pr.GetTitle(),
				Head:   pr.GetHead().GetRef(),
				Base:   pr.GetBase().GetRef(),
			})
		}
		if len(prs) < 100 {
			break
		}
		page += 1
	}
	return ret, nil
}

// CreatePullRequest creates a new pull request in GitHub
func (client *Client) CreatePullRequest(ctx context.Context, owner, repo string, opts migration.PullRequestOptions) (*migration.PullRequest, error) {
	logger.Debug("Creating GitHub pull request",
		"owner", owner,
		"repo", repo,
		"head", opts.Head,
		"base", opts.Base,
		"draft", opts.Draft)

	newPR := &githublib.NewPullRequest{
		Title:               githublib.String(utils.TruncateText(opts.Title, utils.MaxPRTitleLength)),
		Body:                githublib.String(utils.TruncateText(opts.Body, utils.MaxPRDescriptionLength)),
		Head:                githublib.String(opts.Head),
		Base:                githublib.String(opts.Base),
		MaintainerCanModify: githublib.Bool(true),
		Draft:               githublib.Bool(opts.Draft),
	}

	var pr *githublib.PullRequest
	err := RetryableOperation(ctx, func() error {
		var err error
		pr, _, err = client.GetInner().PullRequests.Create(ctx, owner, repo, newPR)
		return err
	})
	if err != nil {
		logger.Error("Failed to create GitHub PR",
			"owner", owner,
			"repo", repo,
			"head", opts.Head,
			"base", opts.Base,
			"error", err)
		return nil, fmt.Errorf("failed to create GitHub PR: %w", err)
	}

	return &migration.PullRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Head:   pr.GetHead().GetRef(),
		Base:   pr.GetBase().GetRef(),
	}, nil
}

// AddLabels adds labels to a pull request via its issue number.
func (client *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	logger.Debug("Adding labels to issue",
		"owner", owner,
		"repo", repo,
		"issueNumber", number,
		"labels", labels)

	err := RetryableOperation(ctx, func() error {
		_, _, err := client.GetInner().Issues.AddLabelsToIssue(ctx, owner, repo, number, labels)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to add labels to issue: %w", err)
	}
	return nil
}

// ClosePullRequest closes a pull request
func (client *Client) ClosePullRequest(ctx context.Context, owner, repo string, number int) error {
	logger.Debug("Closing pull request",
		"owner", owner,
		"repo", repo,
		"prNumber", number)

	err := RetryableOperation(ctx, func() error {
		state := "closed"
		closeRequest := &githublib.PullRequest{
			State: &state,
		}
		_, resp, err := client.GetInner().PullRequests.Edit(ctx, owner, repo, number, closeRequest)
		if err != nil && resp != nil {
			err = fmt.Errorf("%w, x-github-request-id: %s", err, resp.Header.Get("x-github-request-id"))
		}
		return err
	})
	if err != nil {
		logger.Error("Failed to close GitHub PR",
			"owner", owner,
			"repo", repo,
			"prNumber", number,
			"error", err)
		return fmt.Errorf("failed to close GitHub PR: %w", err)
	}
	return nil
}

// CreateComment creates a regular issue comment on a pull request
func (client *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	truncatedBody := utils.TruncateText(body, utils.MaxCommentLength)

	err := RetryableOperation(ctx, func() error {
		// https://docs.github.com/en/rest/using-the-rest-api/rate-limits-for-the-rest-api?apiVersion=2022-11-28#calculating-points-for-the-secondary-rate-limit
		time.Sleep(1 * time.Second) // In general, no more than 80 content-generating requests per minute
		_, resp, err := client.GetInner().Issues.CreateComment(ctx, owner, repo, number,
			&githublib.IssueComment{Body: &truncatedBody})
		if err != nil && resp != nil {
			err = fmt.Errorf("%w, x-github-request-id: %s", err, resp.Header.Get("x-github-request-id"))
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}
