package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitport/gitport/pkg/logger"
	"github.com/gitport/gitport/pkg/migration"
	githublib "github.com/google/go-github/v70/github"
)

// ListLabelNames lists the names of all labels on the repository.
func (client *Client) ListLabelNames(ctx context.Context, owner, repo string) ([]string, error) {
	var names []string
	var page = 1
	for {
		opts := &githublib.ListOptions{
			PerPage: 100,
			Page:    page,
		}
		labels, _, err := client.GetInner().Issues.ListLabels(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list GitHub labels: %w", err)
		}
		for _, label := range labels {
			names = append(names, label.GetName())
		}
		if len(labels) < 100 {
			break
		}
		page += 1
	}
	return names, nil
}

// CreateLabel creates a label on the repository. GitLab colors carry a leading
// '#'; GitHub expects bare hex.
func (client *Client) CreateLabel(ctx context.Context, owner, repo string, label migration.Label) error {
	logger.Debug("Creating GitHub label", "owner", owner, "repo", repo, "label", label.Name)

	color := strings.TrimPrefix(label.Color, "#")
	err := RetryableOperation(ctx, func() error {
		_, _, err := client.GetInner().Issues.CreateLabel(ctx, owner, repo, &githublib.Label{
			Name:        githublib.String(label.Name),
			Color:       githublib.String(color),
			Description: githublib.String(label.Description),
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create GitHub label %s: %w", label.Name, err)
	}
	return nil
}
