package gitlab

import (
	"context"
	"fmt"

	"github.com/gitport/gitport/pkg/migration"
	"github.com/xanzy/go-gitlab"
)

// Client adapts the GitLab API to the migration.Source contract.
type Client struct {
	inner *gitlab.Client
}

// NewClient creates a GitLab client against the given base URL.
func NewClient(token, baseURL string) (*Client, error) {
	inner, err := gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create GitLab client: %w", err)
	}
	return &Client{inner: inner}, nil
}

// GetInner returns the underlying GitLab client
func (client *Client) GetInner() *gitlab.Client {
	return client.inner
}

// ResolveProject resolves a project path to its numeric identity.
func (client *Client) ResolveProject(ctx context.Context, path string) (*migration.Project, error) {
	project, _, err := client.inner.Projects.GetProject(path, nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve GitLab project %s: %w", path, err)
	}
	return &migration.Project{
		ID:         project.ID,
		Path:       project.PathWithNamespace,
		Visibility: string(project.Visibility),
		WebURL:     project.WebURL,
	}, nil
}

// ListLabels lists all labels of a project.
func (client *Client) ListLabels(ctx context.Context, projectID int) ([]migration.Label, error) {
	var ret []migration.Label
	var page = 1
	for {
		opts := &gitlab.ListLabelsOptions{
			ListOptions: gitlab.ListOptions{
				PerPage: 100,
				Page:    page,
			},
		}
		labels, _, err := client.inner.Labels.ListLabels(projectID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list GitLab labels: %w", err)
		}
		for _, label := range labels {
			ret = append(ret, migration.Label{
				Name:        label.Name,
				Color:       label.Color,
				Description: label.Description,
			})
		}
		if len(labels) < 100 {
			break
		}
		page += 1
	}
	return ret, nil
}

// ListVariables lists the project's CI/CD variables with their plaintext
// values.
func (client *Client) ListVariables(ctx context.Context, projectID int) ([]migration.Variable, error) {
	var ret []migration.Variable
	var page = 1
	for {
		opts := &gitlab.ListProjectVariablesOptions{
			PerPage: 100,
			Page:    page,
		}
		variables, _, err := client.inner.ProjectVariables.ListVariables(projectID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list GitLab variables: %w", err)
		}
		for _, variable := range variables {
			ret = append(ret, migration.Variable{
				Key:   variable.Key,
				Value: variable.Value,
			})
		}
		if len(variables) < 100 {
			break
		}
		page += 1
	}
	return ret, nil
}

// ListMergeRequests lists all merge requests of a project in creation order.
func (client *Client) ListMergeRequests(ctx context.Context, projectID int) ([]migration.MergeRequest, error) {
	var ret []migration.MergeRequest
	var page = 1
	for {
		opts := &gitlab.ListProjectMergeRequestsOptions{
			OrderBy: gitlab.String("created_at"),
			Sort:    gitlab.String("asc"),
			ListOptions: gitlab.ListOptions{
				PerPage: 100,
				Page:    page,
			},
		}
		mrs, _, err := client.inner.MergeRequests.ListProjectMergeRequests(projectID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list GitLab merge requests: %w", err)
		}
		for _, mr := range mrs {
			ret = append(ret, convertMergeRequest(mr))
		}
		if len(mrs) < 100 {
			break
		}
		page += 1
	}
	return ret, nil
}

// ListNotes lists the discussion notes of a merge request, system notes
// included; filtering them out is the caller's concern.
func (client *Client) ListNotes(ctx context.Context, projectID, mrIID int) ([]migration.Note, error) {
	var ret []migration.Note
	var page = 1
	for {
		opts := &gitlab.ListMergeRequestNotesOptions{
			OrderBy: gitlab.String("created_at"),
			Sort:    gitlab.String("asc"),
			ListOptions: gitlab.ListOptions{
				PerPage: 100,
				Page:    page,
			},
		}
		notes, _, err := client.inner.Notes.ListMergeRequestNotes(projectID, mrIID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list GitLab notes: %w", err)
		}
		for _, note := range notes {
			converted := migration.Note{
				Body:   note.Body,
				System: note.System,
				Author: note.Author.Username,
			}
			if note.CreatedAt != nil {
				converted.CreatedAt = *note.CreatedAt
			}
			ret = append(ret, converted)
		}
		if len(notes) < 100 {
			break
		}
		page += 1
	}
	return ret, nil
}

func convertMergeRequest(mr *gitlab.MergeRequest) migration.MergeRequest {
	converted := migration.MergeRequest{
		IID:          mr.IID,
		Title:        mr.Title,
		Description:  mr.Description,
		SourceBranch: mr.SourceBranch,
		TargetBranch: mr.TargetBranch,
		State:        mr.State,
		Labels:       []string(mr.Labels),
		Draft:        mr.WorkInProgress,
		WebURL:       mr.WebURL,
	}
	if mr.Author != nil {
		converted.Author = mr.Author.Username
	}
	if mr.CreatedAt != nil {
		converted.CreatedAt = *mr.CreatedAt
	}
	return converted
}
