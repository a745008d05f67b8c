package github

import (
	"context"
	"fmt"

	"github.com/gitport/gitport/pkg/logger"
	"github.com/gitport/gitport/pkg/migration"
	githublib "github.com/google/go-github/v70/github"
)

// ListSecretNames lists the names of the repository's Actions secrets. Values
// are never returned by the API.
func (client *Client) ListSecretNames(ctx context.Context, owner, repo string) ([]string, error) {
	var names []string
	var page = 1
	for {
		opts := &githublib.ListOptions{
			PerPage: 100,
			Page:    page,
		}
		secrets, _, err := client.GetInner().Actions.ListRepoSecrets(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list GitHub secrets: %w", err)
		}
		for _, secret := range secrets.Secrets {
			names = append(names, secret.Name)
		}
		if len(secrets.Secrets) < 100 {
			break
		}
		page += 1
	}
	return names, nil
}

// GetPublicKey fetches the repository's current secret-encryption public key.
// Keys are repository-scoped and may rotate, so this is fetched fresh per
// repository.
func (client *Client) GetPublicKey(ctx context.Context, owner, repo string) (*migration.PublicKey, error) {
	var key *githublib.PublicKey
	err := RetryableOperation(ctx, func() error {
		var err error
		key, _, err = client.GetInner().Actions.GetRepoPublicKey(ctx, owner, repo)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get GitHub public key: %w", err)
	}
	return &migration.PublicKey{
		KeyID: key.GetKeyID(),
		Key:   key.GetKey(),
	}, nil
}

// PutSecret uploads an already-encrypted secret under the key it was sealed
// with.
func (client *Client) PutSecret(ctx context.Context, owner, repo, name, keyID, encryptedValue string) error {
	logger.Debug("Uploading GitHub secret", "owner", owner, "repo", repo, "name", name)

	err := RetryableOperation(ctx, func() error {
		_, err := client.GetInner().Actions.CreateOrUpdateRepoSecret(ctx, owner, repo, &githublib.EncryptedSecret{
			Name:           name,
			KeyID:          keyID,
			EncryptedValue: encryptedValue,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to upload GitHub secret %s: %w", name, err)
	}
	return nil
}
