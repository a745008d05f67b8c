package migration

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/gitport/gitport/pkg/logger"
	"golang.org/x/crypto/nacl/box"
)

// SyncSecrets reconciles CI/CD variables into destination secrets. The
// destination never returns stored values, so comparison is name-only: a
// secret whose key already exists is skipped, never re-encrypted or updated.
func (e *Engine) SyncSecrets(ctx context.Context, spec *RepositorySpec) error {
	variables, err := e.Source.ListVariables(ctx, spec.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to list source variables: %w", err)
	}
	if len(variables) == 0 {
		return nil
	}

	names, err := e.Dest.ListSecretNames(ctx, e.Owner, spec.DestName)
	if err != nil {
		return fmt.Errorf("failed to list destination secrets: %w", err)
	}
	existing := make(map[string]struct{})
	for _, name := range names {
		existing[name] = struct{}{}
	}

	// Encryption keys are repository-scoped and may rotate; fetch fresh for
	// this repository rather than caching across the run.
	var key *PublicKey
	var created int
	for _, variable := range variables {
		if _, ok := existing[variable.Key]; ok {
			logger.Debug("Skipping existing secret", "repo", spec.DestName, "key", variable.Key)
			continue
		}

		if key == nil {
			key, err = e.Dest.GetPublicKey(ctx, e.Owner, spec.DestName)
			if err != nil {
				logger.Warn("Failed to fetch encryption key, skipping secret", "repo", spec.DestName, "key", variable.Key, "error", err)
				continue
			}
		}

		sealed, err := SealSecret(variable.Value, key)
		if err != nil {
			logger.Warn("Failed to encrypt secret", "repo", spec.DestName, "key", variable.Key, "error", err)
			continue
		}
		if err := e.Dest.PutSecret(ctx, e.Owner, spec.DestName, variable.Key, key.KeyID, sealed); err != nil {
			logger.Warn("Failed to upload secret", "repo", spec.DestName, "key", variable.Key, "error", err)
			continue
		}
		created++
	}
	logger.Info("Synchronized secrets", "repo", spec.DestName, "source", len(variables), "created", created)
	return nil
}

// SealSecret encrypts a plaintext value under the repository's public key
// using an anonymous sealed box and returns the base64 payload the secrets
// API expects.
func SealSecret(plaintext string, key *PublicKey) (string, error) {
	decoded, err := base64.StdEncoding.DecodeString(key.Key)
	if err != nil {
		return "", fmt.Errorf("invalid public key encoding: %w", err)
	}
	if len(decoded) != 32 {
		return "", fmt.Errorf("invalid public key length: %d", len(decoded))
	}

	var publicKey [32]byte
	copy(publicKey[:], decoded)

	sealed, err := box.SealAnonymous(nil, []byte(plaintext), &publicKey, rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to seal secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sealed), nil
}
