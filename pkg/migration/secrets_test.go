package migration

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/nacl/box"
)

func testKeyPair(t *testing.T) (*PublicKey, *[32]byte, *[32]byte) {
	t.Helper()
	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	require.NoError(t, err)
	return &PublicKey{
		KeyID: "key-1",
		Key:   base64.StdEncoding.EncodeToString(publicKey[:]),
	}, publicKey, privateKey
}

func TestSealSecretRoundTrip(t *testing.T) {
	key, publicKey, privateKey := testKeyPair(t)

	sealed, err := SealSecret("s3cret-value", key)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	opened, ok := box.OpenAnonymous(nil, raw, publicKey, privateKey)
	require.True(t, ok)
	assert.Equal(t, "s3cret-value", string(opened))
}

func TestSealSecretRejectsBadKey(t *testing.T) {
	_, err := SealSecret("value", &PublicKey{KeyID: "k", Key: "not-base64!"})
	assert.Error(t, err)

	short := base64.StdEncoding.EncodeToString([]byte("short"))
	_, err = SealSecret("value", &PublicKey{KeyID: "k", Key: short})
	assert.Error(t, err)
}

func TestSyncSecretsCreatesMissing(t *testing.T) {
	key, _, _ := testKeyPair(t)
	source := &fakeSource{
		variables: []Variable{
			{Key: "DEPLOY_TOKEN", Value: "v1"},
			{Key: "API_KEY", Value: "v2"},
		},
	}
	dest := newFakeDest()
	dest.publicKey = key
	engine, _ := testEngine(t, source, dest, newFakeGit())

	err := engine.SyncSecrets(context.Background(), testSpec())
	require.NoError(t, err)
	assert.Len(t, dest.putSecrets, 2)
	assert.Equal(t, "key-1", dest.putKeyIDs["DEPLOY_TOKEN"])
}

func TestSyncSecretsWriteOnce(t *testing.T) {
	key, _, _ := testKeyPair(t)
	source := &fakeSource{
		variables: []Variable{
			{Key: "DEPLOY_TOKEN", Value: "changed-upstream"},
			{Key: "NEW_KEY", Value: "fresh"},
		},
	}
	dest := newFakeDest()
	dest.publicKey = key
	dest.secretNames = []string{"DEPLOY_TOKEN"}
	engine, _ := testEngine(t, source, dest, newFakeGit())

	err := engine.SyncSecrets(context.Background(), testSpec())
	require.NoError(t, err)

	// The existing key is never re-encrypted or re-uploaded, even though the
	// source value changed; values cannot be diffed.
	assert.NotContains(t, dest.putSecrets, "DEPLOY_TOKEN")
	assert.Contains(t, dest.putSecrets, "NEW_KEY")
}

func TestSyncSecretsPublicKeyFailureIsNotFatal(t *testing.T) {
	source := &fakeSource{
		variables: []Variable{{Key: "DEPLOY_TOKEN", Value: "v1"}},
	}
	dest := newFakeDest()
	dest.publicKeyErr = errors.New("key endpoint unavailable")
	engine, _ := testEngine(t, source, dest, newFakeGit())

	err := engine.SyncSecrets(context.Background(), testSpec())
	require.NoError(t, err)
	assert.Empty(t, dest.putSecrets)
}
