package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepositoryList(t *testing.T) {
	input := `
# production repositories
https://gitlab.example.com/team/api.git

https://gitlab.example.com/team/worker.git
  # trailing comment line
https://gitlab.example.com/infra/deploy
`
	repos, err := ParseRepositoryList(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://gitlab.example.com/team/api.git",
		"https://gitlab.example.com/team/worker.git",
		"https://gitlab.example.com/infra/deploy",
	}, repos)
}

func TestParseRepositoryListEmpty(t *testing.T) {
	repos, err := ParseRepositoryList(strings.NewReader("\n# nothing here\n"))
	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestParseNameOverrides(t *testing.T) {
	input := "https://gitlab.example.com/team/api.git,api-server\n" +
		"https://gitlab.example.com/team/worker.git, background-worker\n"
	overrides, err := ParseNameOverrides(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"https://gitlab.example.com/team/api.git":    "api-server",
		"https://gitlab.example.com/team/worker.git": "background-worker",
	}, overrides)
}

func TestParseNameOverridesRejectsBadRow(t *testing.T) {
	input := "https://gitlab.example.com/team/api.git,api-server,extra\n"
	_, err := ParseNameOverrides(strings.NewReader(input))
	assert.Error(t, err)
}

func TestReadNameOverridesEmptyPath(t *testing.T) {
	overrides, err := ReadNameOverrides("")
	require.NoError(t, err)
	assert.Empty(t, overrides)
}
