package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingTags(t *testing.T) {
	testCases := []struct {
		name     string
		source   []string
		dest     []string
		expected []string
	}{
		{
			name:     "all present",
			source:   []string{"v1.0.0", "v1.1.0"},
			dest:     []string{"v1.0.0", "v1.1.0"},
			expected: nil,
		},
		{
			name:     "some missing",
			source:   []string{"v1.0.0", "v1.1.0", "v2.0.0"},
			dest:     []string{"v1.0.0"},
			expected: []string{"v1.1.0", "v2.0.0"},
		},
		{
			name:     "destination-only tags ignored",
			source:   []string{"v1.0.0"},
			dest:     []string{"v1.0.0", "hotfix-tag"},
			expected: nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, MissingTags(testCase.source, testCase.dest))
		})
	}
}

func TestReconcileTagsRepairsMissing(t *testing.T) {
	g := newFakeGit()
	g.remoteTags["origin"] = []string{"v1.0.0", "v1.1.0"}
	g.remoteTags["dest"] = []string{"v1.0.0"}
	engine, ws := testEngine(t, &fakeSource{}, newFakeDest(), g)

	err := engine.ReconcileTags(testSpec(), ws)
	require.NoError(t, err)
	assert.Contains(t, g.calls, "fetch-tag origin v1.1.0")
	assert.Contains(t, g.calls, "push-tag dest v1.1.0")
}

func TestReconcileTagsSkipsFailingTag(t *testing.T) {
	g := newFakeGit()
	g.remoteTags["origin"] = []string{"v1.0.0", "v2.0.0"}
	g.remoteTags["dest"] = nil
	g.failFetchTag["v1.0.0"] = true
	engine, ws := testEngine(t, &fakeSource{}, newFakeDest(), g)

	err := engine.ReconcileTags(testSpec(), ws)
	require.NoError(t, err)
	// One bad tag does not block the rest.
	assert.NotContains(t, g.calls, "push-tag dest v1.0.0")
	assert.Contains(t, g.calls, "push-tag dest v2.0.0")
}
