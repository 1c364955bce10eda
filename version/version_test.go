package version

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	vi := GetVersion()
	assert.Equal(t, version, vi.Version)
	assert.Equal(t, prerelease, vi.Prerelease)
}

func TestVersion_SemanticVersion(t *testing.T) {
	testCases := []struct {
		name string
		vi   Version
	}{
		{
			name: "Test only Version",
			vi: Version{
				Version: "0.0.0",
			},
		},
		{
			name: "Test Prerelease",
			vi: Version{
				Version:    "0.0.0",
				Prerelease: "test",
			},
		},
		{
			name: "Test Metadata",
			vi: Version{
				Version:  "0.0.0",
				Metadata: "buildinfo",
			},
		},
		{
			name: "Test All",
			vi: Version{
				Version:    "0.0.0",
				Prerelease: "test",
				Metadata:   "buildinfo",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sv := tc.vi.SemanticVersion()
			assert.Contains(t, sv, tc.vi.Version)
			if tc.vi.Prerelease != "" {
				assert.Contains(t, sv, fmt.Sprintf("-%s", tc.vi.Prerelease))
			}
			if tc.vi.Metadata != "" {
				assert.Contains(t, sv, fmt.Sprintf("+%s", tc.vi.Metadata))
			}
		})
	}
}

func TestVersion_FullVersionNumber(t *testing.T) {
	testCases := []struct {
		name   string
		vi     Version
		rev    bool
		expect string
	}{
		{
			name:   "Test without revision",
			vi:     Version{Version: "0.0.0"},
			rev:    false,
			expect: "linescrub v0.0.0",
		},
		{
			name:   "Test revision requested but unset",
			vi:     Version{Version: "0.0.0"},
			rev:    true,
			expect: "linescrub v0.0.0",
		},
		{
			name:   "Test with revision",
			vi:     Version{Version: "0.0.0", Revision: "abc123"},
			rev:    true,
			expect: "linescrub v0.0.0 (abc123)",
		},
		{
			name:   "Test with build date",
			vi:     Version{Version: "0.0.0", BuildDate: "2024-01-01T00:00:00Z"},
			rev:    false,
			expect: "linescrub v0.0.0, built 2024-01-01T00:00:00Z",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.vi.FullVersionNumber(tc.rev))
		})
	}
}
