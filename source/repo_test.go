package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRepo(t *testing.T) {
	tests := []struct {
		name   string
		specs  string
		url    string
		branch string
		none   bool
	}{
		{
			name:  "unset",
			specs: "",
			none:  true,
		},
		{
			name:   "default branch",
			specs:  "https://github.com/lsst/tutorial-notebooks",
			url:    "https://github.com/lsst/tutorial-notebooks",
			branch: "main",
		},
		{
			name:   "explicit branch among others",
			specs:  "https://github.com/lsst/other@prod, https://github.com/lsst/tutorial-notebooks@tickets/DM-1234",
			url:    "https://github.com/lsst/tutorial-notebooks",
			branch: "tickets/DM-1234",
		},
		{
			name:   "empty branch",
			specs:  "https://github.com/lsst/tutorial-notebooks@",
			url:    "https://github.com/lsst/tutorial-notebooks",
			branch: "main",
		},
		{
			name:  "no matching repo",
			specs: "https://github.com/lsst/other@prod",
			none:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := FindRepo(tt.specs, "")
			require.NoError(t, err)
			if tt.none {
				assert.Nil(t, repo)
				return
			}
			require.NotNil(t, repo)
			assert.Equal(t, tt.url, repo.URL.String())
			assert.Equal(t, tt.branch, repo.Branch)
		})
	}
}

func TestParseRepoRejects(t *testing.T) {
	_, err := ParseRepo("tutorial-notebooks")
	require.ErrorIs(t, err, ErrRepoSpec)

	_, err = ParseRepo("https://%zz/tutorial-notebooks")
	require.ErrorIs(t, err, ErrRepoSpec)
}

func TestRepoString(t *testing.T) {
	repo, err := ParseRepo("https://github.com/lsst/tutorial-notebooks@w.2025.10")
	require.NoError(t, err)
	require.Equal(t, "https://github.com/lsst/tutorial-notebooks@w.2025.10", repo.String())
}
