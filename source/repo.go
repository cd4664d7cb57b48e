package source

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultMarker picks the tutorials repository out of AUTO_REPO_SPECS.
	DefaultMarker = "tutorial-notebooks"
	DefaultBranch = "main"
)

var ErrRepoSpec = errors.New("invalid repository spec")

// Repo is a remote git repository and the branch to follow.
type Repo struct {
	URL    *url.URL
	Branch string
}

func (r Repo) String() string {
	return r.URL.String() + "@" + r.Branch
}

// ParseRepo parses "<url>[@<branch>]". The branch defaults to main.
func ParseRepo(spec string) (*Repo, error) {
	spec = strings.TrimSpace(spec)
	raw, branch := spec, DefaultBranch
	if i := strings.LastIndex(spec, "@"); i >= 0 {
		raw, branch = spec[:i], spec[i+1:]
	}
	if branch == "" {
		branch = DefaultBranch
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Join(ErrRepoSpec, err)
	}
	if u.Scheme == "" || (u.Host == "" && u.Scheme != "file") {
		return nil, fmt.Errorf("%w: %q is not a repository URL", ErrRepoSpec, raw)
	}
	return &Repo{URL: u, Branch: branch}, nil
}

// FindRepo picks the spec containing marker from a comma separated list of
// repository specs. No specs, or no matching spec, means there is no remote
// content: the result is nil without an error.
func FindRepo(specs string, marker string) (*Repo, error) {
	if marker == "" {
		marker = DefaultMarker
	}
	for _, spec := range strings.Split(specs, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" || !strings.Contains(spec, marker) {
			continue
		}
		return ParseRepo(spec)
	}
	return nil, nil
}
