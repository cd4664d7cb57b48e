package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrEnvironment is returned when required state of the user environment,
// like the home directory or the image tag, is missing or unparseable.
var ErrEnvironment = errors.New("user environment error")

// Environment is the configuration as seen by a single request, with every
// environment variable reference expanded.
type Environment struct {
	Home             string
	CacheDir         string
	TutorialsDir     string
	ImageSpec        string
	RepoSpecs        string
	RepoMarker       string
	Suffix           string
	MenuMaxAge       time.Duration
	LandingMaxAge    time.Duration
	LandingSourceDir string
	LandingFiles     []string
	CloneTimeout     time.Duration
	FetchTimeout     time.Duration
}

// Environment expands c against the current process environment.
func (c Config) Environment() (*Environment, error) {
	home := os.ExpandEnv(c.HomeDirectory)
	if home == "" {
		return nil, fmt.Errorf("%w: home directory is not set", ErrEnvironment)
	}
	if !filepath.IsAbs(home) {
		return nil, fmt.Errorf("%w: home directory %q is not absolute", ErrEnvironment, home)
	}

	cache := os.ExpandEnv(c.CacheDirectory)
	if !filepath.IsAbs(cache) {
		cache = filepath.Join(home, cache)
	}

	tutorials := os.ExpandEnv(c.TutorialsDirectory)
	if tutorials == "" {
		tutorials = envOr("TUTORIAL_NOTEBOOKS_DIR", DefaultTutorialsDirectory)
	}

	landing := os.ExpandEnv(c.LandingCfg.SourceDirectory)
	if landing == "" {
		landing = envOr("CST_LANDING_PAGE_SRC_DIR", DefaultLandingSourceDirectory)
	}

	return &Environment{
		Home:             home,
		CacheDir:         cache,
		TutorialsDir:     tutorials,
		ImageSpec:        os.ExpandEnv(c.ImageSpec),
		RepoSpecs:        os.ExpandEnv(c.RepoSpecs),
		RepoMarker:       c.RepoMarker,
		Suffix:           c.NotebookSuffix,
		MenuMaxAge:       time.Duration(c.StashCfg.MenuMaxAge) * time.Second,
		LandingMaxAge:    time.Duration(c.StashCfg.LandingMaxAge) * time.Second,
		LandingSourceDir: landing,
		LandingFiles:     c.LandingCfg.Files,
		CloneTimeout:     time.Duration(c.NetworkCfg.CloneTimeout) * time.Second,
		FetchTimeout:     time.Duration(c.NetworkCfg.FetchTimeout) * time.Second,
	}, nil
}

// Tag returns the tag of the running image, taken from an image spec such
// as registry.example.com:5000/sciplat-lab:w_2025_10@sha256:abcd.
func (e *Environment) Tag() (string, error) {
	return ImageTag(e.ImageSpec)
}

func ImageTag(spec string) (string, error) {
	if spec == "" {
		return "", fmt.Errorf("%w: environment variable 'JUPYTER_IMAGE_SPEC' is not set", ErrEnvironment)
	}

	ref := spec
	if i := strings.Index(ref, "@"); i >= 0 {
		ref = ref[:i]
	}
	name := ref
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	i := strings.LastIndex(name, ":")
	if i < 0 {
		return "", fmt.Errorf("%w: could not extract tag from image spec %q", ErrEnvironment, spec)
	}
	tag := name[i+1:]
	if tag == "" {
		return "", fmt.Errorf("%w: could not determine image tag from %q", ErrEnvironment, spec)
	}
	return tag, nil
}
