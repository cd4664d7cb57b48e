package config

// Config is the service configuration. String values may reference
// environment variables ($HOME, $JUPYTER_IMAGE_SPEC, ...); they are expanded
// for every request by Environment.
type Config struct {
	HomeDirectory      string        `yaml:"home_directory" mapstructure:"home_directory"`
	CacheDirectory     string        `yaml:"cache_directory" mapstructure:"cache_directory"`
	TutorialsDirectory string        `yaml:"tutorials_directory" mapstructure:"tutorials_directory"`
	ImageSpec          string        `yaml:"image_spec" mapstructure:"image_spec"`
	RepoSpecs          string        `yaml:"repo_specs" mapstructure:"repo_specs"`
	RepoMarker         string        `yaml:"repo_marker" mapstructure:"repo_marker"`
	NotebookSuffix     string        `yaml:"notebook_suffix" mapstructure:"notebook_suffix"`
	StashCfg           StashConfig   `yaml:"stash_config" mapstructure:"stash_config"`
	LandingCfg         LandingConfig `yaml:"landing_config" mapstructure:"landing_config"`
	NetworkCfg         NetworkConfig `yaml:"network_config" mapstructure:"network_config"`
	APICfg             APIConfig     `yaml:"api_config" mapstructure:"api_config"`
	PProfAddress       string        `yaml:"pprof_address" mapstructure:"pprof_address"`
	LogFile            string        `yaml:"log_file" mapstructure:"log_file"`
}

// StashConfig holds freshness windows in seconds.
type StashConfig struct {
	MenuMaxAge    int64 `yaml:"menu_max_age" mapstructure:"menu_max_age"`
	LandingMaxAge int64 `yaml:"landing_max_age" mapstructure:"landing_max_age"`
}

type LandingConfig struct {
	SourceDirectory string   `yaml:"source_directory" mapstructure:"source_directory"`
	Files           []string `yaml:"files" mapstructure:"files"`
}

// NetworkConfig holds timeouts in seconds.
type NetworkConfig struct {
	CloneTimeout int64 `yaml:"clone_timeout" mapstructure:"clone_timeout"`
	FetchTimeout int64 `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`
}

type APIConfig struct {
	// ListenAddress is the interface to bind, loopback unless changed.
	ListenAddress string `yaml:"listen_address" mapstructure:"listen_address"`
	Port          int64  `yaml:"port" mapstructure:"port"`
	PathPrefix    string `yaml:"path_prefix" mapstructure:"path_prefix"`
	// AllowedOrigins may make cross-origin requests. Empty allows none.
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

const (
	// DefaultTutorialsDirectory is where the image build leaves the
	// tutorial notebooks.
	DefaultTutorialsDirectory = "/opt/lsst/software/notebooks-at-build-time/tutorial-notebooks"
	// DefaultLandingSourceDirectory holds the landing page files.
	DefaultLandingSourceDirectory = "/rubin/cst_repos/tutorial-notebooks-data/data"
)

func DefaultConfig() *Config {
	return &Config{
		HomeDirectory:      "$HOME",
		CacheDirectory:     ".cache",
		TutorialsDirectory: "",
		ImageSpec:          "$JUPYTER_IMAGE_SPEC",
		RepoSpecs:          "$AUTO_REPO_SPECS",
		RepoMarker:         "tutorial-notebooks",
		NotebookSuffix:     ".ipynb",
		StashCfg: StashConfig{
			MenuMaxAge:    8 * 60 * 60,
			LandingMaxAge: 60 * 60,
		},
		LandingCfg: LandingConfig{
			SourceDirectory: "",
			Files:           []string{"landing_page.md", "logo_for_header.png"},
		},
		NetworkCfg: NetworkConfig{
			CloneTimeout: 30,
			FetchTimeout: 30,
		},
		APICfg: APIConfig{
			ListenAddress:  "127.0.0.1",
			Port:           8888,
			PathPrefix:     "/rubin",
			AllowedOrigins: []string{},
		},
		PProfAddress: "",
		LogFile:      "",
	}
}
