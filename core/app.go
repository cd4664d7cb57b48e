package core

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lsst-sqre/rsp-jupyter-extensions/api"
	"github.com/lsst-sqre/rsp-jupyter-extensions/config"
	"github.com/lsst-sqre/rsp-jupyter-extensions/logger"
	"github.com/lsst-sqre/rsp-jupyter-extensions/monitoring"
	"github.com/rs/zerolog/log"
)

type App struct {
	api     *api.API
	monitor *monitoring.Monitor
	pprof   *monitoring.PProf
	logFile io.Closer
	home    string
	cfg     *config.Config
}

// NewApp loads the configuration under home, creating it with defaults the
// first time, and wires the services.
func NewApp(home string) (*App, error) {
	cfg, err := config.Init(home)
	if err != nil {
		return nil, err
	}

	logFile, err := logger.Tee(cfg.LogFile)
	if err != nil {
		return nil, err
	}

	// fail early on a broken environment, requests would fail anyway
	env, err := cfg.Environment()
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}
	log.Info().
		Str("home", env.Home).
		Str("cache", env.CacheDir).
		Str("tutorials", env.TutorialsDir).
		Str("repo_specs", env.RepoSpecs).
		Msg("rsp tutorials environment")

	app := &App{
		api:     api.NewAPI(*cfg),
		monitor: monitoring.NewMonitor(*cfg, monitoring.DefaultInterval),
		logFile: logFile,
		home:    home,
		cfg:     cfg,
	}
	if cfg.PProfAddress != "" {
		app.pprof = monitoring.NewPProf(cfg.PProfAddress)
	}
	return app, nil
}

// Start runs the services until SIGINT or SIGTERM.
func (a *App) Start() error {
	defer a.logFile.Close()

	if a.pprof != nil {
		a.pprof.Start()
	}
	go a.api.Serve()
	go a.monitor.Start()

	done := make(chan os.Signal, 1)
	defer signal.Stop(done)

	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	<-done

	fmt.Println("Shutting RSP tutorials down...")

	_ = a.api.Close()
	a.monitor.Stop()
	if a.pprof != nil {
		_ = a.pprof.Stop()
	}
	return nil
}
