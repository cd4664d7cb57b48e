package monitoring

import (
	"time"

	"github.com/lsst-sqre/rsp-jupyter-extensions/tutorials"
	"github.com/rs/zerolog/log"
)

func (m *Monitor) updateStashAge(now time.Time) {
	env, err := m.cfg.Environment()
	if err != nil {
		log.Debug().Err(err).Msg("monitor cannot resolve environment")
		return
	}

	age, ok, err := tutorials.StashAge(env.CacheDir, now)
	if err != nil {
		log.Debug().Err(err).Msg("monitor cannot stat menu stash")
		return
	}
	if !ok {
		menuStashAge.Set(-1)
		menuStashFresh.Set(0)
		return
	}

	menuStashAge.Set(age.Seconds())
	if age <= env.MenuMaxAge {
		menuStashFresh.Set(1)
	} else {
		menuStashFresh.Set(0)
	}
}

// Start blocks, publishing metrics every interval until Stop is called.
func (m *Monitor) Start() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.updateStashAge(time.Now())
	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.updateStashAge(now)
		}
	}
}

func (m *Monitor) Stop() {
	m.once.Do(func() {
		close(m.stop)
	})
}
