package service

import (
	"github.com/jsmcel/androidfutbol5-sub000/internal/adapters/repository"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/development"
	"github.com/jsmcel/androidfutbol5-sub000/internal/domain/matchsim"
	"github.com/jsmcel/androidfutbol5-sub000/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of simulation workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the fixture queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the played-fixture set; 0 means unbounded.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.dedupeSize = size
		}
	}
}

// WithSeason sets the season start year and the seed fixtures fall back to
// when they carry none.
func WithSeason(year int, seed int64) Option {
	return func(s *Service) {
		s.season = year
		s.seed = seed
	}
}

// WithSimulator replaces the default match simulator.
func WithSimulator(sim *matchsim.Simulator) Option {
	return func(s *Service) {
		if sim != nil {
			s.simulator = sim
		}
	}
}

// WithDevelopmentEngine replaces the default development engine.
func WithDevelopmentEngine(e *development.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithStore replaces the in-memory league store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
