// Package metrics optionally records each tick's GPU samples into a local
// sqlite database for later inspection.
package metrics

import (
	"context"

	"codeberg.org/mutker/nvstat/internal/errors"
	"codeberg.org/mutker/nvstat/internal/logger"
)

type service struct {
	repo Repository
}

type noopCollector struct{}

// NewService returns a Collector for the given configuration. With recording
// disabled it is a no-op, so the driver can call Record unconditionally.
func NewService(cfg Config) (Collector, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		logger.Debug().Msg("Metrics recording disabled, using no-op collector")
		return noopCollector{}, nil
	}

	repo, err := NewRepository(cfg)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("db_path", cfg.DBPath).
		Msg("Metrics service initialized")

	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, snapshot *Snapshot) error {
	errFactory := errors.New()

	if snapshot == nil {
		return errFactory.New(ErrInvalidSnapshot)
	}

	select {
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	default:
		if err := s.repo.Record(snapshot); err != nil {
			return errFactory.Wrap(ErrRecordFailed, err)
		}
	}

	return nil
}

func (s *service) Close() error {
	if err := s.repo.Close(); err != nil {
		return errors.New().Wrap(ErrServiceShutdown, err)
	}

	return nil
}

func (noopCollector) Record(_ context.Context, _ *Snapshot) error {
	return nil
}

func (noopCollector) Close() error {
	return nil
}
