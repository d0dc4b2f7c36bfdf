package service

import (
	"context"
	"log/slog"

	"github.com/mehdios/senteur/internal/storage"
)

// HealthService reports liveness and readiness of the service.
type HealthService interface {
	Liveness(ctx context.Context) error
	Readiness(ctx context.Context) error
}

type healthService struct {
	store  storage.OrderStorage
	logger *slog.Logger
}

func NewHealthService(store storage.OrderStorage, logger *slog.Logger) HealthService {
	return &healthService{store: store, logger: logger}
}

func (s *healthService) Liveness(_ context.Context) error {
	return nil
}

func (s *healthService) Readiness(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("readiness check failed", slog.Any("error", err))
		return err
	}
	return nil
}
