package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	repository "github.com/ds124wfegd/seat-reservation/internal/database/postgres"
	"github.com/ds124wfegd/seat-reservation/internal/service"
)

// AvailabilityWorker периодически прогревает кэш доступности: считает
// свежие снимки для всех мероприятий каталога. Пропуск цикла безвреден,
// авторитетным источником остается реестр
type AvailabilityWorker struct {
	catalog      repository.EventRepository
	availability service.AvailabilityService
	interval     time.Duration
}

func NewAvailabilityWorker(catalog repository.EventRepository, availability service.AvailabilityService, interval time.Duration) *AvailabilityWorker {
	return &AvailabilityWorker{
		catalog:      catalog,
		availability: availability,
		interval:     interval,
	}
}

func (w *AvailabilityWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Availability warm worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Availability warm worker stopped")
			return
		case <-ticker.C:
			w.warmCache(ctx)
		}
	}
}

// warmCache обновляет снимки всех мероприятий каталога
func (w *AvailabilityWorker) warmCache(ctx context.Context) {
	events, err := w.catalog.GetAll(ctx)
	if err != nil {
		logrus.Errorf("Failed to list events for cache warm: %v", err)
		return
	}

	refreshed := 0
	for _, event := range events {
		select {
		case <-ctx.Done():
			logrus.Info("Cache warm interrupted by context cancellation")
			return
		default:
		}

		if err := w.availability.RefreshCache(ctx, event.ID); err != nil {
			logrus.Errorf("Failed to refresh availability for event %d: %v", event.ID, err)
			continue
		}
		refreshed++
	}

	logrus.Debugf("Availability cache warm completed: %d events refreshed", refreshed)
}
