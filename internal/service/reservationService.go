package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	repository "github.com/ds124wfegd/seat-reservation/internal/database/postgres"
	"github.com/ds124wfegd/seat-reservation/internal/entity"
)

const (
	defaultMaxAttempts = 5
	defaultBackoffBase = 25 * time.Millisecond
	defaultBackoffMax  = 400 * time.Millisecond
	defaultMaxSeats    = 50
)

// TaskPublisher интерфейс для публикации задач в очередь
type TaskPublisher interface {
	PublishBookingCommitted(ctx context.Context, booking *entity.Booking, version int64) error
}

type reservationService struct {
	ledger      repository.LedgerRepository
	catalog     repository.EventRepository
	publisher   TaskPublisher
	maxAttempts int
	backoffBase time.Duration
	backoffMax  time.Duration
	maxSeats    int
}

// NewReservationService создает координатора бронирования. Клиент реестра
// передается явно, никакого глобального состояния процесса
func NewReservationService(
	ledger repository.LedgerRepository,
	catalog repository.EventRepository,
	publisher TaskPublisher,
	maxAttempts int,
	backoffBase, backoffMax time.Duration,
	maxSeats int,
) ReservationService {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if backoffBase <= 0 {
		backoffBase = defaultBackoffBase
	}
	if backoffMax <= 0 {
		backoffMax = defaultBackoffMax
	}
	if maxSeats <= 0 {
		maxSeats = defaultMaxSeats
	}
	return &reservationService{
		ledger:      ledger,
		catalog:     catalog,
		publisher:   publisher,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		backoffMax:  backoffMax,
		maxSeats:    maxSeats,
	}
}

// Reserve проверяет запрос и атомарно фиксирует его против оспариваемого
// состояния мест. Гонки версий обрабатываются внутри, до исчерпания
// бюджета повторов; семантический конфликт мест терминален и не повторяется
func (s *reservationService) Reserve(ctx context.Context, req *ReserveSeatsRequest) (*entity.Booking, error) {
	// Валидация без обращения к реестру
	event, err := s.catalog.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, entity.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("ошибка при чтении каталога мероприятий: %w", err)
	}

	if err := validateSeats(event, req.Seats, s.maxSeats); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if attempt > 0 {
			if err := s.waitBackoff(ctx, attempt); err != nil {
				return nil, err
			}
		}

		// Проверка конфликтов по авторитетному снимку реестра
		state, err := s.ledger.SeatState(ctx, req.EventID)
		if err != nil {
			return nil, fmt.Errorf("ошибка при чтении состояния мест: %w", err)
		}

		if conflicting := intersectSeats(req.Seats, state.SeatSet()); len(conflicting) > 0 {
			return nil, &entity.SeatConflictError{Seats: conflicting}
		}

		booking := &entity.Booking{
			ID:        uuid.NewString(),
			EventID:   req.EventID,
			UserID:    req.UserID,
			Seats:     req.Seats,
			CreatedAt: time.Now().UTC(),
		}

		// Попытка фиксации: условная запись от только что прочитанной версии
		newVersion, err := s.ledger.InsertIfVersionMatches(ctx, req.EventID, state.Version, booking)
		if err != nil {
			if errors.Is(err, entity.ErrVersionConflict) {
				// Другой писатель продвинул версию первым: перечитываем и повторяем
				logrus.WithFields(logrus.Fields{
					"event_id": req.EventID,
					"attempt":  attempt + 1,
					"version":  state.Version,
				}).Debug("Version conflict, retrying reservation")
				continue
			}
			return nil, fmt.Errorf("ошибка при фиксации бронирования: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"event_id":   booking.EventID,
			"user_id":    booking.UserID,
			"seats":      booking.Seats,
			"version":    newVersion,
		}).Info("Booking committed")

		if s.publisher != nil {
			if err := s.publisher.PublishBookingCommitted(ctx, booking, newVersion); err != nil {
				logrus.Errorf("Failed to publish booking committed task: %v", err)
			}
		}

		return booking, nil
	}

	return nil, fmt.Errorf("%w: бюджет повторов исчерпан после %d попыток", entity.ErrReservationBusy, s.maxAttempts)
}

// waitBackoff ждет рандомизированную экспоненциальную задержку либо
// прерывается дедлайном вызывающей стороны
func (s *reservationService) waitBackoff(ctx context.Context, attempt int) error {
	delay := s.backoffBase << uint(attempt-1)
	if delay > s.backoffMax {
		delay = s.backoffMax
	}
	delay += time.Duration(rand.Int63n(int64(delay)/2 + 1))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", entity.ErrReservationBusy, ctx.Err())
	case <-timer.C:
		return nil
	}
}

// validateSeats проверяет непустоту, лимит на запрос, отсутствие дубликатов
// и принадлежность меток посадочному пространству мероприятия
func validateSeats(event *entity.Event, seats []string, maxSeats int) error {
	if len(seats) == 0 {
		return fmt.Errorf("%w: список мест пуст", entity.ErrInvalidSeats)
	}
	if len(seats) > maxSeats {
		return fmt.Errorf("%w: запрошено %d мест при лимите %d", entity.ErrInvalidSeats, len(seats), maxSeats)
	}

	seen := make(map[string]struct{}, len(seats))
	for _, label := range seats {
		if _, ok := seen[label]; ok {
			return fmt.Errorf("%w: место %q указано дважды", entity.ErrInvalidSeats, label)
		}
		seen[label] = struct{}{}

		if !event.HasSeat(label) {
			return fmt.Errorf("%w: места %q нет в мероприятии %d", entity.ErrInvalidSeats, label, event.ID)
		}
	}

	return nil
}

func intersectSeats(requested []string, booked map[string]struct{}) []string {
	var conflicting []string
	for _, label := range requested {
		if _, ok := booked[label]; ok {
			conflicting = append(conflicting, label)
		}
	}
	return conflicting
}
