package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ds124wfegd/seat-reservation/internal/entity"
	"github.com/ds124wfegd/seat-reservation/internal/service"
	"github.com/ds124wfegd/seat-reservation/pkg/auth"
)

const testJWTSecret = "test-secret"

type stubReservationService struct {
	booking *entity.Booking
	err     error
	gotReq  *service.ReserveSeatsRequest
}

func (s *stubReservationService) Reserve(_ context.Context, req *service.ReserveSeatsRequest) (*entity.Booking, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

type stubHistoryService struct {
	items     []*entity.BookingHistoryItem
	gotFilter *entity.HistoryFilter
}

func (s *stubHistoryService) History(_ context.Context, filter *entity.HistoryFilter) ([]*entity.BookingHistoryItem, error) {
	s.gotFilter = filter
	return s.items, nil
}

type stubEventService struct{}

func (s *stubEventService) GetEvent(_ context.Context, _ int64) (*entity.EventWithAvailability, error) {
	return nil, entity.ErrEventNotFound
}

func (s *stubEventService) GetAllEvents(_ context.Context) ([]*entity.EventWithAvailability, error) {
	return nil, nil
}

type stubAvailabilityService struct{}

func (s *stubAvailabilityService) CurrentState(_ context.Context, _ int64) (*entity.SeatAvailability, error) {
	return nil, entity.ErrEventNotFound
}

func (s *stubAvailabilityService) RefreshCache(_ context.Context, _ int64) error { return nil }

type stubUserService struct{}

func (s *stubUserService) Register(_ context.Context, _ *service.RegisterUserRequest) (*entity.User, error) {
	return nil, entity.ErrEmailTaken
}

func (s *stubUserService) Login(_ context.Context, _ *service.LoginRequest) (string, *entity.User, error) {
	return "", nil, entity.ErrUnauthorized
}

func (s *stubUserService) GetUserByID(_ context.Context, _ int64) (*entity.User, error) {
	return nil, entity.ErrUserNotFound
}

func newTestRouter(reservation service.ReservationService, history service.HistoryService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	eventHandler := NewEventHandler(&stubEventService{}, &stubAvailabilityService{})
	bookingHandler := NewBookingHandler(reservation, history)
	userHandler := NewUserHandler(&stubUserService{})

	return InitRoutes(testJWTSecret, eventHandler, bookingHandler, userHandler)
}

func bearerToken(t *testing.T, userID int64, isAdmin bool) string {
	t.Helper()
	token, err := auth.NewToken(testJWTSecret, auth.Identity{UserID: userID, IsAdmin: isAdmin}, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func doReserve(router *gin.Engine, body string, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestReserveStatusMapping проверяет отображение исходов координатора
// в HTTP-коды
func TestReserveStatusMapping(t *testing.T) {
	validBody := `{"event_id": 1, "seats": ["A1"]}`

	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "committed booking",
			body:       validBody,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed body",
			body:       `{"seats": "A1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid seats",
			body:       validBody,
			serviceErr: entity.ErrInvalidSeats,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown event",
			body:       validBody,
			serviceErr: entity.ErrEventNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "seat conflict",
			body:       validBody,
			serviceErr: &entity.SeatConflictError{Seats: []string{"A1"}},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "retry budget exhausted",
			body:       validBody,
			serviceErr: entity.ErrReservationBusy,
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reservation := &stubReservationService{
				booking: &entity.Booking{
					ID:      "b-1",
					EventID: 1,
					UserID:  7,
					Seats:   []string{"A1"},
				},
				err: tt.serviceErr,
			}
			router := newTestRouter(reservation, &stubHistoryService{})

			w := doReserve(router, tt.body, bearerToken(t, 7, false))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// TestReserveConflictBody: ответ 409 перечисляет именно конфликтующие места
func TestReserveConflictBody(t *testing.T) {
	reservation := &stubReservationService{
		err: &entity.SeatConflictError{Seats: []string{"A1", "B2"}},
	}
	router := newTestRouter(reservation, &stubHistoryService{})

	w := doReserve(router, `{"event_id": 1, "seats": ["A1", "B2", "C3"]}`, bearerToken(t, 7, false))
	require.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, []string{"A1", "B2"}, resp.Conflicting)
}

// TestReserveIdentity: владелец берется из токена, не из тела запроса
func TestReserveIdentity(t *testing.T) {
	reservation := &stubReservationService{
		booking: &entity.Booking{ID: "b-1", EventID: 1, UserID: 42, Seats: []string{"A1"}},
	}
	router := newTestRouter(reservation, &stubHistoryService{})

	w := doReserve(router, `{"event_id": 1, "seats": ["A1"]}`, bearerToken(t, 42, false))
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, reservation.gotReq)
	assert.Equal(t, int64(42), reservation.gotReq.UserID)
}

// TestReserveUnauthorized: без валидного токена запись недоступна
func TestReserveUnauthorized(t *testing.T) {
	router := newTestRouter(&stubReservationService{}, &stubHistoryService{})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "malformed header", header: "Token abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doReserve(router, `{"event_id": 1, "seats": ["A1"]}`, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

// TestHistoryScoping: не-администратор видит только свои бронирования,
// администратор — произвольного пользователя
func TestHistoryScoping(t *testing.T) {
	tests := []struct {
		name       string
		isAdmin    bool
		query      string
		wantUserID *int64
	}{
		{
			name:       "regular user is forced to own scope",
			isAdmin:    false,
			query:      "?user_id=99",
			wantUserID: ptr(int64(7)),
		},
		{
			name:       "admin may query another user",
			isAdmin:    true,
			query:      "?user_id=99",
			wantUserID: ptr(int64(99)),
		},
		{
			name:       "admin without filter sees everything",
			isAdmin:    true,
			query:      "",
			wantUserID: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := &stubHistoryService{}
			router := newTestRouter(&stubReservationService{}, history)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/history"+tt.query, nil)
			req.Header.Set("Authorization", bearerToken(t, 7, tt.isAdmin))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			require.NotNil(t, history.gotFilter)
			if tt.wantUserID == nil {
				assert.Nil(t, history.gotFilter.UserID)
			} else {
				require.NotNil(t, history.gotFilter.UserID)
				assert.Equal(t, *tt.wantUserID, *history.gotFilter.UserID)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
