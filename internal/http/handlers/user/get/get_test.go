package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eventosguau/training-club/internal/models"
	"github.com/eventosguau/training-club/internal/storage/repository"
)

// MockService реализует интерфейс get.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) GetUser(ctx context.Context, id int64) (*models.UserSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSummary), args.Error(1)
}

func TestGetHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение",
			url:  "/users?id=7",
			setupMock: func(m *MockService) {
				m.On("GetUser", mock.Anything, int64(7)).Return(&models.UserSummary{
					ID:       7,
					Email:    "client@example.com",
					Username: "ana",
					DogName:  "Rex",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email":"client@example.com"`,
		},
		{
			name:           "отсутствует id",
			url:            "/users",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid or missing id"}`,
		},
		{
			name:           "некорректный id",
			url:            "/users?id=abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid or missing id"}`,
		},
		{
			name: "пользователь не найден",
			url:  "/users?id=404",
			setupMock: func(m *MockService) {
				m.On("GetUser", mock.Anything, int64(404)).Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
		{
			name: "ошибка сервиса",
			url:  "/users?id=7",
			setupMock: func(m *MockService) {
				m.On("GetUser", mock.Anything, int64(7)).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not read user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
