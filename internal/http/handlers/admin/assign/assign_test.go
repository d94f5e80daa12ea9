package assign

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eventosguau/training-club/internal/services/plan"
	"github.com/eventosguau/training-club/internal/storage/repository"
)

// MockService реализует интерфейс assign.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) AssignTemplate(ctx context.Context, email string, weekOffset, day int, templateID string) error {
	args := m.Called(ctx, email, weekOffset, day, templateID)
	return args.Error(0)
}

func TestAssignHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное назначение",
			requestBody: Request{
				Email:      "client@example.com",
				WeekOffset: 1,
				Day:        2,
				TemplateID: "tpl1",
			},
			setupMock: func(m *MockService) {
				m.On("AssignTemplate", mock.Anything, "client@example.com", 1, 2, "tpl1").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name: "ошибка валидации — день вне диапазона",
			requestBody: Request{
				Email:      "client@example.com",
				Day:        9,
				TemplateID: "tpl1",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"status":"Error"`,
		},
		{
			name: "клиент не найден",
			requestBody: Request{
				Email:      "nobody@example.com",
				Day:        0,
				TemplateID: "tpl1",
			},
			setupMock: func(m *MockService) {
				m.On("AssignTemplate", mock.Anything, "nobody@example.com", 0, 0, "tpl1").
					Return(repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"client or template not found"}`,
		},
		{
			name: "день вне диапазона на уровне сервиса",
			requestBody: Request{
				Email:      "client@example.com",
				Day:        6,
				TemplateID: "tpl1",
			},
			setupMock: func(m *MockService) {
				m.On("AssignTemplate", mock.Anything, "client@example.com", 0, 6, "tpl1").
					Return(plan.ErrOutOfRange)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"day out of range"}`,
		},
		{
			name: "ошибка сервиса",
			requestBody: Request{
				Email:      "client@example.com",
				Day:        0,
				TemplateID: "tpl1",
			},
			setupMock: func(m *MockService) {
				m.On("AssignTemplate", mock.Anything, "client@example.com", 0, 0, "tpl1").
					Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not assign exercise"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/admin/assign", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
