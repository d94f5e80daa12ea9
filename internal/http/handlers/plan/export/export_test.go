package export

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/eventosguau/training-club/internal/http/middlewarectx"
)

// MockService реализует интерфейс export.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ExportCalendar(ctx context.Context, email string) (string, string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.String(1), args.Error(2)
}

func TestExportHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Run("успешная выгрузка файла", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ExportCalendar", mock.Anything, "client@example.com").
			Return("entrenamiento_Rex.ics", "BEGIN:VCALENDAR\nEND:VCALENDAR", nil)

		handler := New(logger, mockService)

		req := httptest.NewRequest(http.MethodGet, "/plan/export", nil)
		ctx := context.WithValue(req.Context(), middlewarectx.User, "client@example.com")
		ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-id")
		req = req.WithContext(ctx)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="entrenamiento_Rex.ics"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "BEGIN:VCALENDAR\nEND:VCALENDAR", w.Body.String())
	})

	t.Run("отсутствует авторизация", func(t *testing.T) {
		handler := New(logger, new(MockService))

		req := httptest.NewRequest(http.MethodGet, "/plan/export", nil)
		req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"error":"unauthorized"`)
	})
}
