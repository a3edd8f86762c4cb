package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heshan2021/ai-pms-saas-backend/controllers"
	"github.com/heshan2021/ai-pms-saas-backend/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	rc := controllers.NewRoomController(services.NewRoomService(db))
	bc := controllers.NewBookingController(services.NewBookingService(db))
	return SetupRouter(rc, bc), mock
}

func TestHealthAndStatusEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Server is running")
}

func TestCreateBookingRejectsBadRequests(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		wantCode int
		wantIn   string
	}{
		{
			"missing guest name",
			`{"check_in_date":"2024-06-01","check_out_date":"2024-06-05","room_id":1}`,
			http.StatusBadRequest,
			"guest_name",
		},
		{
			"bad date format",
			`{"guest_name":"Alice","check_in_date":"June 1st","check_out_date":"2024-06-05","room_id":1}`,
			http.StatusBadRequest,
			"invalid date format",
		},
		{
			"reversed range",
			`{"guest_name":"Alice","check_in_date":"2024-06-05","check_out_date":"2024-06-01","room_id":1}`,
			http.StatusBadRequest,
			"check-out date must be after check-in date",
		},
		{
			"not json",
			`not json at all`,
			http.StatusBadRequest,
			"Invalid request payload",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := newTestRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantIn)
		})
	}
}

func TestCreateBookingUnknownRoomIs404(t *testing.T) {
	router, mock := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `rooms`(.+)FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "status"}))
	mock.ExpectRollback()

	body := `{"guest_name":"Alice","check_in_date":"2024-06-01","check_out_date":"2024-06-05","room_id":999}`
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRoutesRejectGarbageID(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/rooms/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
