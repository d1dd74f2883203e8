package admin

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teesheet/internal/booking"
	"teesheet/internal/user"
)

func setupRouter(svc Service, users user.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, users)

	r := gin.New()
	r.GET("/admin/users", h.ListUsers)
	r.PATCH("/admin/users/:id/role", h.UpdateRole)
	r.PATCH("/admin/users/:id/active", h.SetActive)
	r.GET("/admin/stats", h.Stats)
	return r
}

func send(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_ListUsers(t *testing.T) {
	users := new(MockUserService)
	users.On("List", mock.Anything).Return([]user.User{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bo"}}, nil)

	w := send(setupRouter(new(MockService), users), http.MethodGet, "/admin/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Bo"`)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestHandler_UpdateRole(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		setupMock      func(*MockUserService)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "promoted",
			path: "/admin/users/2/role",
			body: `{"role":"admin"}`,
			setupMock: func(m *MockUserService) {
				m.On("UpdateRole", mock.Anything, 2, "admin").Return(&user.User{ID: 2, Role: "admin"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Role updated.",
		},
		{
			name: "unknown role",
			path: "/admin/users/2/role",
			body: `{"role":"owner"}`,
			setupMock: func(m *MockUserService) {
				m.On("UpdateRole", mock.Anything, 2, "owner").Return(nil, user.ErrInvalidRole)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid role.",
		},
		{
			name: "missing user",
			path: "/admin/users/9/role",
			body: `{"role":"user"}`,
			setupMock: func(m *MockUserService) {
				m.On("UpdateRole", mock.Anything, 9, "user").Return(nil, user.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "User not found.",
		},
		{
			name:           "no role in body",
			path:           "/admin/users/2/role",
			body:           `{}`,
			setupMock:      func(*MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid role.",
		},
		{
			name:           "bad id",
			path:           "/admin/users/x/role",
			body:           `{"role":"user"}`,
			setupMock:      func(*MockUserService) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid user ID.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserService)
			tt.setupMock(users)

			w := send(setupRouter(new(MockService), users), http.MethodPatch, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedMsg)
			users.AssertExpectations(t)
		})
	}
}

func TestHandler_SetActive(t *testing.T) {
	users := new(MockUserService)
	users.On("SetActive", mock.Anything, 3, false).Return(&user.User{ID: 3, Active: false}, nil)

	r := setupRouter(new(MockService), users)

	w := send(r, http.MethodPatch, "/admin/users/3/active", `{"active":false}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User status updated.")

	w = send(r, http.MethodPatch, "/admin/users/3/active", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	users.AssertExpectations(t)
}

func TestHandler_Stats(t *testing.T) {
	svc := new(MockService)
	svc.On("Stats", mock.Anything).Return(&Stats{
		TotalUsers: 4,
		Stats: booking.Stats{
			TotalBookings:  3,
			BookingsByDate: []booking.DateCount{{Date: "2026-05-01", Count: 3}},
		},
	}, nil).Once()
	svc.On("Stats", mock.Anything).Return(nil, errors.New("db down")).Once()

	r := setupRouter(svc, new(MockUserService))

	w := send(r, http.MethodGet, "/admin/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"totalUsers": 4,
		"totalBookings": 3,
		"pendingBookings": 0,
		"approvedBookings": 0,
		"cancelledBookings": 0,
		"bookingsByDate": [{"date": "2026-05-01", "count": 3}]
	}`, w.Body.String())

	w = send(r, http.MethodGet, "/admin/stats", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
