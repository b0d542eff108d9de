package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/pointsdesk/pointsdesk/internal/domain"
	"github.com/pointsdesk/pointsdesk/internal/dto"
	"github.com/pointsdesk/pointsdesk/internal/service/authservice"
	"github.com/pointsdesk/pointsdesk/pkg/utils"
)

func NewMock(t *testing.T) (*UsersHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestListHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedUsers int
	}{
		{
			name: "Successful listing",
			prepareMock: func() {
				service.EXPECT().ListUsers(gomock.Any()).Return([]domain.User{
					{ID: 1, Email: "admin@example.com", IsAdmin: true},
					{ID: 2, Email: "staff@example.com"},
				}, nil)
			},
			expectedCode:  http.StatusOK,
			expectedUsers: 2,
		},
		{
			name: "Service error",
			prepareMock: func() {
				service.EXPECT().ListUsers(gomock.Any()).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/users", nil)
			rr := httptest.NewRecorder()

			handler.List(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp []dto.UserResponseDTO
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Len(t, resp, tt.expectedUsers)
			}
		})
	}
}

func TestCreateHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful creation",
			body: `{"email":"new@example.com","password":"password123","is_admin":false}`,
			prepareMock: func() {
				service.EXPECT().
					CreateUser(gomock.Any(), "new@example.com", "password123", false).
					Return(&domain.User{ID: 3, Email: "new@example.com"}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Email already taken",
			body: `{"email":"taken@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateUser(gomock.Any(), "taken@example.com", "password123", false).
					Return(nil, authservice.ErrEmailTaken)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "email already taken",
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:          "Missing fields",
			body:          `{"email":"","password":""}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Email and password are required",
		},
		{
			name: "Service error",
			body: `{"email":"new@example.com","password":"password123"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateUser(gomock.Any(), "new@example.com", "password123", false).
					Return(nil, errors.New("database error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("POST", "/api/users", bytes.NewReader([]byte(tt.body)))
			rr := httptest.NewRecorder()

			handler.Create(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}

func TestUpdateHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		id            string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful update",
			id:   "1",
			body: `{"email":"renamed@example.com","password":""}`,
			prepareMock: func() {
				service.EXPECT().
					UpdateUser(gomock.Any(), 1, "renamed@example.com", "").
					Return(&domain.User{ID: 1, Email: "renamed@example.com"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "User not found",
			id:   "99",
			body: `{"email":"ghost@example.com"}`,
			prepareMock: func() {
				service.EXPECT().
					UpdateUser(gomock.Any(), 99, "ghost@example.com", "").
					Return(nil, authservice.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "user not found",
		},
		{
			name:          "Invalid user id",
			id:            "abc",
			body:          `{"email":"renamed@example.com"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid user id",
		},
		{
			name:          "Invalid request body",
			id:            "1",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("PUT", "/api/users/"+tt.id, bytes.NewReader([]byte(tt.body)))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rr := httptest.NewRecorder()

			handler.Update(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedError != "" {
				var resp utils.Response
				assert.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
				assert.Equal(t, tt.expectedError, resp.Message)
			}
		})
	}
}
