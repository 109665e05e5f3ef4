package test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"adminconsole/internal/apiclient"
	"adminconsole/internal/models"
	"adminconsole/internal/service"
	"adminconsole/internal/session"
	"adminconsole/internal/toast"
)

const (
	usersJSON = `{"success":true,"data":[
		{"id":1,"email":"admin@example.com","fullname":"Ada Admin","role":"Admin","isActive":true},
		{"id":42,"email":"pat@example.com","fullname":"Pat Partner","role":"Partner","isActive":true},
		{"id":43,"email":"uma@example.com","fullname":"Uma User","role":"User","isActive":false}
	]}`
	restaurantsJSON = `{"success":true,"data":{"items":[
		{"id":7,"partnerId":42,"name":"Pho 24","status":"Pending"},
		{"id":8,"partnerId":42,"name":"Bun Cha","status":"Approved"}
	],"totalCount":2,"page":1,"pageSize":1000,"totalPages":1}}`
)

type frame struct {
	Data    json.RawMessage `json:"data"`
	Loading bool            `json:"loading"`
	Toasts  []toast.Toast   `json:"toasts"`
}

type listPage struct {
	Items       []map[string]any `json:"items"`
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
	TotalItems  int              `json:"totalItems"`
	Tab         string           `json:"tab"`
	Confirm     *struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"confirm"`
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeFrame(t *testing.T, rr *httptest.ResponseRecorder) (frame, listPage) {
	t.Helper()

	var f frame
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	var page listPage
	if len(f.Data) > 0 && f.Data[0] == '{' {
		require.NoError(t, json.Unmarshal(f.Data, &page))
	}
	return f, page
}

func TestRequireSession(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		expectedHeader string
	}{
		{"page visit redirects to login", http.MethodGet, "/users", http.StatusFound, "/login"},
		{"unknown page redirects to login", http.MethodGet, "/nowhere", http.StatusFound, "/login"},
		{"mutation is rejected", http.MethodPost, "/moods", http.StatusUnauthorized, ""},
		{"login page is public", http.MethodGet, "/login", http.StatusOK, ""},
		{"health is public", http.MethodGet, "/health", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.signedIn(false)

			rr := do(t, f.handler, tt.method, tt.target, "")

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedHeader != "" {
				assert.Equal(t, tt.expectedHeader, rr.Header().Get("Location"))
			}
			assert.Zero(t, f.backend.called("GET /users"))
		})
	}
}

func TestNotFound(t *testing.T) {
	f := newFixture(t)
	f.signedIn(true)

	rr := do(t, f.handler, http.MethodGet, "/nowhere", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	got, _ := decodeFrame(t, rr)
	assert.Contains(t, string(got.Data), "Page not found")
}

func TestLogin(t *testing.T) {
	admin := models.User{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin, AccessToken: "tok"}
	partner := models.User{ID: 42, Email: "pat@example.com", Role: models.RolePartner, AccessToken: "tok"}

	tests := []struct {
		name           string
		body           string
		mockSetup      func(f *fixture)
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "missing password",
			body:           `{"email":"admin@example.com"}`,
			mockSetup:      func(f *fixture) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "Email and password are required.",
		},
		{
			name: "rejected by auth service",
			body: `{"email":"admin@example.com","password":"wrong"}`,
			mockSetup: func(f *fixture) {
				f.auth.On("Login", mock.Anything, "admin@example.com", "wrong").
					Return(nil, &apiclient.Error{Status: http.StatusUnauthorized, Message: "Invalid email or password"})
			},
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid email or password",
		},
		{
			name: "partner account is refused",
			body: `{"email":"pat@example.com","password":"secret"}`,
			mockSetup: func(f *fixture) {
				f.auth.On("Login", mock.Anything, "pat@example.com", "secret").
					Return(&service.LoginResponse{AccessToken: "tok", User: partner}, nil)
				f.sessions.On("Login", mock.Anything, partner).Return(session.ErrNotAdmin)
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "Invalid credentials or not an admin account.",
		},
		{
			name: "admin signs in",
			body: `{"email":"admin@example.com","password":"secret"}`,
			mockSetup: func(f *fixture) {
				f.auth.On("Login", mock.Anything, "admin@example.com", "secret").
					Return(&service.LoginResponse{AccessToken: "tok", User: admin}, nil)
				f.sessions.On("Login", mock.Anything, admin).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mockSetup(f)

			rr := do(t, f.handler, http.MethodPost, "/login", tt.body)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedError != "" {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp["formError"])
			}
			f.auth.AssertExpectations(t)
			f.sessions.AssertExpectations(t)
		})
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.signedIn(true)
	f.auth.On("Logout", mock.Anything).Return(assert.AnError)
	f.sessions.On("Logout", mock.Anything).Return(nil)

	rr := do(t, f.handler, http.MethodPost, "/logout", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	f.sessions.AssertCalled(t, "Logout", mock.Anything)
}

func TestGetUsers_FiltersAndFrame(t *testing.T) {
	f := newFixture(t)
	f.signedIn(true)
	f.backend.respond("GET /users", usersJSON)

	rr := do(t, f.handler, http.MethodGet, "/users?role=Partner", "")

	require.Equal(t, http.StatusOK, rr.Code)
	got, page := decodeFrame(t, rr)
	assert.False(t, got.Loading)
	assert.NotNil(t, got.Toasts)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Pat Partner", page.Items[0]["fullname"])

	// A second visit reuses the mounted list.
	rr = do(t, f.handler, http.MethodGet, "/users?role=&sort=id&dir=desc", "")
	require.Equal(t, http.StatusOK, rr.Code)
	_, page = decodeFrame(t, rr)
	require.Len(t, page.Items, 3)
	assert.EqualValues(t, 43, page.Items[0]["id"])
	assert.Equal(t, 1, f.backend.called("GET /users"))
}

func TestGetUsers_UnknownSortColumn(t *testing.T) {
	f := newFixture(t)
	f.signedIn(true)
	f.backend.respond("GET /users", usersJSON)

	rr := do(t, f.handler, http.MethodGet, "/users?sort=password", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetUsers_SortQueryIsStable(t *testing.T) {
	f := newFixture(t)
	f.signedIn(true)
	f.backend.respond("GET /users", usersJSON)

	for i := 0; i < 3; i++ {
		rr := do(t, f.handler, http.MethodGet, "/users?sort=fullname", "")
		require.Equal(t, http.StatusOK, rr.Code)
		_, page := decodeFrame(t, rr)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "Ada Admin", page.Items[0]["fullname"])
	}

	rr := do(t, f.handler, http.MethodPost, "/users/sort/fullname", "")
	require.Equal(t, http.StatusOK, rr.Code)
	_, page := decodeFrame(t, rr)
	assert.Equal(t, "Uma User", page.Items[0]["fullname"])

	rr = do(t, f.handler, http.MethodPost, "/users/sort/fullname", "")
	_, page = decodeFrame(t, rr)
	assert.Equal(t, "Ada Admin", page.Items[0]["fullname"])

	rr = do(t, f.handler, http.MethodPost, "/users/sort/password", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetRestaurants_Tabs(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expectedNames  []string
	}{
		{"default tab is pending", "/restaurants", http.StatusOK, []string{"Pho 24"}},
		{"approved tab", "/restaurants?tab=Approved", http.StatusOK, []string{"Bun Cha"}},
		{"unknown tab is rejected", "/restaurants?tab=Archived", http.StatusBadRequest, nil},
		{"post status is not a restaurant tab", "/restaurants?tab=APPROVED", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.signedIn(true)
			f.backend.respond("GET /users", usersJSON)
			f.backend.respond("GET /restaurants", restaurantsJSON)

			rr := do(t, f.handler, http.MethodGet, tt.target, "")

			require.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedNames == nil {
				return
			}
			_, page := decodeFrame(t, rr)
			names := make([]string, 0, len(page.Items))
			for _, item := range page.Items {
				names = append(names, item["name"].(string))
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}

func TestGetUsers_TabIsRejected(t *testing.T) {
	f := newFixture(t)
	f.signedIn(true)
	f.backend.respond("GET /users", usersJSON)

	rr := do(t, f.handler, http.MethodGet, "/users?tab=Admin", "")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRestaurantApproveFlow(t *testing.T) {
	f := newFixture(t)
	f.signedIn(true)
	f.backend.respond("GET /users", usersJSON)
	f.backend.respond("GET /restaurants", restaurantsJSON)

	rr := do(t, f.handler, http.MethodGet, "/restaurants", "")
	require.Equal(t, http.StatusOK, rr.Code)
	_, page := decodeFrame(t, rr)
	assert.Equal(t, "Pending", page.Tab)
	require.Len(t, page.Items, 1)

	rr = do(t, f.handler, http.MethodPost, "/restaurants/7/approve", "")
	require.Equal(t, http.StatusAccepted, rr.Code)
	_, page = decodeFrame(t, rr)
	require.NotNil(t, page.Confirm)
	assert.Equal(t, "Confirm Approval", page.Confirm.Title)
	assert.Zero(t, f.backend.called("POST /restaurants/7/approve"))

	rr = do(t, f.handler, http.MethodPost, "/restaurants/confirm", "")
	require.Equal(t, http.StatusOK, rr.Code)
	got, page := decodeFrame(t, rr)
	assert.Nil(t, page.Confirm)

	assert.Equal(t, 1, f.backend.called("POST /restaurants/7/approve"))
	assert.Equal(t, 1, f.backend.called("POST /notifications/send-to-user"))
	assert.Equal(t, 2, f.backend.called("GET /restaurants"))
	require.NotEmpty(t, got.Toasts)
	assert.Equal(t, `Restaurant "Pho 24" has been approved.`, got.Toasts[0].Message)

	rr = do(t, f.handler, http.MethodPost, "/restaurants/confirm", "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestDeclineRestaurant_EmptyReason(t *testing.T) {
	f := newFixture(t)
	f.signedIn(true)
	f.backend.respond("GET /users", usersJSON)
	f.backend.respond("GET /restaurants", restaurantsJSON)
	do(t, f.handler, http.MethodGet, "/restaurants", "")

	rr := do(t, f.handler, http.MethodPost, "/restaurants/7/decline", `{"reason":"  "}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "A reason for declining is required.", resp["formError"])
	assert.Zero(t, f.backend.called("POST /restaurants/7/decline"))
}

func TestUploadPostImage_StorageDisabled(t *testing.T) {
	f := newFixture(t)
	f.signedIn(true)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "cover.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/posts/3/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestDismissToast(t *testing.T) {
	f := newFixture(t)
	f.signedIn(true)
	f.toasts.Success("saved")

	rr := do(t, f.handler, http.MethodGet, "/toasts", "")
	got, _ := decodeFrame(t, rr)
	require.Len(t, got.Toasts, 1)

	rr = do(t, f.handler, http.MethodDelete, "/toasts/1", "")
	got, _ = decodeFrame(t, rr)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, got.Toasts)

	rr = do(t, f.handler, http.MethodDelete, "/toasts/1", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
