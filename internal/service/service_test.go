package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adminconsole/internal/apiclient"
	"adminconsole/internal/config"
	"adminconsole/internal/models"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   map[string]any
}

type fakeBackend struct {
	t         *testing.T
	server    *httptest.Server
	requests  []capturedRequest
	responses map[string]string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	fb := &fakeBackend{t: t, responses: map[string]string{}}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
		}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			assert.NoError(t, json.Unmarshal(raw, &req.Body))
		}
		fb.requests = append(fb.requests, req)

		body, ok := fb.responses[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) last() capturedRequest {
	require.NotEmpty(fb.t, fb.requests)
	return fb.requests[len(fb.requests)-1]
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestService(fb *fakeBackend) *Service {
	client := apiclient.NewClient(staticToken("admin-token"), time.Second)
	base := fb.server.URL
	return NewService(client, config.Services{
		AuthURL:         base + "/auth-api",
		UserURL:         base + "/auth-api/admin",
		RestaurantURL:   base + "/restaurant-api/admin",
		PostURL:         base + "/social-api/admin",
		MoodURL:         base + "/discovery-api/admin",
		NotificationURL: base + "/notification-api",
	})
}

func TestAuthService(t *testing.T) {
	fb := newFakeBackend(t)
	fb.responses["POST /auth-api/auth/login"] = `{"success":true,"data":{"accessToken":"jwt","user":{"id":1,"email":"admin@mumii.vn","fullname":"Admin","role":"Admin","isActive":true,"createdAt":"2024-01-01T00:00:00Z"}}}`
	svc := newTestService(fb)

	resp, err := svc.Auth.Login(context.Background(), "admin@mumii.vn", "secret")

	require.NoError(t, err)
	assert.Equal(t, "jwt", resp.User.AccessToken)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
	req := fb.last()
	assert.Empty(t, req.Auth, "login is sent without a bearer token")
	assert.Equal(t, "admin@mumii.vn", req.Body["email"])

	require.NoError(t, svc.Auth.Logout(context.Background()))
	assert.Equal(t, "/auth-api/auth/logout", fb.last().Path)
	assert.Equal(t, "Bearer admin-token", fb.last().Auth)
}

func TestUserService(t *testing.T) {
	fb := newFakeBackend(t)
	fb.responses["GET /auth-api/admin/users"] = `{"success":true,"data":{"items":[{"id":1,"fullname":"A","role":"User"},{"id":2,"fullname":"B","role":"Partner"}]}}`
	fb.responses["GET /auth-api/admin/users/partner-requests"] = `{"success":true,"data":[{"id":5,"fullname":"Owner","role":"User"}]}`
	fb.responses["GET /auth-api/admin/users/2"] = `{"success":true,"data":{"id":2,"fullname":"B","role":"Partner"}}`
	svc := newTestService(fb)
	ctx := context.Background()

	users, err := svc.User.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	requests, err := svc.User.PartnerRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, int64(5), requests[0].ID)

	user, err := svc.User.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, models.RolePartner, user.Role)

	require.NoError(t, svc.User.Update(ctx, 2, UpdateUserRequest{Fullname: "B", Role: models.RolePartner, IsActive: false}))
	req := fb.last()
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, false, req.Body["isActive"])

	tests := []struct {
		name string
		call func() error
		path string
	}{
		{"activate", func() error { return svc.User.Activate(ctx, 3) }, "/auth-api/admin/users/3/activate"},
		{"approve partner", func() error { return svc.User.ApprovePartner(ctx, 5) }, "/auth-api/admin/users/5/approve-partner"},
		{"decline partner", func() error { return svc.User.DeclinePartner(ctx, 5) }, "/auth-api/admin/users/5/decline-partner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, http.MethodPost, fb.last().Method)
			assert.Equal(t, tt.path, fb.last().Path)
		})
	}
}

func TestRestaurantService(t *testing.T) {
	fb := newFakeBackend(t)
	fb.responses["GET /restaurant-api/admin/restaurants"] = `{"success":true,"data":{"items":[{"id":7,"partnerId":42,"name":"Pho 24","status":"Pending","createdAt":"2024-03-01"}],"totalCount":1,"page":1,"pageSize":1000,"totalPages":1}}`
	fb.responses["POST /restaurant-api/admin/restaurants/7/approve"] = `{"success":false,"message":"Restaurant already approved"}`
	svc := newTestService(fb)
	ctx := context.Background()

	page, err := svc.Restaurant.List(ctx, RestaurantListParams{Page: 1, PageSize: 1000, Status: models.RestaurantPending})
	require.NoError(t, err)
	assert.Equal(t, "page=1&pageSize=1000&status=Pending", fb.last().Query)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 2024, page.Items[0].CreatedAt.Year())

	err = svc.Restaurant.Approve(ctx, 7)
	assert.EqualError(t, err, "Restaurant already approved")

	require.NoError(t, svc.Restaurant.Decline(ctx, 8, "Missing license"))
	assert.Equal(t, "/restaurant-api/admin/restaurants/8/decline", fb.last().Path)
	assert.Equal(t, "Missing license", fb.last().Body["reason"])

	require.NoError(t, svc.Restaurant.Update(ctx, 8, UpdateRestaurantRequest{Name: "Bun Cha", AvgPrice: 50000}))
	assert.Equal(t, http.MethodPut, fb.last().Method)
	assert.Equal(t, "Bun Cha", fb.last().Body["name"])

	require.NoError(t, svc.Restaurant.Delete(ctx, 8))
	assert.Equal(t, http.MethodDelete, fb.last().Method)
}

func TestPostService(t *testing.T) {
	fb := newFakeBackend(t)
	fb.responses["GET /social-api/admin/posts"] = `{"success":true,"data":{"items":[],"totalCount":0,"page":1,"pageSize":1000,"totalPages":0}}`
	fb.responses["GET /social-api/admin/posts/3"] = `{"success":true,"data":{"id":3,"title":"Best pho","status":"PENDING"}}`
	svc := newTestService(fb)
	ctx := context.Background()

	page, err := svc.Post.List(ctx, PostListParams{Page: 1, PageSize: 1000, PartnerID: 42})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, "page=1&pageSize=1000&partnerId=42", fb.last().Query)

	post, err := svc.Post.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, models.PostPending, post.Status)

	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
	}{
		{"approve", func() error { return svc.Post.Approve(ctx, 3) }, http.MethodPost, "/social-api/admin/posts/3/approve"},
		{"decline", func() error { return svc.Post.Decline(ctx, 3, "Spam") }, http.MethodPost, "/social-api/admin/posts/3/decline"},
		{"remove", func() error { return svc.Post.Remove(ctx, 3) }, http.MethodPost, "/social-api/admin/posts/3/remove"},
		{"delete", func() error { return svc.Post.Delete(ctx, 3) }, http.MethodDelete, "/social-api/admin/posts/3"},
		{"update", func() error {
			return svc.Post.Update(ctx, 3, UpdatePostRequest{Title: "T", Content: "C", ImageURL: "http://img", RestaurantID: 7})
		}, http.MethodPut, "/social-api/admin/posts/3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.method, fb.last().Method)
			assert.Equal(t, tt.path, fb.last().Path)
		})
	}
}

func TestMoodService(t *testing.T) {
	fb := newFakeBackend(t)
	fb.responses["GET /discovery-api/admin/moods"] = `[{"id":1,"name":"Cozy","description":"Warm places"}]`
	fb.responses["POST /discovery-api/admin/moods"] = `{"success":true,"data":{"id":2,"name":"Lively","description":"Busy"}}`
	svc := newTestService(fb)
	ctx := context.Background()

	moods, err := svc.Mood.List(ctx)
	require.NoError(t, err)
	require.Len(t, moods, 1)

	created, err := svc.Mood.Create(ctx, MoodRequest{Name: "Lively", Description: "Busy"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), created.ID)

	require.NoError(t, svc.Mood.Update(ctx, 2, MoodRequest{Name: "Lively", Description: "Loud"}))
	assert.Equal(t, map[string]any{"name": "Lively", "description": "Loud"}, fb.last().Body)

	require.NoError(t, svc.Mood.Delete(ctx, 2))
	assert.Equal(t, "/discovery-api/admin/moods/2", fb.last().Path)
}

func TestNotificationService(t *testing.T) {
	fb := newFakeBackend(t)
	fb.responses["GET /notification-api/notifications"] = `{"success":true,"data":{"items":[{"id":1,"userId":42,"title":"Hi","isRead":false,"createdAt":"2024-05-01T08:00:00"}]}}`
	svc := newTestService(fb)
	ctx := context.Background()

	items, err := svc.Notification.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(42), items[0].UserID)

	require.NoError(t, svc.Notification.SendToUser(ctx, SendNotificationRequest{UserID: 42, Title: "Restaurant Approved", Content: "ok"}))
	assert.Equal(t, "/notification-api/notifications/send-to-user", fb.last().Path)
	assert.Equal(t, float64(42), fb.last().Body["userId"])

	require.NoError(t, svc.Notification.Broadcast(ctx, BroadcastRequest{Title: "Maintenance", Content: "Tonight"}))
	assert.Equal(t, "/notification-api/notifications/broadcast", fb.last().Path)

	require.NoError(t, svc.Notification.Update(ctx, 1, UpdateNotificationRequest{Title: "Hi", Content: "there"}))
	assert.Equal(t, http.MethodPut, fb.last().Method)

	require.NoError(t, svc.Notification.Delete(ctx, 1))
	assert.Equal(t, http.MethodDelete, fb.last().Method)
}
