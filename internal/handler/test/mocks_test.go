package test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"adminconsole/internal/apiclient"
	"adminconsole/internal/config"
	"adminconsole/internal/console"
	handlers "adminconsole/internal/handler"
	"adminconsole/internal/loading"
	"adminconsole/internal/middleware"
	"adminconsole/internal/models"
	"adminconsole/internal/service"
	"adminconsole/internal/toast"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Login(ctx context.Context, user models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockSessions) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSessions) Current(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockSessions) IsAuthenticated(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

type staticToken string

func (s staticToken) Token() string { return string(s) }

// backend fakes every remote service behind one server. Responses are keyed
// by "METHOD path"; anything else answers 204.
type backend struct {
	server *httptest.Server

	mu        sync.Mutex
	calls     []string
	responses map[string]string
}

func newBackend(t *testing.T) *backend {
	b := &backend{responses: map[string]string{}}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path

		b.mu.Lock()
		b.calls = append(b.calls, key)
		body, ok := b.responses[key]
		b.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) respond(key, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[key] = body
}

func (b *backend) called(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, c := range b.calls {
		if c == key {
			n++
		}
	}
	return n
}

type fixture struct {
	handler  http.Handler
	handlers *handlers.Handlers
	auth     *MockAuthService
	sessions *MockSessions
	backend  *backend
	toasts   *toast.Queue
}

func newFixture(t *testing.T) *fixture {
	b := newBackend(t)
	base := b.server.URL

	services := service.NewService(apiclient.NewClient(staticToken("admin-token"), time.Second), config.Services{
		AuthURL:         base,
		UserURL:         base,
		RestaurantURL:   base,
		PostURL:         base,
		MoodURL:         base,
		NotificationURL: base,
	})
	auth := new(MockAuthService)
	services.Auth = auth

	sessions := new(MockSessions)
	loader := loading.NewCounter()
	toasts := toast.NewQueue()

	c := console.New(console.Deps{
		Services:       services,
		Loader:         loader,
		Notifier:       toasts,
		MasterPageSize: 1000,
	})
	cfg := &config.Config{MaxUploadSize: 1 << 20}
	h := handlers.NewHandlers(c, services, sessions, loader, toasts, nil, cfg)

	return &fixture{
		handler:  middleware.Chain(h.Router(), middleware.RequireSession(sessions)),
		handlers: h,
		auth:     auth,
		sessions: sessions,
		backend:  b,
		toasts:   toasts,
	}
}

func (f *fixture) signedIn(ok bool) {
	f.sessions.On("IsAuthenticated", mock.Anything).Return(ok)
}
