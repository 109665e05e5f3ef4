package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"adminconsole/internal/config"
	"adminconsole/internal/console"
	"adminconsole/internal/models"
	"adminconsole/internal/service"
	"adminconsole/internal/toast"
)

// Sessions is the part of the session manager the handlers use.
type Sessions interface {
	Login(ctx context.Context, user models.User) error
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*models.User, error)
	IsAuthenticated(ctx context.Context) bool
}

type Loading interface {
	Active() bool
}

type Toasts interface {
	Active() []toast.Toast
	Dismiss(id int64) bool
}

type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	Console     *console.Console
	AuthService service.AuthService
	Sessions    Sessions
	Loading     Loading
	Toasts      Toasts
	DB          HealthChecker
	Cfg         *config.Config
}

func NewHandlers(c *console.Console, services *service.Service, sessions Sessions, loading Loading, toasts Toasts, db HealthChecker, cfg *config.Config) *Handlers {
	return &Handlers{
		Console:     c,
		AuthService: services.Auth,
		Sessions:    sessions,
		Loading:     loading,
		Toasts:      toasts,
		DB:          db,
		Cfg:         cfg,
	}
}

// Frame wraps every page response with the shared loader and toast state.
type Frame struct {
	Data    any           `json:"data"`
	Loading bool          `json:"loading"`
	Toasts  []toast.Toast `json:"toasts"`
}

func (h *Handlers) writeFrame(w http.ResponseWriter, data any, statusCode int) {
	frame := Frame{Data: data, Toasts: []toast.Toast{}}
	if h.Loading != nil {
		frame.Loading = h.Loading.Active()
	}
	if h.Toasts != nil {
		frame.Toasts = h.Toasts.Active()
	}
	WriteSuccess(w, frame, statusCode)
}

// Router registers the console routes. Numeric ids keep /{id} apart from
// the confirm and cancel verbs.
func (h *Handlers) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/login", h.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)

	r.HandleFunc("/toasts", h.GetToasts).Methods(http.MethodGet)
	r.HandleFunc("/toasts/{id:[0-9]+}", h.DismissToast).Methods(http.MethodDelete)

	r.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)

	r.HandleFunc("/users", h.GetUsers).Methods(http.MethodGet)
	sortRoute(h, r, "/users", h.Console.Users.List)
	r.HandleFunc("/users/{id:[0-9]+}", h.GetUser).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}", h.UpdateUser).Methods(http.MethodPut)
	r.HandleFunc("/users/{id:[0-9]+}/toggle-status", h.ToggleUserStatus).Methods(http.MethodPost)

	r.HandleFunc("/partner-requests", h.GetPartnerRequests).Methods(http.MethodGet)
	sortRoute(h, r, "/partner-requests", h.Console.PartnerRequests.List)
	r.HandleFunc("/partner-requests/{id:[0-9]+}/approve", h.ApprovePartner).Methods(http.MethodPost)
	r.HandleFunc("/partner-requests/{id:[0-9]+}/decline", h.DeclinePartner).Methods(http.MethodPost)
	confirmRoutes(h, r, "/partner-requests", h.Console.PartnerRequests.List)

	r.HandleFunc("/restaurants", h.GetRestaurants).Methods(http.MethodGet)
	sortRoute(h, r, "/restaurants", h.Console.Restaurants.List)
	r.HandleFunc("/restaurants/{id:[0-9]+}", h.GetRestaurant).Methods(http.MethodGet)
	r.HandleFunc("/restaurants/{id:[0-9]+}", h.UpdateRestaurant).Methods(http.MethodPut)
	r.HandleFunc("/restaurants/{id:[0-9]+}", h.DeleteRestaurant).Methods(http.MethodDelete)
	r.HandleFunc("/restaurants/{id:[0-9]+}/approve", h.ApproveRestaurant).Methods(http.MethodPost)
	r.HandleFunc("/restaurants/{id:[0-9]+}/decline", h.DeclineRestaurant).Methods(http.MethodPost)
	confirmRoutes(h, r, "/restaurants", h.Console.Restaurants.List)

	r.HandleFunc("/posts", h.GetPosts).Methods(http.MethodGet)
	sortRoute(h, r, "/posts", h.Console.Posts.List)
	r.HandleFunc("/posts/{id:[0-9]+}", h.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}", h.UpdatePost).Methods(http.MethodPut)
	r.HandleFunc("/posts/{id:[0-9]+}", h.DeletePost).Methods(http.MethodDelete)
	r.HandleFunc("/posts/{id:[0-9]+}/approve", h.ApprovePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/decline", h.DeclinePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/remove", h.RemovePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/image", h.UploadPostImage).Methods(http.MethodPost)
	confirmRoutes(h, r, "/posts", h.Console.Posts.List)

	r.HandleFunc("/moods", h.GetMoods).Methods(http.MethodGet)
	sortRoute(h, r, "/moods", h.Console.Moods.List)
	r.HandleFunc("/moods", h.CreateMood).Methods(http.MethodPost)
	r.HandleFunc("/moods/{id:[0-9]+}", h.UpdateMood).Methods(http.MethodPut)
	r.HandleFunc("/moods/{id:[0-9]+}", h.DeleteMood).Methods(http.MethodDelete)
	confirmRoutes(h, r, "/moods", h.Console.Moods.List)

	r.HandleFunc("/notifications", h.GetNotifications).Methods(http.MethodGet)
	sortRoute(h, r, "/notifications", h.Console.Notifications.List)
	r.HandleFunc("/notifications/send", h.SendNotification).Methods(http.MethodPost)
	r.HandleFunc("/notifications/broadcast", h.BroadcastNotification).Methods(http.MethodPost)
	r.HandleFunc("/notifications/{id:[0-9]+}", h.UpdateNotification).Methods(http.MethodPut)
	r.HandleFunc("/notifications/{id:[0-9]+}", h.DeleteNotification).Methods(http.MethodDelete)
	confirmRoutes(h, r, "/notifications", h.Console.Notifications.List)

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	return r
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.HealthCheck(); err != nil {
			WriteError(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.writeFrame(w, map[string]string{
		"error": "Page not found",
		"path":  r.URL.Path,
	}, http.StatusNotFound)
}
