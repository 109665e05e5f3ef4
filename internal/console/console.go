package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"adminconsole/internal/listing"
	"adminconsole/internal/logger"
	"adminconsole/internal/service"
	"adminconsole/internal/storage"
)

const (
	PageDashboard       = "dashboard"
	PageUsers           = "users"
	PagePartnerRequests = "partner-requests"
	PageRestaurants     = "restaurants"
	PageMoods           = "moods"
	PagePosts           = "posts"
	PageNotifications   = "notifications"
)

type Deps struct {
	Services       *service.Service
	Storage        storage.Storage
	Loader         listing.Loader
	Notifier       listing.Notifier
	Debounce       time.Duration
	MasterPageSize int
}

type page interface {
	Close()
}

// Console holds one controller per page. Visiting a page unmounts the
// previously visited one, cancelling its in-flight fetch.
type Console struct {
	Dashboard       *Dashboard
	Users           *Users
	PartnerRequests *PartnerRequests
	Restaurants     *Restaurants
	Posts           *Posts
	Moods           *Moods
	Notifications   *Notifications

	mu     sync.Mutex
	active string
	pages  map[string]page
}

func New(deps Deps) *Console {
	if deps.MasterPageSize <= 0 {
		deps.MasterPageSize = 1000
	}

	c := &Console{
		Dashboard:       NewDashboard(deps),
		Users:           NewUsers(deps),
		PartnerRequests: NewPartnerRequests(deps),
		Restaurants:     NewRestaurants(deps),
		Posts:           NewPosts(deps),
		Moods:           NewMoods(deps),
		Notifications:   NewNotifications(deps),
	}
	c.pages = map[string]page{
		PageDashboard:       c.Dashboard,
		PageUsers:           c.Users,
		PagePartnerRequests: c.PartnerRequests,
		PageRestaurants:     c.Restaurants,
		PagePosts:           c.Posts,
		PageMoods:           c.Moods,
		PageNotifications:   c.Notifications,
	}
	return c
}

// Navigate records name as the visible page and unmounts the previous one.
func (c *Console) Navigate(name string) {
	c.mu.Lock()
	prev := c.active
	c.active = name
	c.mu.Unlock()

	if prev == "" || prev == name {
		return
	}
	if p, ok := c.pages[prev]; ok {
		logger.Zlog.Debug("unmounting page", zap.String("page", prev), zap.String("next", name))
		p.Close()
	}
}

func (c *Console) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// CloseAll unmounts every page, used on logout and shutdown.
func (c *Console) CloseAll() {
	c.mu.Lock()
	c.active = ""
	c.mu.Unlock()

	for _, p := range c.pages {
		p.Close()
	}
}

// reportDetailError surfaces a failed detail fetch, ignoring cancellation.
func reportDetailError(n listing.Notifier, what string, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	logger.Zlog.Error("detail fetch failed", zap.String("entity", what), zap.Error(err))
	n.Error(err.Error())
}

func notifierOrNop(n listing.Notifier) listing.Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}

func loaderOrNop(l listing.Loader) listing.Loader {
	if l == nil {
		return nopLoader{}
	}
	return l
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

type nopLoader struct{}

func (nopLoader) Show() {}
func (nopLoader) Hide() {}
