package console

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"adminconsole/internal/listing"
	"adminconsole/internal/logger"
	"adminconsole/internal/models"
	"adminconsole/internal/service"
)

const recentLimit = 5

type DashboardStats struct {
	TotalUsers         int `json:"totalUsers"`
	NewUsersToday      int `json:"newUsersToday"`
	PendingRestaurants int `json:"pendingRestaurants"`
	NewPendingToday    int `json:"newPendingToday"`
	TotalMoods         int `json:"totalMoods"`
	PendingPosts       int `json:"pendingPosts"`
}

type StatusBreakdown struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Declined int `json:"declined"`
}

type DashboardData struct {
	Stats             DashboardStats      `json:"stats"`
	RestaurantStatus  StatusBreakdown     `json:"restaurantStatus"`
	RecentUsers       []models.User       `json:"recentUsers"`
	RecentRestaurants []models.Restaurant `json:"recentRestaurants"`
}

type Dashboard struct {
	svc      *service.Service
	loader   listing.Loader
	notifier listing.Notifier
	pageSize int
	now      func() time.Time

	mu         sync.Mutex
	data       *DashboardData
	generation uint64
	cancel     context.CancelFunc
}

func NewDashboard(deps Deps) *Dashboard {
	return &Dashboard{
		svc:      deps.Services,
		loader:   loaderOrNop(deps.Loader),
		notifier: notifierOrNop(deps.Notifier),
		pageSize: deps.MasterPageSize,
		now:      time.Now,
	}
}

// Load fetches users, restaurants, moods and posts concurrently and
// aggregates them. A newer Load supersedes an older one.
func (d *Dashboard) Load(ctx context.Context) (*DashboardData, error) {
	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.generation++
	gen := d.generation
	d.cancel = cancel
	d.mu.Unlock()

	d.loader.Show()
	data, err := d.collect(loadCtx)
	d.loader.Hide()

	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.generation {
		return d.data, nil
	}
	d.cancel = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return d.data, nil
		}
		logger.Zlog.Error("dashboard load failed", zap.Error(err))
		d.notifier.Error(err.Error())
		return d.data, err
	}

	d.data = data
	return data, nil
}

// Data returns the last loaded aggregate, or nil.
func (d *Dashboard) Data() *DashboardData {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data
}

func (d *Dashboard) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.generation++
}

func (d *Dashboard) collect(ctx context.Context) (*DashboardData, error) {
	var (
		users       []models.User
		restaurants []models.Restaurant
		moods       []models.Mood
		posts       []models.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = d.svc.User.List(gctx)
		return err
	})
	g.Go(func() error {
		res, err := d.svc.Restaurant.List(gctx, service.RestaurantListParams{Page: 1, PageSize: d.pageSize})
		if err != nil {
			return err
		}
		restaurants = res.Items
		return nil
	})
	g.Go(func() error {
		var err error
		moods, err = d.svc.Mood.List(gctx)
		return err
	})
	g.Go(func() error {
		res, err := d.svc.Post.List(gctx, service.PostListParams{Page: 1, PageSize: d.pageSize})
		if err != nil {
			return err
		}
		posts = res.Items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return aggregate(d.now(), users, restaurants, moods, posts), nil
}

func aggregate(now time.Time, users []models.User, restaurants []models.Restaurant, moods []models.Mood, posts []models.Post) *DashboardData {
	data := &DashboardData{
		RecentUsers:       []models.User{},
		RecentRestaurants: []models.Restaurant{},
	}

	data.Stats.TotalUsers = len(users)
	data.Stats.TotalMoods = len(moods)
	for _, u := range users {
		if sameDay(u.CreatedAt.Time, now) {
			data.Stats.NewUsersToday++
		}
	}

	var approved []models.Restaurant
	for _, r := range restaurants {
		switch r.Status {
		case models.RestaurantPending:
			data.RestaurantStatus.Pending++
			if sameDay(r.CreatedAt.Time, now) {
				data.Stats.NewPendingToday++
			}
		case models.RestaurantApproved:
			data.RestaurantStatus.Approved++
			approved = append(approved, r)
		case models.RestaurantDeclined:
			data.RestaurantStatus.Declined++
		}
	}
	data.Stats.PendingRestaurants = data.RestaurantStatus.Pending

	for _, p := range posts {
		if p.Status == models.PostPending {
			data.Stats.PendingPosts++
		}
	}

	recentUsers := slices.Clone(users)
	slices.SortStableFunc(recentUsers, func(a, b models.User) int {
		return b.CreatedAt.Time.Compare(a.CreatedAt.Time)
	})
	data.RecentUsers = append(data.RecentUsers, recentUsers[:min(recentLimit, len(recentUsers))]...)

	slices.SortStableFunc(approved, func(a, b models.Restaurant) int {
		return b.CreatedAt.Time.Compare(a.CreatedAt.Time)
	})
	data.RecentRestaurants = append(data.RecentRestaurants, approved[:min(recentLimit, len(approved))]...)

	return data
}

func sameDay(t, now time.Time) bool {
	if t.IsZero() {
		return false
	}
	y1, m1, d1 := t.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
