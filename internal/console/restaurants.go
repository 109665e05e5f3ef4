package console

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"adminconsole/internal/listing"
	"adminconsole/internal/models"
	"adminconsole/internal/service"
)

type Restaurants struct {
	List *listing.List[models.Restaurant]

	restaurants service.RestaurantService
	users       service.UserService
	partners    partnerNotifier
	notifier    listing.Notifier
	pageSize    int
}

func NewRestaurants(deps Deps) *Restaurants {
	r := &Restaurants{
		restaurants: deps.Services.Restaurant,
		users:       deps.Services.User,
		partners:    partnerNotifier{notifications: deps.Services.Notification},
		notifier:    notifierOrNop(deps.Notifier),
		pageSize:    deps.MasterPageSize,
	}

	r.List = listing.New(listing.Config[models.Restaurant]{
		Name:             "restaurants",
		Fetch:            r.fetch,
		Key:              func(item models.Restaurant) int64 { return item.ID },
		Tab:              func(item models.Restaurant) string { return string(item.Status) },
		ValidTab:         func(tab string) bool { return models.RestaurantStatus(tab).Valid() },
		DefaultTab:       string(models.RestaurantPending),
		ClearSearchOnTab: true,
		Search: func(item models.Restaurant) []string {
			fields := []string{item.Name}
			if item.Partner != nil {
				fields = append(fields, item.Partner.Fullname)
			}
			return fields
		},
		Columns: map[string]func(models.Restaurant) any{
			"id":        func(item models.Restaurant) any { return item.ID },
			"name":      func(item models.Restaurant) any { return item.Name },
			"address":   func(item models.Restaurant) any { return item.Address },
			"avgPrice":  func(item models.Restaurant) any { return item.AvgPrice },
			"rating":    func(item models.Restaurant) any { return item.Rating },
			"createdAt": func(item models.Restaurant) any { return item.CreatedAt.Time },
		},
		DefaultSort: listing.Sorting{Key: "createdAt", Direction: listing.Desc},
		Debounce:    deps.Debounce,
		Loader:      loaderOrNop(deps.Loader),
		Notifier:    r.notifier,
	})
	return r
}

func (r *Restaurants) Close() {
	r.List.Close()
}

// fetch loads every restaurant and every user concurrently and attaches the
// owning partner to each restaurant.
func (r *Restaurants) fetch(ctx context.Context) ([]models.Restaurant, error) {
	var (
		items []models.Restaurant
		users []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := r.restaurants.List(gctx, service.RestaurantListParams{Page: 1, PageSize: r.pageSize})
		if err != nil {
			return err
		}
		items = res.Items
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = r.users.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	partners := partnerIndex(users)
	out := make([]models.Restaurant, len(items))
	for i, item := range items {
		if p, ok := partners[item.PartnerID]; ok {
			partner := p
			item.Partner = &partner
		}
		out[i] = item
	}
	return out, nil
}

func partnerIndex(users []models.User) map[int64]models.User {
	idx := make(map[int64]models.User)
	for _, u := range users {
		if u.Role == models.RolePartner {
			idx[u.ID] = u
		}
	}
	return idx
}

func (r *Restaurants) Detail(id int64) (models.Restaurant, error) {
	item, ok := r.List.Get(id)
	if !ok {
		return models.Restaurant{}, ErrNoSelection
	}
	return item, nil
}

// RequestApprove queues the approval behind a confirmation. On success the
// partner is notified.
func (r *Restaurants) RequestApprove(id int64) error {
	item, ok := r.List.Get(id)
	if !ok {
		return ErrNoSelection
	}

	r.List.RequestConfirm("Confirm Approval",
		fmt.Sprintf("Are you sure you want to approve %q? A notification will be sent to the partner.", item.Name),
		func(ctx context.Context) error {
			return r.approve(ctx, item)
		})
	return nil
}

func (r *Restaurants) approve(ctx context.Context, item models.Restaurant) error {
	if err := r.restaurants.Approve(ctx, item.ID); err != nil {
		return err
	}
	r.notifier.Success(fmt.Sprintf("Restaurant %q has been approved.", item.Name))
	r.partners.notify(ctx, item.PartnerID, "Restaurant Approved",
		fmt.Sprintf("Congratulations! Your restaurant %q has been approved.", item.Name))
	return nil
}

// Decline requires a non-empty reason; without one nothing is sent.
func (r *Restaurants) Decline(ctx context.Context, id int64, form DeclineForm) error {
	form = form.normalized()
	if err := check(form, "A reason for declining is required."); err != nil {
		return err
	}
	item, ok := r.List.Get(id)
	if !ok {
		return ErrNoSelection
	}

	return r.List.Submit(ctx, func(ctx context.Context) error {
		if err := r.restaurants.Decline(ctx, id, form.Reason); err != nil {
			return err
		}
		r.partners.notify(ctx, item.PartnerID, "Restaurant Declined",
			fmt.Sprintf("Regarding your restaurant %q, we were unable to approve it at this time. Reason: %s", item.Name, form.Reason))
		return nil
	}, fmt.Sprintf("Restaurant %q has been declined.", item.Name))
}

func (r *Restaurants) EditForm(id int64) (RestaurantForm, error) {
	item, ok := r.List.Get(id)
	if !ok {
		return RestaurantForm{}, ErrNoSelection
	}
	return RestaurantForm{
		Name:        item.Name,
		Address:     item.Address,
		Description: item.Description,
		AvgPrice:    item.AvgPrice,
	}, nil
}

func (r *Restaurants) Update(ctx context.Context, id int64, form RestaurantForm) error {
	if err := check(form, "Name and address are required."); err != nil {
		return err
	}

	return r.List.Submit(ctx, func(ctx context.Context) error {
		return r.restaurants.Update(ctx, id, service.UpdateRestaurantRequest{
			Name:        form.Name,
			Address:     form.Address,
			Description: form.Description,
			AvgPrice:    form.AvgPrice,
		})
	}, fmt.Sprintf("Restaurant %q has been updated.", form.Name))
}

func (r *Restaurants) RequestDelete(id int64) error {
	item, ok := r.List.Get(id)
	if !ok {
		return ErrNoSelection
	}

	r.List.RequestConfirm("Confirm Deletion",
		fmt.Sprintf("Are you sure you want to permanently delete %q? This action cannot be undone.", item.Name),
		func(ctx context.Context) error {
			if err := r.restaurants.Delete(ctx, id); err != nil {
				return err
			}
			r.notifier.Success(fmt.Sprintf("Restaurant %q has been permanently deleted.", item.Name))
			return nil
		})
	return nil
}
