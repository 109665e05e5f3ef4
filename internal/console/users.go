package console

import (
	"context"
	"fmt"
	"strconv"

	"adminconsole/internal/listing"
	"adminconsole/internal/models"
	"adminconsole/internal/service"
)

type Users struct {
	List *listing.List[models.User]

	users    service.UserService
	loader   listing.Loader
	notifier listing.Notifier
}

func NewUsers(deps Deps) *Users {
	users := deps.Services.User
	u := &Users{
		users:    users,
		loader:   loaderOrNop(deps.Loader),
		notifier: notifierOrNop(deps.Notifier),
	}

	u.List = listing.New(listing.Config[models.User]{
		Name:  "users",
		Fetch: users.List,
		Key:   func(user models.User) int64 { return user.ID },
		Filters: map[string]func(models.User, string) bool{
			"role": func(user models.User, v string) bool { return string(user.Role) == v },
			"status": func(user models.User, v string) bool {
				active, err := strconv.ParseBool(v)
				return err != nil || user.IsActive == active
			},
		},
		Search: func(user models.User) []string { return []string{user.Fullname, user.Email} },
		Columns: map[string]func(models.User) any{
			"id":        func(user models.User) any { return user.ID },
			"fullname":  func(user models.User) any { return user.Fullname },
			"email":     func(user models.User) any { return user.Email },
			"role":      func(user models.User) any { return string(user.Role) },
			"isActive":  func(user models.User) any { return user.IsActive },
			"createdAt": func(user models.User) any { return user.CreatedAt.Time },
		},
		DefaultSort: listing.Sorting{Key: "id", Direction: listing.Asc},
		Debounce:    deps.Debounce,
		Loader:      u.loader,
		Notifier:    u.notifier,
	})
	return u
}

func (u *Users) Close() {
	u.List.Close()
}

// ToggleStatus flips isActive optimistically. Re-activation goes through the
// activate endpoint; locking is an update with isActive=false.
func (u *Users) ToggleStatus(ctx context.Context, id int64) error {
	user, ok := u.List.Get(id)
	if !ok {
		return ErrNoSelection
	}
	next := !user.IsActive

	err := u.List.Optimistic(ctx, id,
		func(item *models.User) { item.IsActive = next },
		func(ctx context.Context) error {
			if next {
				return u.users.Activate(ctx, id)
			}
			return u.users.Update(ctx, id, service.UpdateUserRequest{
				Fullname: user.Fullname,
				Role:     user.Role,
				IsActive: false,
			})
		})
	if err != nil {
		return err
	}

	verb := "locked"
	if next {
		verb = "activated"
	}
	u.notifier.Success(fmt.Sprintf("User %s has been %s.", user.Fullname, verb))
	_ = u.List.Refetch(ctx)
	return nil
}

// Detail loads the full record, including the profile.
func (u *Users) Detail(ctx context.Context, id int64) (*models.User, error) {
	u.loader.Show()
	defer u.loader.Hide()

	user, err := u.users.Get(ctx, id)
	if err != nil {
		reportDetailError(u.notifier, "user", err)
		return nil, err
	}
	return user, nil
}

// EditForm returns the form prefilled from the listed user.
func (u *Users) EditForm(id int64) (UserForm, error) {
	user, ok := u.List.Get(id)
	if !ok {
		return UserForm{}, ErrNoSelection
	}
	return UserForm{Fullname: user.Fullname, Role: user.Role, IsActive: user.IsActive}, nil
}

func (u *Users) Update(ctx context.Context, id int64, form UserForm) error {
	if err := check(form, "Full name and a valid role are required."); err != nil {
		return err
	}

	return u.List.Submit(ctx, func(ctx context.Context) error {
		return u.users.Update(ctx, id, service.UpdateUserRequest{
			Fullname: form.Fullname,
			Role:     form.Role,
			IsActive: form.IsActive,
		})
	}, fmt.Sprintf("User %s updated successfully.", form.Fullname))
}
