package console

import (
	"context"
	"fmt"

	"adminconsole/internal/listing"
	"adminconsole/internal/models"
	"adminconsole/internal/service"
)

// PartnerRequests lists users who applied for a partner account.
type PartnerRequests struct {
	List *listing.List[models.User]

	users    service.UserService
	notifier listing.Notifier
}

func NewPartnerRequests(deps Deps) *PartnerRequests {
	users := deps.Services.User
	p := &PartnerRequests{
		users:    users,
		notifier: notifierOrNop(deps.Notifier),
	}

	p.List = listing.New(listing.Config[models.User]{
		Name:   "partner-requests",
		Fetch:  users.PartnerRequests,
		Key:    func(user models.User) int64 { return user.ID },
		Search: func(user models.User) []string { return []string{user.Fullname, user.Email} },
		Columns: map[string]func(models.User) any{
			"id":        func(user models.User) any { return user.ID },
			"fullname":  func(user models.User) any { return user.Fullname },
			"createdAt": func(user models.User) any { return user.CreatedAt.Time },
		},
		DefaultSort: listing.Sorting{Key: "createdAt", Direction: listing.Desc},
		Debounce:    deps.Debounce,
		Loader:      loaderOrNop(deps.Loader),
		Notifier:    p.notifier,
	})
	return p
}

func (p *PartnerRequests) Close() {
	p.List.Close()
}

func (p *PartnerRequests) RequestApprove(id int64) error {
	user, ok := p.List.Get(id)
	if !ok {
		return ErrNoSelection
	}

	p.List.RequestConfirm("Confirm Approval",
		fmt.Sprintf("Are you sure you want to approve %q as a partner?", user.Fullname),
		func(ctx context.Context) error {
			if err := p.users.ApprovePartner(ctx, id); err != nil {
				return err
			}
			p.notifier.Success(fmt.Sprintf("User %q has been approved as a partner.", user.Fullname))
			return nil
		})
	return nil
}

func (p *PartnerRequests) RequestDecline(id int64) error {
	user, ok := p.List.Get(id)
	if !ok {
		return ErrNoSelection
	}

	p.List.RequestConfirm("Confirm Decline",
		fmt.Sprintf("Are you sure you want to decline the partner request for %q?", user.Fullname),
		func(ctx context.Context) error {
			if err := p.users.DeclinePartner(ctx, id); err != nil {
				return err
			}
			p.notifier.Success(fmt.Sprintf("Partner request for %q has been declined.", user.Fullname))
			return nil
		})
	return nil
}
