package console

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"adminconsole/internal/listing"
	"adminconsole/internal/models"
	"adminconsole/internal/service"
)

const dateLayout = "2006-01-02"

type Notifications struct {
	List *listing.List[models.Notification]

	notifications service.NotificationService
	notifier      listing.Notifier
}

func NewNotifications(deps Deps) *Notifications {
	notifications := deps.Services.Notification
	n := &Notifications{
		notifications: notifications,
		notifier:      notifierOrNop(deps.Notifier),
	}

	n.List = listing.New(listing.Config[models.Notification]{
		Name:  "notifications",
		Fetch: notifications.List,
		Key:   func(item models.Notification) int64 { return item.ID },
		Filters: map[string]func(models.Notification, string) bool{
			"userId":    matchUserID,
			"status":    matchReadStatus,
			"startDate": createdOnOrAfter,
			"endDate":   createdOnOrBefore,
		},
		Search: func(item models.Notification) []string { return []string{item.Title, item.Content} },
		Columns: map[string]func(models.Notification) any{
			"id":        func(item models.Notification) any { return item.ID },
			"userId":    func(item models.Notification) any { return item.UserID },
			"title":     func(item models.Notification) any { return item.Title },
			"isRead":    func(item models.Notification) any { return item.IsRead },
			"createdAt": func(item models.Notification) any { return item.CreatedAt.Time },
		},
		DefaultSort: listing.Sorting{Key: "createdAt", Direction: listing.Desc},
		Debounce:    deps.Debounce,
		Loader:      loaderOrNop(deps.Loader),
		Notifier:    n.notifier,
	})
	return n
}

func (n *Notifications) Close() {
	n.List.Close()
}

// Unparseable filter values match everything.

func matchUserID(item models.Notification, v string) bool {
	id, err := strconv.ParseInt(v, 10, 64)
	return err != nil || item.UserID == id
}

func matchReadStatus(item models.Notification, v string) bool {
	read, err := strconv.ParseBool(v)
	return err != nil || item.IsRead == read
}

func createdOnOrAfter(item models.Notification, v string) bool {
	start, err := time.Parse(dateLayout, v)
	if err != nil {
		return true
	}
	return !item.CreatedAt.Time.Before(start)
}

// createdOnOrBefore includes the whole end day.
func createdOnOrBefore(item models.Notification, v string) bool {
	end, err := time.Parse(dateLayout, v)
	if err != nil {
		return true
	}
	end = end.Add(24*time.Hour - time.Millisecond)
	return !item.CreatedAt.Time.After(end)
}

func (n *Notifications) Send(ctx context.Context, form SendNotificationForm) error {
	if err := check(form, "All fields are required."); err != nil {
		return err
	}

	return n.List.Submit(ctx, func(ctx context.Context) error {
		return n.notifications.SendToUser(ctx, service.SendNotificationRequest{
			UserID:  form.UserID,
			Title:   form.Title,
			Content: form.Content,
		})
	}, fmt.Sprintf("Notification sent to user %d.", form.UserID))
}

func (n *Notifications) Broadcast(ctx context.Context, form BroadcastForm) error {
	if err := check(form, "Title and content are required."); err != nil {
		return err
	}

	return n.List.Submit(ctx, func(ctx context.Context) error {
		return n.notifications.Broadcast(ctx, service.BroadcastRequest{Title: form.Title, Content: form.Content})
	}, "Broadcast notification sent to all users.")
}

func (n *Notifications) EditForm(id int64) (EditNotificationForm, error) {
	item, ok := n.List.Get(id)
	if !ok {
		return EditNotificationForm{}, ErrNoSelection
	}
	return EditNotificationForm{Title: item.Title, Content: item.Content}, nil
}

func (n *Notifications) Update(ctx context.Context, id int64, form EditNotificationForm) error {
	if err := check(form, "Title and content are required."); err != nil {
		return err
	}
	if _, ok := n.List.Get(id); !ok {
		return ErrNoSelection
	}

	return n.List.Submit(ctx, func(ctx context.Context) error {
		return n.notifications.Update(ctx, id, service.UpdateNotificationRequest{Title: form.Title, Content: form.Content})
	}, fmt.Sprintf("Notification #%d updated.", id))
}

func (n *Notifications) RequestDelete(id int64) error {
	if _, ok := n.List.Get(id); !ok {
		return ErrNoSelection
	}

	n.List.RequestConfirm("Confirm Deletion",
		fmt.Sprintf("Are you sure you want to delete notification #%d?", id),
		func(ctx context.Context) error {
			if err := n.notifications.Delete(ctx, id); err != nil {
				return err
			}
			n.notifier.Success(fmt.Sprintf("Notification #%d deleted.", id))
			return nil
		})
	return nil
}
