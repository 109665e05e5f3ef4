package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"adminconsole/internal/listing"
	"adminconsole/internal/logger"
	"adminconsole/internal/models"
	"adminconsole/internal/service"
	"adminconsole/internal/storage"
)

// ErrStorageDisabled is returned by uploads when no object store is configured.
var ErrStorageDisabled = errors.New("image storage is not configured")

type Posts struct {
	List *listing.List[models.Post]

	posts    service.PostService
	users    service.UserService
	storage  storage.Storage
	partners partnerNotifier
	loader   listing.Loader
	notifier listing.Notifier
	pageSize int
}

func NewPosts(deps Deps) *Posts {
	p := &Posts{
		posts:    deps.Services.Post,
		users:    deps.Services.User,
		storage:  deps.Storage,
		partners: partnerNotifier{notifications: deps.Services.Notification},
		loader:   loaderOrNop(deps.Loader),
		notifier: notifierOrNop(deps.Notifier),
		pageSize: deps.MasterPageSize,
	}

	p.List = listing.New(listing.Config[models.Post]{
		Name:             "posts",
		Fetch:            p.fetch,
		Key:              func(post models.Post) int64 { return post.ID },
		Tab:              func(post models.Post) string { return string(post.Status) },
		ValidTab:         func(tab string) bool { return models.PostStatus(tab).Valid() },
		DefaultTab:       string(models.PostPending),
		ClearSearchOnTab: true,
		Search:           func(post models.Post) []string { return []string{post.Title, post.Author} },
		Columns: map[string]func(models.Post) any{
			"id":        func(post models.Post) any { return post.ID },
			"title":     func(post models.Post) any { return post.Title },
			"author":    func(post models.Post) any { return post.Author },
			"createdAt": func(post models.Post) any { return post.CreatedAt.Time },
		},
		DefaultSort: listing.Sorting{Key: "createdAt", Direction: listing.Desc},
		Debounce:    deps.Debounce,
		Loader:      p.loader,
		Notifier:    p.notifier,
	})
	return p
}

func (p *Posts) Close() {
	p.List.Close()
}

func (p *Posts) fetch(ctx context.Context) ([]models.Post, error) {
	var (
		items []models.Post
		users []models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := p.posts.List(gctx, service.PostListParams{Page: 1, PageSize: p.pageSize})
		if err != nil {
			return err
		}
		items = res.Items
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = p.users.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	partners := partnerIndex(users)
	out := make([]models.Post, len(items))
	for i, post := range items {
		if post.Partner == nil {
			if partner, ok := partners[post.PartnerID]; ok {
				post.Partner = &partner
			}
		}
		out[i] = post
	}
	return out, nil
}

func (p *Posts) Detail(ctx context.Context, id int64) (*models.Post, error) {
	p.loader.Show()
	defer p.loader.Hide()

	post, err := p.posts.Get(ctx, id)
	if err != nil {
		reportDetailError(p.notifier, "post", err)
		return nil, err
	}
	return post, nil
}

func (p *Posts) RequestApprove(id int64) error {
	post, ok := p.List.Get(id)
	if !ok {
		return ErrNoSelection
	}

	p.List.RequestConfirm("Confirm Approval",
		fmt.Sprintf("Are you sure you want to approve %q? A notification will be sent to the partner.", post.Title),
		func(ctx context.Context) error {
			if err := p.posts.Approve(ctx, id); err != nil {
				return err
			}
			p.notifier.Success(fmt.Sprintf("Post %q has been approved.", post.Title))
			p.partners.notify(ctx, post.PartnerID, "Post Approved",
				fmt.Sprintf("Your post %q has been approved and is now visible.", post.Title))
			return nil
		})
	return nil
}

func (p *Posts) Decline(ctx context.Context, id int64, form DeclineForm) error {
	form = form.normalized()
	if err := check(form, "A reason for declining is required."); err != nil {
		return err
	}
	post, ok := p.List.Get(id)
	if !ok {
		return ErrNoSelection
	}

	return p.List.Submit(ctx, func(ctx context.Context) error {
		if err := p.posts.Decline(ctx, id, form.Reason); err != nil {
			return err
		}
		p.partners.notify(ctx, post.PartnerID, "Post Declined",
			fmt.Sprintf("Regarding your post %q, we were unable to approve it at this time. Reason: %s", post.Title, form.Reason))
		return nil
	}, fmt.Sprintf("Post %q has been declined.", post.Title))
}

// RequestRemove takes down a post for inappropriate content.
func (p *Posts) RequestRemove(id int64) error {
	post, ok := p.List.Get(id)
	if !ok {
		return ErrNoSelection
	}

	p.List.RequestConfirm("Confirm Removal",
		fmt.Sprintf("Are you sure you want to remove %q for inappropriate content? The partner will be notified.", post.Title),
		func(ctx context.Context) error {
			if err := p.posts.Remove(ctx, id); err != nil {
				return err
			}
			p.notifier.Success(fmt.Sprintf("Post %q has been removed.", post.Title))
			p.partners.notify(ctx, post.PartnerID, "Post Removed",
				fmt.Sprintf("Your post %q has been removed for violating our content guidelines.", post.Title))
			return nil
		})
	return nil
}

func (p *Posts) RequestDelete(id int64) error {
	post, ok := p.List.Get(id)
	if !ok {
		return ErrNoSelection
	}

	p.List.RequestConfirm("Confirm Deletion",
		fmt.Sprintf("Are you sure you want to permanently delete %q? This action cannot be undone.", post.Title),
		func(ctx context.Context) error {
			if err := p.posts.Delete(ctx, id); err != nil {
				return err
			}
			p.notifier.Success(fmt.Sprintf("Post %q has been permanently deleted.", post.Title))
			return nil
		})
	return nil
}

func (p *Posts) EditForm(id int64) (PostForm, error) {
	post, ok := p.List.Get(id)
	if !ok {
		return PostForm{}, ErrNoSelection
	}
	return PostForm{
		Title:        post.Title,
		Content:      post.Content,
		ImageURL:     post.ImageURL,
		RestaurantID: post.RestaurantID,
	}, nil
}

func (p *Posts) Update(ctx context.Context, id int64, form PostForm) error {
	if err := check(form, "Title and content are required."); err != nil {
		return err
	}

	return p.List.Submit(ctx, func(ctx context.Context) error {
		return p.posts.Update(ctx, id, updateRequest(form))
	}, fmt.Sprintf("Post %q updated successfully.", form.Title))
}

// UploadImage stores a new image and points the post at it. If the post
// update fails the uploaded object is removed again.
func (p *Posts) UploadImage(ctx context.Context, id int64, fileName string, file io.Reader, size int64) (string, error) {
	if p.storage == nil {
		return "", ErrStorageDisabled
	}
	form, err := p.EditForm(id)
	if err != nil {
		return "", err
	}

	p.loader.Show()
	objectName, url, err := p.storage.UploadImage(ctx, id, fileName, file, size)
	p.loader.Hide()
	if err != nil {
		return "", err
	}

	form.ImageURL = url
	err = p.List.Submit(ctx, func(ctx context.Context) error {
		return p.posts.Update(ctx, id, updateRequest(form))
	}, fmt.Sprintf("Image for post %q updated.", form.Title))
	if err != nil {
		if delErr := p.storage.DeleteImage(context.WithoutCancel(ctx), objectName); delErr != nil {
			logger.Zlog.Warn("orphaned post image",
				zap.Int64("post_id", id),
				zap.String("object", objectName),
				zap.Error(delErr))
		}
		return "", err
	}
	return url, nil
}

func updateRequest(form PostForm) service.UpdatePostRequest {
	return service.UpdatePostRequest{
		Title:        form.Title,
		Content:      form.Content,
		ImageURL:     form.ImageURL,
		RestaurantID: form.RestaurantID,
	}
}
