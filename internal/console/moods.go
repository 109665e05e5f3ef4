package console

import (
	"context"
	"fmt"

	"adminconsole/internal/listing"
	"adminconsole/internal/models"
	"adminconsole/internal/service"
)

type Moods struct {
	List *listing.List[models.Mood]

	moods    service.MoodService
	notifier listing.Notifier
}

func NewMoods(deps Deps) *Moods {
	moods := deps.Services.Mood
	m := &Moods{
		moods:    moods,
		notifier: notifierOrNop(deps.Notifier),
	}

	m.List = listing.New(listing.Config[models.Mood]{
		Name:   "moods",
		Fetch:  moods.List,
		Key:    func(mood models.Mood) int64 { return mood.ID },
		Search: func(mood models.Mood) []string { return []string{mood.Name, mood.Description} },
		Columns: map[string]func(models.Mood) any{
			"id":        func(mood models.Mood) any { return mood.ID },
			"name":      func(mood models.Mood) any { return mood.Name },
			"createdAt": func(mood models.Mood) any { return mood.CreatedAt.Time },
		},
		DefaultSort: listing.Sorting{Key: "id", Direction: listing.Asc},
		Debounce:    deps.Debounce,
		Loader:      loaderOrNop(deps.Loader),
		Notifier:    m.notifier,
	})
	return m
}

func (m *Moods) Close() {
	m.List.Close()
}

func (m *Moods) Create(ctx context.Context, form MoodForm) error {
	if err := check(form, "Mood name is required."); err != nil {
		return err
	}

	return m.List.Submit(ctx, func(ctx context.Context) error {
		_, err := m.moods.Create(ctx, service.MoodRequest{Name: form.Name, Description: form.Description})
		return err
	}, fmt.Sprintf("Mood %q created.", form.Name))
}

func (m *Moods) Update(ctx context.Context, id int64, form MoodForm) error {
	if err := check(form, "Mood name is required."); err != nil {
		return err
	}
	if _, ok := m.List.Get(id); !ok {
		return ErrNoSelection
	}

	return m.List.Submit(ctx, func(ctx context.Context) error {
		return m.moods.Update(ctx, id, service.MoodRequest{Name: form.Name, Description: form.Description})
	}, fmt.Sprintf("Mood %q updated.", form.Name))
}

func (m *Moods) RequestDelete(id int64) error {
	mood, ok := m.List.Get(id)
	if !ok {
		return ErrNoSelection
	}

	m.List.RequestConfirm("Confirm Deletion",
		fmt.Sprintf("Are you sure you want to delete the mood %q?", mood.Name),
		func(ctx context.Context) error {
			if err := m.moods.Delete(ctx, id); err != nil {
				return err
			}
			m.notifier.Success(fmt.Sprintf("Mood %q deleted.", mood.Name))
			return nil
		})
	return nil
}
