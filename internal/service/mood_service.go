package service

import (
	"context"
	"fmt"
	"net/http"

	"adminconsole/internal/apiclient"
	"adminconsole/internal/models"
)

type MoodService interface {
	List(ctx context.Context) ([]models.Mood, error)
	Create(ctx context.Context, req MoodRequest) (*models.Mood, error)
	Update(ctx context.Context, id int64, req MoodRequest) error
	Delete(ctx context.Context, id int64) error
}

type MoodRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type moodService struct {
	client  *apiclient.Client
	baseURL string
}

func NewMoodService(client *apiclient.Client, baseURL string) MoodService {
	return &moodService{
		client:  client,
		baseURL: baseURL,
	}
}

func (s *moodService) List(ctx context.Context) ([]models.Mood, error) {
	payload, err := s.client.Call(ctx, "/moods", apiclient.Options{BaseURL: s.baseURL})
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeItems[models.Mood](payload)
}

func (s *moodService) Create(ctx context.Context, req MoodRequest) (*models.Mood, error) {
	mood, err := apiclient.Do[models.Mood](ctx, s.client, "/moods", apiclient.Options{
		Method:  http.MethodPost,
		Data:    req,
		BaseURL: s.baseURL,
	})
	if err != nil {
		return nil, err
	}
	return &mood, nil
}

func (s *moodService) Update(ctx context.Context, id int64, req MoodRequest) error {
	_, err := s.client.Call(ctx, fmt.Sprintf("/moods/%d", id), apiclient.Options{
		Method:  http.MethodPut,
		Data:    req,
		BaseURL: s.baseURL,
	})
	return err
}

func (s *moodService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.Call(ctx, fmt.Sprintf("/moods/%d", id), apiclient.Options{
		Method:  http.MethodDelete,
		BaseURL: s.baseURL,
	})
	return err
}
