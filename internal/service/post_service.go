package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"adminconsole/internal/apiclient"
	"adminconsole/internal/models"
)

type PostService interface {
	List(ctx context.Context, params PostListParams) (*apiclient.Paged[models.Post], error)
	Get(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, id int64, req UpdatePostRequest) error
	Approve(ctx context.Context, id int64) error
	Decline(ctx context.Context, id int64, reason string) error
	Remove(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type PostListParams struct {
	Page      int
	PageSize  int
	PartnerID int64
	Status    models.PostStatus
}

type UpdatePostRequest struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	ImageURL     string `json:"imageUrl"`
	RestaurantID int64  `json:"restaurantId"`
}

type postService struct {
	client  *apiclient.Client
	baseURL string
}

func NewPostService(client *apiclient.Client, baseURL string) PostService {
	return &postService{
		client:  client,
		baseURL: baseURL,
	}
}

func (s *postService) List(ctx context.Context, params PostListParams) (*apiclient.Paged[models.Post], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("pageSize", strconv.Itoa(params.PageSize))
	if params.PartnerID != 0 {
		query.Set("partnerId", strconv.FormatInt(params.PartnerID, 10))
	}
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}

	page, err := apiclient.Do[apiclient.Paged[models.Post]](ctx, s.client, "/posts?"+query.Encode(), apiclient.Options{
		BaseURL: s.baseURL,
	})
	if err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []models.Post{}
	}
	return &page, nil
}

func (s *postService) Get(ctx context.Context, id int64) (*models.Post, error) {
	post, err := apiclient.Do[models.Post](ctx, s.client, fmt.Sprintf("/posts/%d", id), apiclient.Options{
		BaseURL: s.baseURL,
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *postService) Update(ctx context.Context, id int64, req UpdatePostRequest) error {
	_, err := s.client.Call(ctx, fmt.Sprintf("/posts/%d", id), apiclient.Options{
		Method:  http.MethodPut,
		Data:    req,
		BaseURL: s.baseURL,
	})
	return err
}

func (s *postService) Approve(ctx context.Context, id int64) error {
	return s.transition(ctx, id, "approve", nil)
}

func (s *postService) Decline(ctx context.Context, id int64, reason string) error {
	return s.transition(ctx, id, "decline", DeclineRequest{Reason: reason})
}

func (s *postService) Remove(ctx context.Context, id int64) error {
	return s.transition(ctx, id, "remove", nil)
}

func (s *postService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.Call(ctx, fmt.Sprintf("/posts/%d", id), apiclient.Options{
		Method:  http.MethodDelete,
		BaseURL: s.baseURL,
	})
	return err
}

func (s *postService) transition(ctx context.Context, id int64, verb string, data any) error {
	_, err := s.client.Call(ctx, fmt.Sprintf("/posts/%d/%s", id, verb), apiclient.Options{
		Method:  http.MethodPost,
		Data:    data,
		BaseURL: s.baseURL,
	})
	return err
}
