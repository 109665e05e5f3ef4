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

type RestaurantService interface {
	List(ctx context.Context, params RestaurantListParams) (*apiclient.Paged[models.Restaurant], error)
	Approve(ctx context.Context, id int64) error
	Decline(ctx context.Context, id int64, reason string) error
	Update(ctx context.Context, id int64, req UpdateRestaurantRequest) error
	Delete(ctx context.Context, id int64) error
}

type RestaurantListParams struct {
	Page     int
	PageSize int
	Status   models.RestaurantStatus
}

type UpdateRestaurantRequest struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Description string  `json:"description"`
	AvgPrice    float64 `json:"avgPrice"`
}

type DeclineRequest struct {
	Reason string `json:"reason"`
}

type restaurantService struct {
	client  *apiclient.Client
	baseURL string
}

func NewRestaurantService(client *apiclient.Client, baseURL string) RestaurantService {
	return &restaurantService{
		client:  client,
		baseURL: baseURL,
	}
}

func (s *restaurantService) List(ctx context.Context, params RestaurantListParams) (*apiclient.Paged[models.Restaurant], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("pageSize", strconv.Itoa(params.PageSize))
	if params.Status != "" {
		query.Set("status", string(params.Status))
	}

	page, err := apiclient.Do[apiclient.Paged[models.Restaurant]](ctx, s.client, "/restaurants?"+query.Encode(), apiclient.Options{
		BaseURL: s.baseURL,
	})
	if err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []models.Restaurant{}
	}
	return &page, nil
}

func (s *restaurantService) Approve(ctx context.Context, id int64) error {
	_, err := s.client.Call(ctx, fmt.Sprintf("/restaurants/%d/approve", id), apiclient.Options{
		Method:  http.MethodPost,
		BaseURL: s.baseURL,
	})
	return err
}

func (s *restaurantService) Decline(ctx context.Context, id int64, reason string) error {
	_, err := s.client.Call(ctx, fmt.Sprintf("/restaurants/%d/decline", id), apiclient.Options{
		Method:  http.MethodPost,
		Data:    DeclineRequest{Reason: reason},
		BaseURL: s.baseURL,
	})
	return err
}

func (s *restaurantService) Update(ctx context.Context, id int64, req UpdateRestaurantRequest) error {
	_, err := s.client.Call(ctx, fmt.Sprintf("/restaurants/%d", id), apiclient.Options{
		Method:  http.MethodPut,
		Data:    req,
		BaseURL: s.baseURL,
	})
	return err
}

func (s *restaurantService) Delete(ctx context.Context, id int64) error {
	_, err := s.client.Call(ctx, fmt.Sprintf("/restaurants/%d", id), apiclient.Options{
		Method:  http.MethodDelete,
		BaseURL: s.baseURL,
	})
	return err
}
