package service

import (
	"context"
	"fmt"
	"net/http"

	"adminconsole/internal/apiclient"
	"adminconsole/internal/models"
)

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) error
	Activate(ctx context.Context, id int64) error
	PartnerRequests(ctx context.Context) ([]models.User, error)
	ApprovePartner(ctx context.Context, id int64) error
	DeclinePartner(ctx context.Context, id int64) error
}

type UpdateUserRequest struct {
	Fullname string      `json:"fullname"`
	Role     models.Role `json:"role"`
	IsActive bool        `json:"isActive"`
}

type userService struct {
	client  *apiclient.Client
	baseURL string
}

func NewUserService(client *apiclient.Client, baseURL string) UserService {
	return &userService{
		client:  client,
		baseURL: baseURL,
	}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	payload, err := s.client.Call(ctx, "/users", apiclient.Options{BaseURL: s.baseURL})
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeItems[models.User](payload)
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := apiclient.Do[models.User](ctx, s.client, fmt.Sprintf("/users/%d", id), apiclient.Options{
		BaseURL: s.baseURL,
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) Update(ctx context.Context, id int64, req UpdateUserRequest) error {
	_, err := s.client.Call(ctx, fmt.Sprintf("/users/%d", id), apiclient.Options{
		Method:  http.MethodPut,
		Data:    req,
		BaseURL: s.baseURL,
	})
	return err
}

func (s *userService) Activate(ctx context.Context, id int64) error {
	return s.post(ctx, fmt.Sprintf("/users/%d/activate", id))
}

func (s *userService) PartnerRequests(ctx context.Context) ([]models.User, error) {
	payload, err := s.client.Call(ctx, "/users/partner-requests", apiclient.Options{BaseURL: s.baseURL})
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeItems[models.User](payload)
}

func (s *userService) ApprovePartner(ctx context.Context, id int64) error {
	return s.post(ctx, fmt.Sprintf("/users/%d/approve-partner", id))
}

func (s *userService) DeclinePartner(ctx context.Context, id int64) error {
	return s.post(ctx, fmt.Sprintf("/users/%d/decline-partner", id))
}

func (s *userService) post(ctx context.Context, endpoint string) error {
	_, err := s.client.Call(ctx, endpoint, apiclient.Options{
		Method:  http.MethodPost,
		BaseURL: s.baseURL,
	})
	return err
}
