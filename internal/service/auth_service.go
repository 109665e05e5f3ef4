package service

import (
	"context"
	"fmt"
	"net/http"

	"adminconsole/internal/apiclient"
	"adminconsole/internal/models"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResponse, error)
	Logout(ctx context.Context) error
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	User        models.User `json:"user"`
}

type authService struct {
	client  *apiclient.Client
	baseURL string
}

func NewAuthService(client *apiclient.Client, baseURL string) AuthService {
	return &authService{
		client:  client,
		baseURL: baseURL,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	resp, err := apiclient.Do[LoginResponse](ctx, s.client, "/auth/login", apiclient.Options{
		Method:  http.MethodPost,
		Data:    LoginRequest{Email: email, Password: password},
		BaseURL: s.baseURL,
		NoAuth:  true,
	})
	if err != nil {
		return nil, err
	}

	if resp.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}
	resp.User.AccessToken = resp.AccessToken

	return &resp, nil
}

func (s *authService) Logout(ctx context.Context) error {
	_, err := s.client.Call(ctx, "/auth/logout", apiclient.Options{
		Method:  http.MethodPost,
		BaseURL: s.baseURL,
	})
	return err
}
