package service

import (
	"context"
	"fmt"
	"net/http"

	"adminconsole/internal/apiclient"
	"adminconsole/internal/models"
)

type NotificationService interface {
	List(ctx context.Context) ([]models.Notification, error)
	SendToUser(ctx context.Context, req SendNotificationRequest) error
	Broadcast(ctx context.Context, req BroadcastRequest) error
	Update(ctx context.Context, id int64, req UpdateNotificationRequest) error
	Delete(ctx context.Context, id int64) error
}

type SendNotificationRequest struct {
	UserID  int64  `json:"userId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type BroadcastRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateNotificationRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type notificationService struct {
	client  *apiclient.Client
	baseURL string
}

func NewNotificationService(client *apiclient.Client, baseURL string) NotificationService {
	return &notificationService{
		client:  client,
		baseURL: baseURL,
	}
}

func (s *notificationService) List(ctx context.Context) ([]models.Notification, error) {
	payload, err := s.client.Call(ctx, "/notifications", apiclient.Options{BaseURL: s.baseURL})
	if err != nil {
		return nil, err
	}
	return apiclient.DecodeItems[models.Notification](payload)
}

func (s *notificationService) SendToUser(ctx context.Context, req SendNotificationRequest) error {
	return s.send(ctx, http.MethodPost, "/notifications/send-to-user", req)
}

func (s *notificationService) Broadcast(ctx context.Context, req BroadcastRequest) error {
	return s.send(ctx, http.MethodPost, "/notifications/broadcast", req)
}

func (s *notificationService) Update(ctx context.Context, id int64, req UpdateNotificationRequest) error {
	return s.send(ctx, http.MethodPut, fmt.Sprintf("/notifications/%d", id), req)
}

func (s *notificationService) Delete(ctx context.Context, id int64) error {
	return s.send(ctx, http.MethodDelete, fmt.Sprintf("/notifications/%d", id), nil)
}

func (s *notificationService) send(ctx context.Context, method, endpoint string, data any) error {
	_, err := s.client.Call(ctx, endpoint, apiclient.Options{
		Method:  method,
		Data:    data,
		BaseURL: s.baseURL,
	})
	return err
}
