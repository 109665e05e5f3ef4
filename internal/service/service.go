package service

import (
	"adminconsole/internal/apiclient"
	"adminconsole/internal/config"
)

type Service struct {
	Auth         AuthService
	User         UserService
	Restaurant   RestaurantService
	Post         PostService
	Mood         MoodService
	Notification NotificationService
}

func NewService(client *apiclient.Client, urls config.Services) *Service {
	return &Service{
		Auth:         NewAuthService(client, urls.AuthURL),
		User:         NewUserService(client, urls.UserURL),
		Restaurant:   NewRestaurantService(client, urls.RestaurantURL),
		Post:         NewPostService(client, urls.PostURL),
		Mood:         NewMoodService(client, urls.MoodURL),
		Notification: NewNotificationService(client, urls.NotificationURL),
	}
}
