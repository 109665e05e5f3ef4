package console

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"adminconsole/internal/models"
)

var validate = validator.New()

// ErrNoSelection is returned when an action names a record the list does not hold.
var ErrNoSelection = errors.New("no such record in the current list")

// ValidationError blocks a form submission before any remote call.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// check validates form and reports failures with message.
func check(form any, message string) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Message: message}
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Message: message, Fields: fields}
}

type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (f LoginForm) Validate() error {
	return check(f, "Email and password are required.")
}

type UserForm struct {
	Fullname string      `json:"fullname" validate:"required"`
	Role     models.Role `json:"role" validate:"required,oneof=Admin User Partner"`
	IsActive bool        `json:"isActive"`
}

type RestaurantForm struct {
	Name        string  `json:"name" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Description string  `json:"description"`
	AvgPrice    float64 `json:"avgPrice" validate:"gte=0"`
}

type PostForm struct {
	Title        string `json:"title" validate:"required"`
	Content      string `json:"content" validate:"required"`
	ImageURL     string `json:"imageUrl" validate:"omitempty,url"`
	RestaurantID int64  `json:"restaurantId" validate:"gte=0"`
}

type DeclineForm struct {
	Reason string `json:"reason" validate:"required"`
}

func (f DeclineForm) normalized() DeclineForm {
	return DeclineForm{Reason: strings.TrimSpace(f.Reason)}
}

type MoodForm struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type SendNotificationForm struct {
	UserID  int64  `json:"userId" validate:"required,gt=0"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type BroadcastForm struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type EditNotificationForm struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}
