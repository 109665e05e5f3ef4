package models

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleUser    Role = "User"
	RolePartner Role = "Partner"
)

type UserProfile struct {
	ID          int64  `json:"id,omitempty"`
	UserID      int64  `json:"userId,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

type User struct {
	ID          int64        `json:"id"`
	Email       string       `json:"email"`
	Fullname    string       `json:"fullname"`
	Role        Role         `json:"role"`
	IsActive    bool         `json:"isActive"`
	CreatedAt   Timestamp    `json:"createdAt"`
	AccessToken string       `json:"accessToken,omitempty"`
	LoginMethod string       `json:"loginMethod,omitempty"`
	Profile     *UserProfile `json:"profile,omitempty"`
}

type RestaurantStatus string

const (
	RestaurantPending  RestaurantStatus = "Pending"
	RestaurantApproved RestaurantStatus = "Approved"
	RestaurantDeclined RestaurantStatus = "Declined"
)

func (s RestaurantStatus) Valid() bool {
	switch s {
	case RestaurantPending, RestaurantApproved, RestaurantDeclined:
		return true
	}
	return false
}

type RestaurantImage struct {
	ID           string    `json:"id"`
	RestaurantID int64     `json:"restaurantId"`
	ImageURL     string    `json:"imageUrl"`
	CreatedAt    Timestamp `json:"createdAt"`
}

type RestaurantReview struct {
	ID                  int64      `json:"id"`
	UserID              int64      `json:"userId"`
	RestaurantID        int64      `json:"restaurantId"`
	Rating              float64    `json:"rating"`
	Comment             string     `json:"comment"`
	CreatedAt           Timestamp  `json:"createdAt"`
	User                *User      `json:"user,omitempty"`
	PartnerReplyComment *string    `json:"partnerReplyComment"`
	PartnerReplyAt      *Timestamp `json:"partnerReplyAt"`
}

type Restaurant struct {
	ID            int64              `json:"id"`
	PartnerID     int64              `json:"partnerId"`
	Name          string             `json:"name"`
	Address       string             `json:"address"`
	Longitude     float64            `json:"longitude"`
	Latitude      float64            `json:"latitude"`
	Description   string             `json:"description"`
	AvgPrice      float64            `json:"avgPrice"`
	Rating        float64            `json:"rating"`
	Status        RestaurantStatus   `json:"status"`
	CreatedAt     Timestamp          `json:"createdAt"`
	Images        []RestaurantImage  `json:"images"`
	Reviews       []RestaurantReview `json:"reviews"`
	FavoriteCount int                `json:"favoriteCount"`
	Partner       *User              `json:"partner,omitempty"`
}

type PostStatus string

const (
	PostPending  PostStatus = "PENDING"
	PostApproved PostStatus = "APPROVED"
	PostDeclined PostStatus = "DECLINED"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostPending, PostApproved, PostDeclined:
		return true
	}
	return false
}

type PostRestaurant struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Post struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Author       string          `json:"author"`
	Status       PostStatus      `json:"status"`
	CreatedAt    Timestamp       `json:"createdAt"`
	PartnerID    int64           `json:"partnerId,omitempty"`
	RestaurantID int64           `json:"restaurantId,omitempty"`
	Content      string          `json:"content,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Moods        []Mood          `json:"moods,omitempty"`
	Restaurant   *PostRestaurant `json:"restaurant,omitempty"`
	Partner      *User           `json:"partner,omitempty"`
}

type Mood struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   Timestamp `json:"createdAt"`
}

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt Timestamp `json:"createdAt"`
}
