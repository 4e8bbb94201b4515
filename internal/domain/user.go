package domain

import (
	"context"
	"time"

	"corp-social-backend/pkg/calendar"
)

type User struct {
	ID                   string     `json:"id"` // token subject
	Email                string     `json:"email"`
	FirstName            string     `json:"first_name"`
	LastName             string     `json:"last_name"`
	MiddleName           string     `json:"middle_name"`
	JobTitle             string     `json:"job_title"`
	PersonalEmail        string     `json:"personal_email"`
	CorporatePhoneNumber string     `json:"corporate_phone_number"`
	PersonalPhoneNumber  string     `json:"personal_phone_number"`
	BirthdayDate         *time.Time `json:"birthday_date"` // only month and day are meaningful
	Bio                  string     `json:"bio"`
	Photo                *string    `json:"photo"`
	Department           string     `json:"department"`
	IsStaff              bool       `json:"is_staff"`
	IsActive             bool       `json:"is_active"`
	DateJoined           time.Time  `json:"date_joined"`
}

// UserShortInfo is the compact card shown next to posts.
type UserShortInfo struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	JobTitle   string `json:"job_title"`
	PostsCount int64  `json:"posts_count"`
}

// UserUpdate carries a partial profile edit. Nil fields are left unchanged.
type UserUpdate struct {
	FirstName            *string `validate:"omitempty,max=150,valid_name,no_emoji"`
	LastName             *string `validate:"omitempty,max=150,valid_name,no_emoji"`
	MiddleName           *string `validate:"omitempty,max=150,valid_name,no_emoji"`
	JobTitle             *string `validate:"omitempty,max=150,no_emoji"`
	PersonalEmail        *string `validate:"omitempty,email,max=254"`
	CorporatePhoneNumber *string `validate:"omitempty,valid_phone"`
	PersonalPhoneNumber  *string `validate:"omitempty,valid_phone"`
	Bio                  *string `validate:"omitempty,max=1000"`
	Department           *string `validate:"omitempty,max=150,no_emoji"`
	BirthdayDay          *int
	BirthdayMonth        *int
	// Photo is a base64 payload or an existing URL; ClearPhoto removes it.
	Photo      *string
	ClearPhoto bool
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	Fetch(ctx context.Context, limit, offset int) ([]User, int64, error)
	Update(ctx context.Context, user *User) error
	// FetchByBirthdays returns active users whose birthday falls on any of days.
	FetchByBirthdays(ctx context.Context, days []calendar.MonthDay) ([]User, error)
	SearchAddressBook(ctx context.Context, search string, limit, offset int) ([]User, int64, error)
	CountPosts(ctx context.Context, userID string) (int64, error)
}

type AuthUsecase interface {
	EnsureUserExists(ctx context.Context, user *User) (*User, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}

type UserUsecase interface {
	List(ctx context.Context, page Page) ([]User, int64, error)
	Get(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, actor Actor, id string, in UserUpdate) (*User, error)
	ShortInfo(ctx context.Context, id string) (*UserShortInfo, error)
	AddressBook(ctx context.Context, search string, page Page) ([]User, int64, error)
	// AddressBookAll is the unpaginated variant used for vCard export.
	AddressBookAll(ctx context.Context, search string) ([]User, error)
}
