package v1

import (
	"time"

	"corp-social-backend/internal/domain"
	"corp-social-backend/pkg/locale"
)

// UserResponse is the public profile. The stored birthday year is
// meaningless, so only day and month are exposed.
type UserResponse struct {
	ID                   string    `json:"id"`
	Email                string    `json:"email"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	MiddleName           string    `json:"middle_name"`
	JobTitle             string    `json:"job_title"`
	PersonalEmail        string    `json:"personal_email"`
	CorporatePhoneNumber string    `json:"corporate_phone_number"`
	PersonalPhoneNumber  string    `json:"personal_phone_number"`
	BirthdayDay          *int      `json:"birthday_day"`
	BirthdayMonth        *int      `json:"birthday_month"`
	Bio                  string    `json:"bio"`
	Photo                *string   `json:"photo"`
	Department           string    `json:"department"`
	IsStaff              bool      `json:"is_staff"`
	IsActive             bool      `json:"is_active"`
	DateJoined           time.Time `json:"date_joined"`
}

func newUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:                   u.ID,
		Email:                u.Email,
		FirstName:            u.FirstName,
		LastName:             u.LastName,
		MiddleName:           u.MiddleName,
		JobTitle:             u.JobTitle,
		PersonalEmail:        u.PersonalEmail,
		CorporatePhoneNumber: u.CorporatePhoneNumber,
		PersonalPhoneNumber:  u.PersonalPhoneNumber,
		Bio:                  u.Bio,
		Photo:                u.Photo,
		Department:           u.Department,
		IsStaff:              u.IsStaff,
		IsActive:             u.IsActive,
		DateJoined:           u.DateJoined,
	}
	if u.BirthdayDate != nil {
		day, month := u.BirthdayDate.Day(), int(u.BirthdayDate.Month())
		resp.BirthdayDay = &day
		resp.BirthdayMonth = &month
	}
	return resp
}

func newUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, newUserResponse(&users[i]))
	}
	return out
}

// BirthdayResponse is one entry of the birthday list.
type BirthdayResponse struct {
	ID           string  `json:"id"`
	Photo        *string `json:"photo"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	BirthdayDate string  `json:"birthday_date" example:"05 January"`
}

func newBirthdayResponses(users []domain.User, tr *locale.Translator, lang string) []BirthdayResponse {
	out := make([]BirthdayResponse, 0, len(users))
	for _, u := range users {
		item := BirthdayResponse{
			ID:        u.ID,
			Photo:     u.Photo,
			FirstName: u.FirstName,
			LastName:  u.LastName,
		}
		if u.BirthdayDate != nil {
			item.BirthdayDate = tr.FormatDayMonth(lang, *u.BirthdayDate)
		}
		out = append(out, item)
	}
	return out
}

// AddressBookEntry is the contact card shown in the address book.
type AddressBookEntry struct {
	ID                   string  `json:"id"`
	Email                string  `json:"email"`
	FirstName            string  `json:"first_name"`
	MiddleName           string  `json:"middle_name"`
	LastName             string  `json:"last_name"`
	JobTitle             string  `json:"job_title"`
	CorporatePhoneNumber string  `json:"corporate_phone_number"`
	Photo                *string `json:"photo"`
	Department           string  `json:"department"`
}

func newAddressBookEntries(users []domain.User) []AddressBookEntry {
	out := make([]AddressBookEntry, 0, len(users))
	for _, u := range users {
		out = append(out, AddressBookEntry{
			ID:                   u.ID,
			Email:                u.Email,
			FirstName:            u.FirstName,
			MiddleName:           u.MiddleName,
			LastName:             u.LastName,
			JobTitle:             u.JobTitle,
			CorporatePhoneNumber: u.CorporatePhoneNumber,
			Photo:                u.Photo,
			Department:           u.Department,
		})
	}
	return out
}
