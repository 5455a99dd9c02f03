package domain

import "time"

// User is the full account record as persisted in the record store.
// PasswordHash is an argon2id digest and must never leave the store layer.
type User struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	PasswordHash  string         `json:"password_hash"`
	CreatedAt     time.Time      `json:"created_at"`
	Bookings      []Booking      `json:"bookings"`
	Quotes        []Quote        `json:"quotes"`
	Notifications []Notification `json:"notifications"`
}

// Profile is the credential-free view handed to API consumers.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

// UserPatch carries the fields UpdateUser may merge. Nil means "leave as is".
type UserPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// Session is the single active login record. At most one exists at a time;
// logging in overwrites it and it never expires on its own.
type Session struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	LoginTime time.Time `json:"login_time"`
}
