package domain

import "time"

// Profile represents an authenticated student identity.
type Profile struct {
	ID         string    `json:"id"`
	FullName   string    `json:"full_name,omitempty"`
	University string    `json:"university,omitempty"`
	Major      string    `json:"major,omitempty"`
	Year       string    `json:"year,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
