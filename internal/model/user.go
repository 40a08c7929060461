package model

import (
	"time"
)

// User represents a registered author account.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:80;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string    `json:"-" gorm:"size:128;not null"` // Never expose in JSON
	FirstName    *string   `json:"first_name,omitempty" gorm:"size:50"`
	LastName     *string   `json:"last_name,omitempty" gorm:"size:50"`
	// No column default, same insert-omission hazard as Post.IsPublished;
	// Register sets this explicitly.
	IsActive     bool      `json:"is_active" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Posts    []Post    `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// FullName returns the display name, falling back to the username when no
// name parts are set.
func (u *User) FullName() string {
	switch {
	case u.FirstName != nil && u.LastName != nil:
		return *u.FirstName + " " + *u.LastName
	case u.FirstName != nil:
		return *u.FirstName
	case u.LastName != nil:
		return *u.LastName
	}
	return u.Username
}

// UserProfile is the serialized shape of a user. Email is only present on
// self-views (the /auth endpoints); authors embedded in posts and comments
// omit it.
type UserProfile struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	FullName  string    `json:"full_name"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile builds the serialized view of the user.
func (u *User) Profile(includeEmail bool) UserProfile {
	p := UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	if includeEmail {
		p.Email = u.Email
	}
	return p
}
