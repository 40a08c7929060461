package model

import (
	"time"
)

// Comment represents a comment left by a user on a post.
type Comment struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:100;not null"`
	Content  string `json:"content" gorm:"type:text;not null"`
	PostID   uint   `json:"post_id" gorm:"index;not null"`
	AuthorID uint   `json:"author_id" gorm:"index;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Post   *Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Author *User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// CanEdit reports whether the given user may modify this comment.
func (c *Comment) CanEdit(userID uint) bool {
	return c.AuthorID == userID
}

// CommentView is the serialized shape of a comment.
type CommentView struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	Content   string       `json:"content"`
	PostID    uint         `json:"post_id"`
	AuthorID  uint         `json:"author_id"`
	Author    *UserProfile `json:"author,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// View builds the serialized view of the comment.
func (c *Comment) View() CommentView {
	v := CommentView{
		ID:        c.ID,
		Name:      c.Name,
		Content:   c.Content,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Author != nil {
		author := c.Author.Profile(false)
		v.Author = &author
	}
	return v
}
