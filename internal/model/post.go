package model

import (
	"regexp"
	"strings"
	"time"
)

const (
	// SlugMaxLength caps generated slugs at the slug column size.
	SlugMaxLength = 200

	excerptLength = 200
)

// Post represents a blog post authored by a user.
type Post struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Content     string `json:"content" gorm:"type:text;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:200"`
	// No column default: gorm omits zero-valued fields that carry one on
	// insert, which would silently flip explicit false back to true. The
	// service resolves the default for absent input instead.
	IsPublished bool   `json:"is_published" gorm:"not null"`
	AuthorID    uint   `json:"author_id" gorm:"index;not null"`

	// CommentCount is populated by the repository via a subselect; it is not
	// a real column.
	CommentCount int64 `json:"comment_count" gorm:"->;-:migration"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Author   *User     `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// CanEdit reports whether the given user may modify this post.
func (p *Post) CanEdit(userID uint) bool {
	return p.AuthorID == userID
}

// Excerpt returns a shortened preview of the post content for list views.
// Truncation counts runes so multibyte content never yields invalid UTF-8.
func (p *Post) Excerpt() string {
	runes := []rune(p.Content)
	if len(runes) <= excerptLength {
		return p.Content
	}
	return string(runes[:excerptLength-3]) + "..."
}

var (
	slugStripRe    = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s-]`)
	slugCollapseRe = regexp.MustCompile(`[-\s]+`)
)

// MakeSlug derives a URL-safe slug from a post title: lowercased, punctuation
// stripped, whitespace and hyphen runs collapsed to a single hyphen, trimmed
// of leading/trailing hyphens and capped at SlugMaxLength runes. Letters and
// digits from any script are kept so distinct non-Latin titles stay distinct.
func MakeSlug(title string) string {
	slug := slugStripRe.ReplaceAllString(strings.ToLower(title), "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if runes := []rune(slug); len(runes) > SlugMaxLength {
		slug = strings.TrimRight(string(runes[:SlugMaxLength]), "-")
	}
	return slug
}

// PostDetail is the full serialized shape of a post.
type PostDetail struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Content      string       `json:"content"`
	IsPublished  bool         `json:"is_published"`
	AuthorID     uint         `json:"author_id"`
	Author       *UserProfile `json:"author,omitempty"`
	CommentCount int64        `json:"comment_count"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Detail builds the full serialized view of the post.
func (p *Post) Detail() PostDetail {
	d := PostDetail{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Content:      p.Content,
		IsPublished:  p.IsPublished,
		AuthorID:     p.AuthorID,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Author != nil {
		author := p.Author.Profile(false)
		d.Author = &author
	}
	return d
}

// PostSummary is the list-view shape of a post: an excerpt instead of the
// full content.
type PostSummary struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Slug         string       `json:"slug"`
	Excerpt      string       `json:"excerpt"`
	IsPublished  bool         `json:"is_published"`
	AuthorID     uint         `json:"author_id"`
	Author       *UserProfile `json:"author,omitempty"`
	CommentCount int64        `json:"comment_count"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Summary builds the list view of the post.
func (p *Post) Summary() PostSummary {
	s := PostSummary{
		ID:           p.ID,
		Title:        p.Title,
		Slug:         p.Slug,
		Excerpt:      p.Excerpt(),
		IsPublished:  p.IsPublished,
		AuthorID:     p.AuthorID,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Author != nil {
		author := p.Author.Profile(false)
		s.Author = &author
	}
	return s
}

// PostRef is the minimal post reference embedded in comment listings.
type PostRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// Ref builds the minimal reference view of the post.
func (p *Post) Ref() PostRef {
	return PostRef{ID: p.ID, Title: p.Title, Slug: p.Slug}
}
