package model

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestMakeSlug(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "punctuation stripped and spaces hyphenated",
			title:    "Hello, World! 2024",
			expected: "hello-world-2024",
		},
		{
			name:     "leading and trailing separators trimmed",
			title:    "  --- Already--Hyphenated ---  ",
			expected: "already-hyphenated",
		},
		{
			name:     "lowercased",
			title:    "Go Testing Tips",
			expected: "go-testing-tips",
		},
		{
			name:     "ampersand and apostrophes removed",
			title:    "Tips & Tricks: Don't Panic",
			expected: "tips-tricks-dont-panic",
		},
		{
			name:     "only punctuation collapses to empty",
			title:    "!!!",
			expected: "",
		},
		{
			name:     "underscores survive",
			title:    "snake_case title",
			expected: "snake_case-title",
		},
		{
			name:     "accented letters kept",
			title:    "Café Déjà Vu",
			expected: "café-déjà-vu",
		},
		{
			name:     "non-latin script kept",
			title:    "Привет мир",
			expected: "привет-мир",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MakeSlug(tt.title))
		})
	}
}

func TestMakeSlugLengthCap(t *testing.T) {
	long := strings.Repeat("word ", 60) // 300 chars before slugging
	slug := MakeSlug(long)

	assert.LessOrEqual(t, len(slug), SlugMaxLength)
	assert.False(t, strings.HasPrefix(slug, "-"))
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestPostExcerpt(t *testing.T) {
	short := Post{Content: "brief"}
	assert.Equal(t, "brief", short.Excerpt())

	exact := Post{Content: strings.Repeat("a", 200)}
	assert.Equal(t, exact.Content, exact.Excerpt())

	long := Post{Content: strings.Repeat("b", 201)}
	excerpt := long.Excerpt()
	assert.Len(t, excerpt, 200)
	assert.True(t, strings.HasSuffix(excerpt, "..."))
}

func TestPostExcerptMultibyte(t *testing.T) {
	post := Post{Content: strings.Repeat("é", 201)}
	excerpt := post.Excerpt()

	assert.True(t, utf8.ValidString(excerpt))
	assert.Equal(t, 200, utf8.RuneCountInString(excerpt))
	assert.True(t, strings.HasSuffix(excerpt, "..."))
}

func TestPostCanEdit(t *testing.T) {
	post := Post{AuthorID: 7}

	assert.True(t, post.CanEdit(7))
	assert.False(t, post.CanEdit(8))
}
