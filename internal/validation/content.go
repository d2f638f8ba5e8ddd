package validation

import (
	"fmt"
	"html"
	"strings"
)

// Free-text length bounds, enforced after HTML stripping.
const (
	MinTitleLen    = 3
	MaxTitleLen    = 255
	MaxContentLen  = 10000
	MaxCommentLen  = 1000
	MaxBioLen      = 500
	MaxUsernameLen = 30
)

// StripHTML removes markup from free-text input before persistence. Tag
// contents are kept, the tags themselves are dropped, and entities are
// decoded so stored text is plain.
func StripHTML(s string) string {
	if !strings.ContainsRune(s, '<') && !strings.ContainsRune(s, '&') {
		return strings.TrimSpace(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(html.UnescapeString(b.String()))
}

// ValidatePostTitle checks the sanitized post title bounds.
func ValidatePostTitle(title string) error {
	if len(title) < MinTitleLen {
		return fmt.Errorf("title must be at least %d characters long", MinTitleLen)
	}
	if len(title) > MaxTitleLen {
		return fmt.Errorf("title must not exceed %d characters", MaxTitleLen)
	}
	return nil
}

// ValidatePostContent checks the sanitized post body bounds. Content is optional.
func ValidatePostContent(content string) error {
	if len(content) > MaxContentLen {
		return fmt.Errorf("content must not exceed %d characters", MaxContentLen)
	}
	return nil
}

// ValidateCommentContent checks the sanitized comment bounds.
func ValidateCommentContent(content string) error {
	if content == "" {
		return fmt.Errorf("content is required")
	}
	if len(content) > MaxCommentLen {
		return fmt.Errorf("comment must not exceed %d characters", MaxCommentLen)
	}
	return nil
}

// ValidateBio checks the sanitized profile bio bounds.
func ValidateBio(bio string) error {
	if len(bio) > MaxBioLen {
		return fmt.Errorf("bio must not exceed %d characters", MaxBioLen)
	}
	return nil
}
