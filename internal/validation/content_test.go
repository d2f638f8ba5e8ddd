package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain Text", "hello world", "hello world"},
		{"Simple Tag", "hello <b>world</b>", "hello world"},
		{"Script Tag", "x<script>alert(1)</script>y", "xalert(1)y"},
		{"Entities", "a &amp; b", "a & b"},
		{"Whitespace", "  padded  ", "padded"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.input))
		})
	}
}

func TestValidatePostTitle(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidatePostTitle("abc"))
	assert.Error(t, ValidatePostTitle("ab"))
	assert.Error(t, ValidatePostTitle(strings.Repeat("a", MaxTitleLen+1)))
}

func TestValidatePostContent(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidatePostContent(""))
	assert.NoError(t, ValidatePostContent("some content"))
	assert.Error(t, ValidatePostContent(strings.Repeat("a", MaxContentLen+1)))
}

func TestValidateCommentContent(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateCommentContent("nice"))
	assert.Error(t, ValidateCommentContent(""))
	assert.Error(t, ValidateCommentContent(strings.Repeat("a", MaxCommentLen+1)))
}

func TestValidateBio(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateBio(""))
	assert.Error(t, ValidateBio(strings.Repeat("a", MaxBioLen+1)))
}
