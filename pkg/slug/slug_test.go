package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"punctuation stripped", "Hello, World!!!", "hello-world"},
		{"lowercased", "Go Concurrency Patterns", "go-concurrency-patterns"},
		{"whitespace runs collapse", "too   many    spaces", "too-many-spaces"},
		{"existing hyphens collapse", "already -- hyphenated", "already-hyphenated"},
		{"leading and trailing trimmed", "  - padded title - ", "padded-title"},
		{"digits kept", "Top 10 Tips for 2024", "top-10-tips-for-2024"},
		{"underscores kept", "snake_case_title", "snake_case_title"},
		{"only symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "hello-world", WithSuffix("hello-world", 0))
	assert.Equal(t, "hello-world-1", WithSuffix("hello-world", 1))
	assert.Equal(t, "hello-world-42", WithSuffix("hello-world", 42))
}
