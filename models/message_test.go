package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", ""},
		{"short", "Hello there", "Hello there"},
		{"exactly at limit", strings.Repeat("a", PreviewLimit), strings.Repeat("a", PreviewLimit)},
		{"one over limit", strings.Repeat("a", PreviewLimit+1), strings.Repeat("a", PreviewLimit) + "..."},
		{"long", "I have been thinking about the analytical engine all week", "I have been thinking about the..."},
		{"multibyte runes counted as one", strings.Repeat("é", PreviewLimit+5), strings.Repeat("é", PreviewLimit) + "..."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Preview(tc.content))
		})
	}
}
