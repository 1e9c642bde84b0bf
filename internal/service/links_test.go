package service_test

import (
	"testing"

	"github.com/sixlab/storefront/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestExtractLinks(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no links",
			text: "just a plain brief",
			want: nil,
		},
		{
			name: "links in order of appearance",
			text: "see https://a.example/one and http://b.example/two please",
			want: []string{"https://a.example/one", "http://b.example/two"},
		},
		{
			name: "quotes and angle brackets end a link",
			text: `ref: <https://a.example/path> and "https://b.example/x"`,
			want: []string{"https://a.example/path", "https://b.example/x"},
		},
		{
			name: "capped at max",
			text: "https://e.x/1 https://e.x/2 https://e.x/3 https://e.x/4 https://e.x/5 https://e.x/6",
			want: []string{"https://e.x/1", "https://e.x/2", "https://e.x/3", "https://e.x/4", "https://e.x/5"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, service.ExtractLinks(tc.text, 5))
		})
	}
}

func TestIsImageURL(t *testing.T) {
	assert.True(t, service.IsImageURL("https://cdn.example/pic.PNG"))
	assert.True(t, service.IsImageURL("https://cdn.example/pic.jpg?width=200"))
	assert.True(t, service.IsImageURL("https://cdn.example/pic.webp#frag"))
	assert.False(t, service.IsImageURL("https://cdn.example/doc.pdf"))
	assert.False(t, service.IsImageURL("https://cdn.example/pic.jpg.exe"))
}
