package uploads

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPublicID(t *testing.T) {
	cases := []struct {
		url, resourceType, publicID string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1234567890/charity/events/abc123.jpg", "image", "charity/events/abc123"},
		{"https://res.cloudinary.com/demo/image/upload/banners/hero.png", "image", "banners/hero"},
		{"https://res.cloudinary.com/demo/video/upload/v99/charity/videos/clip.mp4", "video", "charity/videos/clip"},
	}
	for _, tc := range cases {
		rt, id, err := extractPublicID(tc.url)
		require.NoError(t, err, tc.url)
		assert.Equal(t, tc.resourceType, rt)
		assert.Equal(t, tc.publicID, id)
	}

	_, _, err := extractPublicID("https://res.cloudinary.com/demo")
	assert.Error(t, err)
}

func TestCloudinary_Owns(t *testing.T) {
	p := &Cloudinary{cloudName: "demo"}
	assert.True(t, p.Owns("https://res.cloudinary.com/demo/image/upload/a.jpg"))
	assert.False(t, p.Owns("https://res.cloudinary.com/someone-else/image/upload/a.jpg"))
	assert.False(t, p.Owns("https://res.cloudinary.com/"))
	assert.False(t, p.Owns("https://example.org/a.jpg"))
	assert.False(t, p.Owns("/placeholder.svg"))
}
