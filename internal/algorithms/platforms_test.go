package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyPlatformURL(t *testing.T) {
	tests := []struct {
		name        string
		platform    string
		handle      string
		url         string
		valid       bool
		displayName string
		profileURL  string
		errMsg      string
	}{
		{
			name:        "instagram url",
			platform:    "instagram",
			url:         "https://www.instagram.com/ana.fit/",
			valid:       true,
			displayName: "ana.fit",
			profileURL:  "https://www.instagram.com/ana.fit/",
		},
		{
			name:        "handle wins over extracted name",
			platform:    "Instagram",
			handle:      "Ana",
			url:         "https://instagram.com/ana.fit",
			valid:       true,
			displayName: "Ana",
			profileURL:  "https://instagram.com/ana.fit",
		},
		{
			name:        "tiktok from handle",
			platform:    "tiktok",
			handle:      "@dancer",
			valid:       true,
			displayName: "@dancer",
			profileURL:  "https://www.tiktok.com/@dancer",
		},
		{
			name:        "youtube channel",
			platform:    "youtube",
			url:         "https://www.youtube.com/channel/UC_abc-123",
			valid:       true,
			displayName: "UC_abc-123",
			profileURL:  "https://www.youtube.com/channel/UC_abc-123",
		},
		{
			name:        "x domain counts as twitter",
			platform:    "twitter",
			url:         "https://x.com/brand",
			valid:       true,
			displayName: "brand",
			profileURL:  "https://x.com/brand",
		},
		{
			name:     "wrong domain",
			platform: "tiktok",
			url:      "https://instagram.com/ana",
			errMsg:   "Invalid tiktok URL format. Please provide a valid profile URL.",
		},
		{
			name:     "system page",
			platform: "instagram",
			url:      "https://instagram.com/explore",
			errMsg:   "This appears to be a system page, not a user profile",
		},
		{
			name:     "system page is case insensitive",
			platform: "twitter",
			url:      "https://twitter.com/Settings",
			errMsg:   "This appears to be a system page, not a user profile",
		},
		{
			name:     "nothing to check",
			platform: "instagram",
			errMsg:   "Please provide a valid profile URL or handle",
		},
		{
			name:        "unknown platform with absolute url",
			platform:    "mastodon",
			url:         "https://mastodon.social/@ana",
			valid:       true,
			displayName: "",
			profileURL:  "https://mastodon.social/@ana",
		},
		{
			name:     "unknown platform with relative url",
			platform: "mastodon",
			url:      "mastodon.social/@ana",
			errMsg:   "Invalid URL format",
		},
		{
			name:     "unknown platform handle only",
			platform: "mastodon",
			handle:   "ana",
			errMsg:   "Please provide a valid profile URL or handle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifyPlatformURL(tt.platform, tt.handle, tt.url)

			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.errMsg, got.Error)
			if tt.valid {
				assert.Equal(t, tt.displayName, got.DisplayName)
				assert.Equal(t, tt.profileURL, got.ProfileURL)
			}
		})
	}
}

func TestLookupPlatform(t *testing.T) {
	for _, name := range SupportedPlatforms() {
		_, ok := LookupPlatform(name)
		assert.True(t, ok, name)
	}
	_, ok := LookupPlatform("LinkedIn")
	assert.True(t, ok)
	_, ok = LookupPlatform("myspace")
	assert.False(t, ok)
}
