package algorithms

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// PlatformConfig describes how profile URLs look on one social platform.
type PlatformConfig struct {
	Pattern  *regexp.Regexp
	BuildURL func(handle string) string
}

// ExtractHandle returns the username captured from rawURL.
func (c PlatformConfig) ExtractHandle(rawURL string) (string, bool) {
	m := c.Pattern.FindStringSubmatch(rawURL)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

var platformConfigs = map[string]PlatformConfig{
	"instagram": {
		Pattern:  regexp.MustCompile(`(?:instagram\.com|instagr\.am)/([a-zA-Z0-9_.]+)`),
		BuildURL: func(h string) string { return "https://www.instagram.com/" + h + "/" },
	},
	"tiktok": {
		Pattern:  regexp.MustCompile(`tiktok\.com/@([a-zA-Z0-9_.]+)`),
		BuildURL: func(h string) string { return "https://www.tiktok.com/@" + stripAt(h) },
	},
	"youtube": {
		Pattern:  regexp.MustCompile(`youtube\.com/(?:@|channel/|c/|user/)([a-zA-Z0-9_-]+)`),
		BuildURL: func(h string) string { return "https://www.youtube.com/@" + stripAt(h) },
	},
	"twitter": {
		Pattern:  regexp.MustCompile(`(?:twitter\.com|x\.com)/([a-zA-Z0-9_]+)`),
		BuildURL: func(h string) string { return "https://x.com/" + stripAt(h) },
	},
	"linkedin": {
		Pattern:  regexp.MustCompile(`linkedin\.com/in/([a-zA-Z0-9_-]+)`),
		BuildURL: func(h string) string { return "https://www.linkedin.com/in/" + h },
	},
	"facebook": {
		Pattern:  regexp.MustCompile(`facebook\.com/([a-zA-Z0-9_.]+)`),
		BuildURL: func(h string) string { return "https://www.facebook.com/" + h },
	},
	"twitch": {
		Pattern:  regexp.MustCompile(`twitch\.tv/([a-zA-Z0-9_]+)`),
		BuildURL: func(h string) string { return "https://www.twitch.tv/" + h },
	},
	"pinterest": {
		Pattern:  regexp.MustCompile(`pinterest\.com/([a-zA-Z0-9_]+)`),
		BuildURL: func(h string) string { return "https://www.pinterest.com/" + h },
	},
}

// Reserved path segments that are pages, not profiles.
var systemPagePattern = regexp.MustCompile(`(?i)^(login|signin|signup|register|admin|settings|explore|reels|stories|about|help|support|privacy|terms)$`)

const (
	msgInvalidURLFormat   = "Invalid URL format"
	msgCannotExtract      = "Could not extract username from URL"
	msgSystemPage         = "This appears to be a system page, not a user profile"
	msgProvideURLOrHandle = "Please provide a valid profile URL or handle"
)

// LookupPlatform returns the config for a platform name, case-insensitively.
func LookupPlatform(platformName string) (PlatformConfig, bool) {
	cfg, ok := platformConfigs[strings.ToLower(platformName)]
	return cfg, ok
}

func SupportedPlatforms() []string {
	return []string{"instagram", "tiktok", "youtube", "twitter", "linkedin", "facebook", "twitch", "pinterest"}
}

// VerificationResult is the outcome of a format check.
type VerificationResult struct {
	Valid bool
	// DisplayName is the supplied handle, or the one found in the URL.
	DisplayName string
	// ProfileURL is the URL that was checked.
	ProfileURL string
	Error      string
}

// VerifyPlatformURL checks that url (or a URL built from handle) is a
// plausible profile URL for platformName. It never touches the network.
func VerifyPlatformURL(platformName, handle, rawURL string) VerificationResult {
	key := strings.ToLower(platformName)

	if rawURL != "" {
		extracted, errMsg := validateURLFormat(rawURL, key)
		if errMsg != "" {
			return VerificationResult{Error: errMsg}
		}
		return VerificationResult{Valid: true, DisplayName: displayName(handle, extracted), ProfileURL: rawURL}
	}

	cfg, ok := platformConfigs[key]
	if ok && handle != "" {
		profileURL := cfg.BuildURL(stripAt(handle))
		extracted, errMsg := validateURLFormat(profileURL, key)
		if errMsg != "" {
			return VerificationResult{Error: errMsg}
		}
		return VerificationResult{Valid: true, DisplayName: displayName(handle, extracted), ProfileURL: profileURL}
	}

	return VerificationResult{Error: msgProvideURLOrHandle}
}

func validateURLFormat(rawURL, key string) (string, string) {
	cfg, ok := platformConfigs[key]
	if !ok {
		u, err := url.Parse(rawURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "", msgInvalidURLFormat
		}
		return "", ""
	}

	if !cfg.Pattern.MatchString(rawURL) {
		return "", fmt.Sprintf("Invalid %s URL format. Please provide a valid profile URL.", key)
	}

	extracted, ok := cfg.ExtractHandle(rawURL)
	if !ok {
		return "", msgCannotExtract
	}

	if systemPagePattern.MatchString(extracted) {
		return "", msgSystemPage
	}
	return extracted, ""
}

func displayName(handle, extracted string) string {
	if handle != "" {
		return handle
	}
	return extracted
}

// stripAt removes the first '@' from a handle.
func stripAt(h string) string {
	return strings.Replace(h, "@", "", 1)
}
