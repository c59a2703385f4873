package repurpose

import "strings"

// Platform identifies a social network a post can be scraped from.
type Platform string

// Supported platforms.
const (
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
	PlatformReddit   Platform = "reddit"
)

// Platforms lists the supported platforms in routing priority order.
var Platforms = []Platform{PlatformTwitter, PlatformLinkedIn, PlatformReddit}

// platformDomains maps each platform to the URL substrings that select it.
var platformDomains = map[Platform][]string{
	PlatformTwitter:  {"twitter.com", "x.com"},
	PlatformLinkedIn: {"linkedin.com"},
	PlatformReddit:   {"reddit.com"},
}

// DetectPlatform selects the platform for a post URL.
//
// Matching is a case-sensitive substring check on the raw URL, evaluated in
// the order of Platforms; the first match wins. Returns EUNSUPPORTED when no
// known domain appears in the URL.
func DetectPlatform(url string) (Platform, error) {
	for _, p := range Platforms {
		for _, domain := range platformDomains[p] {
			if strings.Contains(url, domain) {
				return p, nil
			}
		}
	}
	return "", Errorf(EUNSUPPORTED, "unsupported platform: %s", url)
}

// ParsePlatform converts a user-supplied platform name into a Platform.
// "x" is accepted as an alias for Twitter.
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "twitter", "x":
		return PlatformTwitter, nil
	case "linkedin":
		return PlatformLinkedIn, nil
	case "reddit":
		return PlatformReddit, nil
	}
	return "", Errorf(EINVALID, "unknown platform %q (want twitter, linkedin, or reddit)", s)
}

// Upper returns the uppercased platform name as embedded in prompts.
func (p Platform) Upper() string {
	return strings.ToUpper(string(p))
}

// Title returns the human-readable platform name.
func (p Platform) Title() string {
	switch p {
	case PlatformTwitter:
		return "Twitter/X"
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformReddit:
		return "Reddit"
	}
	return string(p)
}
