package repurpose_test

import (
	"testing"

	"github.com/fwojciec/repurpose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want repurpose.Platform
	}{
		{"twitter", "https://twitter.com/golang/status/1", repurpose.PlatformTwitter},
		{"x", "https://x.com/golang/status/1", repurpose.PlatformTwitter},
		{"linkedin", "https://www.linkedin.com/posts/someone_activity-1", repurpose.PlatformLinkedIn},
		{"reddit", "https://www.reddit.com/r/golang/comments/abc/title/", repurpose.PlatformReddit},
		{"old reddit", "https://old.reddit.com/r/golang/comments/abc/", repurpose.PlatformReddit},
		{"twitter wins over reddit", "https://twitter.com/share?u=reddit.com", repurpose.PlatformTwitter},
		{"linkedin wins over reddit", "https://linkedin.com/redir?reddit.com", repurpose.PlatformLinkedIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := repurpose.DetectPlatform(tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectPlatform_Unsupported(t *testing.T) {
	t.Parallel()

	urls := []string{
		"",
		"https://example.com/post/1",
		"https://mastodon.social/@golang/1",
		"https://TWITTER.COM/golang/status/1",
		"not a url",
	}

	for _, url := range urls {
		_, err := repurpose.DetectPlatform(url)

		require.Error(t, err, "url %q", url)
		assert.Equal(t, repurpose.EUNSUPPORTED, repurpose.ErrorCode(err))
	}
}

func TestParsePlatform(t *testing.T) {
	t.Parallel()

	t.Run("accepts names and alias", func(t *testing.T) {
		t.Parallel()

		for in, want := range map[string]repurpose.Platform{
			"twitter":   repurpose.PlatformTwitter,
			"X":         repurpose.PlatformTwitter,
			"LinkedIn":  repurpose.PlatformLinkedIn,
			" reddit ":  repurpose.PlatformReddit,
		} {
			got, err := repurpose.ParsePlatform(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		t.Parallel()

		_, err := repurpose.ParsePlatform("myspace")

		require.Error(t, err)
		assert.Equal(t, repurpose.EINVALID, repurpose.ErrorCode(err))
	})
}

func TestPlatform_Names(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "TWITTER", repurpose.PlatformTwitter.Upper())
	assert.Equal(t, "Twitter/X", repurpose.PlatformTwitter.Title())
	assert.Equal(t, "LinkedIn", repurpose.PlatformLinkedIn.Title())
	assert.Equal(t, "Reddit", repurpose.PlatformReddit.Title())
}
