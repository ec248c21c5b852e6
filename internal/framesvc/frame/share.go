package frame

import (
	"net/url"
	"strings"
)

const shareText = "Here's my tarot reading for the day from NFTarot:"

// ShareURL opens a Warpcast cast composer with the card's reading frame embedded.
func (f *Flow) ShareURL(index int) string {
	return "https://warpcast.com/~/compose?text=" + encodeURIComponent(shareText) +
		"&embeds[]=" + encodeURIComponent(f.URL("/api/card-reading-%d", index))
}

func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
