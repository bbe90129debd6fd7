package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
)

// YouTube publishes an Atom feed of recent uploads per channel and playlist
const youtubeFeedBase = "https://www.youtube.com/feeds/videos.xml"

// DefaultLimit caps how many entries one import processes
const DefaultLimit = 10

// Source reads RSS/Atom feeds and extracts video links
type Source struct {
	parser *gofeed.Parser
}

// NewSource creates a feed source. A nil client uses gofeed's default.
func NewSource(httpClient *http.Client) *Source {
	parser := gofeed.NewParser()
	if httpClient != nil {
		parser.Client = httpClient
	}
	return &Source{parser: parser}
}

// ResolveFeedURL turns a channel id, playlist id or YouTube page URL into
// the URL of its uploads feed. Anything else is returned unchanged.
//
//	UCxxxx                                  -> channel feed
//	PLxxxx                                  -> playlist feed
//	https://www.youtube.com/channel/UCxxxx  -> channel feed
//	https://www.youtube.com/playlist?list=x -> playlist feed
func ResolveFeedURL(input string) string {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return ""
	case strings.HasPrefix(input, "UC") && !strings.Contains(input, "/"):
		return youtubeFeedBase + "?channel_id=" + url.QueryEscape(input)
	case strings.HasPrefix(input, "PL") && !strings.Contains(input, "/"):
		return youtubeFeedBase + "?playlist_id=" + url.QueryEscape(input)
	}

	u, err := url.Parse(input)
	if err != nil || !isYouTubeHost(u.Host) {
		return input
	}
	if u.Path == "/feeds/videos.xml" {
		return input
	}
	if list := u.Query().Get("list"); list != "" {
		return youtubeFeedBase + "?playlist_id=" + url.QueryEscape(list)
	}
	if rest, ok := strings.CutPrefix(u.Path, "/channel/"); ok {
		if id, _, _ := strings.Cut(rest, "/"); id != "" {
			return youtubeFeedBase + "?channel_id=" + url.QueryEscape(id)
		}
	}
	return input
}

func isYouTubeHost(host string) bool {
	host = strings.ToLower(host)
	return host == "youtube.com" || strings.HasSuffix(host, ".youtube.com")
}

// VideoURLs fetches the feed and returns up to limit entry links, newest
// first as published. Entries without a link are skipped and duplicate
// links are returned once.
func (s *Source) VideoURLs(ctx context.Context, feedURL string, limit int) ([]string, error) {
	resolved := ResolveFeedURL(feedURL)
	if resolved == "" {
		return nil, fmt.Errorf("empty feed url")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	feed, err := s.parser.ParseURLWithContext(resolved, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	urls := make([]string, 0, min(len(feed.Items), limit))
	seen := make(map[string]bool)
	for _, item := range feed.Items {
		if len(urls) == limit {
			break
		}
		link := itemLink(item)
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true
		urls = append(urls, link)
	}
	return urls, nil
}

// itemLink prefers the entry link and falls back to the first alternate
// link or a GUID that looks like a URL.
func itemLink(item *gofeed.Item) string {
	if link := strings.TrimSpace(item.Link); link != "" {
		return link
	}
	for _, l := range item.Links {
		if l = strings.TrimSpace(l); l != "" {
			return l
		}
	}
	if strings.HasPrefix(item.GUID, "http") {
		return item.GUID
	}
	return ""
}
