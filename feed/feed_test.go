package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const uploadsFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>EduChan</title>
  <entry>
    <id>yt:video:abc123</id>
    <title>Intro to AI</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
  </entry>
  <entry>
    <id>yt:video:abc123-dup</id>
    <title>Intro to AI (again)</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
  </entry>
  <entry>
    <id>yt:video:def456</id>
    <title>Neural Networks</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=def456"/>
  </entry>
  <entry>
    <id>yt:video:ghi789</id>
    <title>Transformers</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=ghi789"/>
  </entry>
</feed>`

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(uploadsFeed))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVideoURLs(t *testing.T) {
	srv := newFeedServer(t)
	src := NewSource(srv.Client())

	urls, err := src.VideoURLs(context.Background(), srv.URL, 10)
	if err != nil {
		t.Fatalf("VideoURLs: %v", err)
	}
	want := []string{
		"https://www.youtube.com/watch?v=abc123",
		"https://www.youtube.com/watch?v=def456",
		"https://www.youtube.com/watch?v=ghi789",
	}
	if len(urls) != len(want) {
		t.Fatalf("got %v; want %v", urls, want)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("url %d = %q; want %q", i, urls[i], want[i])
		}
	}
}

func TestVideoURLsRespectsLimit(t *testing.T) {
	srv := newFeedServer(t)
	urls, err := NewSource(srv.Client()).VideoURLs(context.Background(), srv.URL, 2)
	if err != nil {
		t.Fatalf("VideoURLs: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("got %d urls; want 2", len(urls))
	}
}

func TestVideoURLsBadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not a feed"))
	}))
	defer srv.Close()

	if _, err := NewSource(srv.Client()).VideoURLs(context.Background(), srv.URL, 5); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := NewSource(nil).VideoURLs(context.Background(), "  ", 5); err == nil {
		t.Fatal("expected error for empty url")
	}
}

func TestResolveFeedURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"UCabc", youtubeFeedBase + "?channel_id=UCabc"},
		{"PLxyz", youtubeFeedBase + "?playlist_id=PLxyz"},
		{"https://www.youtube.com/channel/UCabc/videos", youtubeFeedBase + "?channel_id=UCabc"},
		{"https://www.youtube.com/playlist?list=PLxyz", youtubeFeedBase + "?playlist_id=PLxyz"},
		{youtubeFeedBase + "?channel_id=UCabc", youtubeFeedBase + "?channel_id=UCabc"},
		{"https://example.com/rss", "https://example.com/rss"},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := ResolveFeedURL(tt.in); got != tt.want {
			t.Errorf("ResolveFeedURL(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
