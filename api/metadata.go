package api

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Metadata describes a video as the catalog knows it
type Metadata struct {
	Title       string
	Channel     string
	PublishDate string
	Duration    string
	Description string
}

// MetadataSource looks up video metadata by id
type MetadataSource interface {
	Lookup(ctx context.Context, videoID string) (Metadata, error)
}

// PlaceholderMetadata invents metadata when no catalog is configured
type PlaceholderMetadata struct{}

func (PlaceholderMetadata) Lookup(ctx context.Context, videoID string) (Metadata, error) {
	return Metadata{
		Title:       "Video " + videoID,
		Channel:     "Unknown",
		PublishDate: "Unknown",
	}, nil
}

// YouTubeConfig selects how the Data API is authenticated. A service
// account file takes precedence over an API key.
type YouTubeConfig struct {
	APIKey             string
	ServiceAccountFile string
	// Endpoint overrides the API base URL
	Endpoint string
}

// YouTubeMetadata reads metadata from the YouTube Data API v3
type YouTubeMetadata struct {
	service *youtube.Service
}

// NewYouTubeMetadata creates a Data API client
func NewYouTubeMetadata(ctx context.Context, cfg YouTubeConfig, extra ...option.ClientOption) (*YouTubeMetadata, error) {
	var opts []option.ClientOption
	switch {
	case cfg.ServiceAccountFile != "":
		data, err := os.ReadFile(cfg.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account file: %w", err)
		}
		jwt, err := google.JWTConfigFromJSON(data, youtube.YoutubeReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(jwt.Client(ctx)))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	default:
		return nil, fmt.Errorf("no YouTube credentials configured")
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	opts = append(opts, extra...)

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &YouTubeMetadata{service: service}, nil
}

// Lookup fetches the snippet and content details of one video
func (y *YouTubeMetadata) Lookup(ctx context.Context, videoID string) (Metadata, error) {
	resp, err := y.service.Videos.List([]string{"snippet", "contentDetails"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return Metadata{}, fmt.Errorf("youtube lookup failed: %w", err)
	}
	if len(resp.Items) == 0 {
		return Metadata{}, fmt.Errorf("video %s not found", videoID)
	}

	item := resp.Items[0]
	md := Metadata{}
	if s := item.Snippet; s != nil {
		md.Title = s.Title
		md.Channel = s.ChannelTitle
		md.Description = truncate(s.Description, 200)
		if len(s.PublishedAt) >= 10 {
			md.PublishDate = s.PublishedAt[:10]
		}
	}
	if cd := item.ContentDetails; cd != nil {
		if d, ok := parseISODuration(cd.Duration); ok {
			md.Duration = FormatClock(d)
		}
	}
	return md, nil
}

// FormatClock renders a duration as MM:SS, or HH:MM:SS from one hour up
func FormatClock(d time.Duration) string {
	total := int(d / time.Second)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// parseISODuration handles the PnDTnHnMnS form the Data API returns
func parseISODuration(s string) (time.Duration, bool) {
	rest, ok := strings.CutPrefix(s, "P")
	if !ok || rest == "" {
		return 0, false
	}

	var total time.Duration
	inTime := false
	num := ""
	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == 'T':
			inTime = true
		default:
			n, err := strconv.Atoi(num)
			if err != nil {
				return 0, false
			}
			num = ""
			switch {
			case r == 'D' && !inTime:
				total += time.Duration(n) * 24 * time.Hour
			case r == 'H' && inTime:
				total += time.Duration(n) * time.Hour
			case r == 'M' && inTime:
				total += time.Duration(n) * time.Minute
			case r == 'S' && inTime:
				total += time.Duration(n) * time.Second
			default:
				return 0, false
			}
		}
	}
	return total, num == ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
