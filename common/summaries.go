package common

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"vidqa/normalize"
	"vidqa/types"
)

// ErrSummaryNotFound is returned when no exported summary exists for a video
var ErrSummaryNotFound = errors.New("summary not found")

const (
	summaryDir         = "summaries"
	summaryContentType = "text/markdown; charset=utf-8"
	listPageSize       = 100
)

// SummaryArchive stores exported summaries as Markdown objects under
// <prefix>summaries/<video_id>.md
type SummaryArchive struct {
	api    ObjectAPI
	bucket string
	prefix string
}

// NewSummaryArchive wraps an S3 client for summary export
func NewSummaryArchive(api ObjectAPI, bucket, prefix string) (*SummaryArchive, error) {
	if bucket == "" {
		return nil, fmt.Errorf("no S3 bucket configured")
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &SummaryArchive{api: api, bucket: bucket, prefix: prefix}, nil
}

// Key returns the object key of a video's summary
func (a *SummaryArchive) Key(videoID string) string {
	return a.prefix + path.Join(summaryDir, videoID+".md")
}

// ExportSummary uploads the summary, replacing any earlier export, and
// returns its s3:// location.
func (a *SummaryArchive) ExportSummary(ctx context.Context, video types.Video, summary types.Summary) (string, error) {
	if video.ID.IsZero() {
		return "", fmt.Errorf("video has no id")
	}
	key := a.Key(video.ID.Value)

	_, err := a.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(RenderSummary(video, summary)),
		ContentType: aws.String(summaryContentType),
		Metadata: map[string]string{
			"video-id": video.ID.Value,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload summary: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}

// LoadSummary returns the Markdown of a previous export
func (a *SummaryArchive) LoadSummary(ctx context.Context, videoID string) (string, error) {
	out, err := a.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.Key(videoID)),
	})
	if err != nil {
		if isNotFound(err) {
			return "", ErrSummaryNotFound
		}
		return "", fmt.Errorf("failed to download summary: %w", err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read summary: %w", err)
	}
	return string(body), nil
}

// Exists reports whether a summary was exported for the video
func (a *SummaryArchive) Exists(ctx context.Context, videoID string) (bool, error) {
	_, err := a.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(a.Key(videoID)),
	})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, err
}

// ListExported returns the ids of all videos with an exported summary
func (a *SummaryArchive) ListExported(ctx context.Context) ([]string, error) {
	dir := a.prefix + summaryDir + "/"
	var ids []string
	var token *string
	for {
		out, err := a.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(a.bucket),
			Prefix:            aws.String(dir),
			MaxKeys:           aws.Int32(listPageSize),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list summaries: %w", err)
		}
		for _, obj := range out.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), dir)
			if id, ok := strings.CutSuffix(name, ".md"); ok && id != "" && !strings.Contains(id, "/") {
				ids = append(ids, id)
			}
		}
		if !aws.ToBool(out.IsTruncated) || out.NextContinuationToken == nil {
			return ids, nil
		}
		token = out.NextContinuationToken
	}
}

// RenderSummary formats a summary as a Markdown document
func RenderSummary(video types.Video, summary types.Summary) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", video.Title)
	fmt.Fprintf(&b, "- Video: %s\n", video.ID.Value)
	if video.SourceURL != "" {
		fmt.Fprintf(&b, "- URL: %s\n", video.SourceURL)
	}
	fmt.Fprintf(&b, "- Channel: %s\n", video.Channel)
	fmt.Fprintf(&b, "- Length: %s\n", video.Length)
	if !summary.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "- Generated: %s\n", summary.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC"))
	}
	b.WriteString("\n")

	if len(summary.Highlights) == 0 {
		b.WriteString(summary.Text)
		b.WriteString("\n")
		return b.Bytes()
	}

	overall := summary.Text
	if i := strings.LastIndex(overall, "\n\n"+normalize.HighlightsHeading); i >= 0 {
		overall = overall[:i]
	}
	b.WriteString(overall)
	b.WriteString("\n\n## Key Highlights\n\n")
	for _, h := range summary.Highlights {
		if h.Timestamp != "" {
			fmt.Fprintf(&b, "- **[%s]** %s\n", h.Timestamp, h.MainPoint)
		} else {
			fmt.Fprintf(&b, "- %s\n", h.MainPoint)
		}
		for _, sub := range h.SubPoints {
			fmt.Fprintf(&b, "  - %s\n", sub)
		}
	}
	return b.Bytes()
}
