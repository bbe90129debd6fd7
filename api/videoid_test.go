package api

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "https://www.youtube.com/watch?v=abc123&utm_source=x", want: "abc123"},
		{in: "https://youtube.com/watch?feature=share&v=abc123", want: "abc123"},
		{in: "youtube.com/watch?v=abc123", want: "abc123"},
		{in: "https://m.youtube.com/watch?v=abc123#t=10", want: "abc123"},
		{in: "https://youtu.be/abc123?t=42", want: "abc123"},
		{in: "https://www.youtube.com/shorts/abc123", want: "abc123"},
		{in: "https://www.youtube.com/embed/abc123/", want: "abc123"},
		{in: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{in: "https://example.com/watch?v=abc123", wantErr: true},
		{in: "https://www.youtube.com/channel/UCabc", wantErr: true},
		{in: "not a url", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ExtractVideoID(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ExtractVideoID(%q) = %q; want error", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ExtractVideoID(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
