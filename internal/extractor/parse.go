package extractor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/iconidentify/mediagrab/internal/domain"
)

// maxDetailLen caps how much raw tool output is kept for diagnostics.
const maxDetailLen = 4096

// ytDlpJSON matches the subset of yt-dlp's --dump-single-json output we use.
type ytDlpJSON struct {
	Title      string `json:"title"`
	Thumbnail  string `json:"thumbnail"`
	Thumbnails []struct {
		URL string `json:"url"`
	} `json:"thumbnails"`
	Formats []ytDlpFormat `json:"formats"`
}

type ytDlpFormat struct {
	ACodec     string   `json:"acodec"`
	VCodec     string   `json:"vcodec"`
	FormatNote string   `json:"format_note"`
	FileSize   *float64 `json:"filesize"`
	URL        string   `json:"url"`
}

// ParseInfo converts yt-dlp JSON output into a MediaInfo.
// Missing fields fall back to zero values; fields outside the contract are ignored.
func ParseInfo(data []byte) (*domain.MediaInfo, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errors.New("empty extractor output")
	}

	var raw ytDlpJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode extractor output: %w", err)
	}

	info := &domain.MediaInfo{
		Title:        raw.Title,
		ThumbnailURL: raw.Thumbnail,
		Streams:      make([]domain.StreamDescriptor, 0, len(raw.Formats)),
	}

	// yt-dlp orders thumbnails worst to best
	if info.ThumbnailURL == "" {
		for i := len(raw.Thumbnails) - 1; i >= 0; i-- {
			if raw.Thumbnails[i].URL != "" {
				info.ThumbnailURL = raw.Thumbnails[i].URL
				break
			}
		}
	}

	for _, f := range raw.Formats {
		info.Streams = append(info.Streams, f.descriptor())
	}

	return info, nil
}

func (f ytDlpFormat) descriptor() domain.StreamDescriptor {
	d := domain.StreamDescriptor{
		AudioCodec:   f.ACodec,
		VideoCodec:   f.VCodec,
		QualityLabel: f.FormatNote,
		StreamURL:    f.URL,
	}
	// Negative, non-finite and out-of-range sizes are treated as absent.
	if f.FileSize != nil && *f.FileSize >= 0 && *f.FileSize < float64(math.MaxInt64) {
		size := int64(*f.FileSize)
		d.SizeBytes = &size
	}
	return d
}

func truncateDetail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxDetailLen {
		return s
	}
	cut := maxDetailLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "...(truncated)"
}
