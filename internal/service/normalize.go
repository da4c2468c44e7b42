package service

import (
	"fmt"

	"github.com/iconidentify/mediagrab/internal/domain"
)

const (
	// UnknownSize is shown when the extractor reports no file size.
	UnknownSize = "Unknown"
	// DefaultAudioLabel is used for audio-only streams without a quality note.
	DefaultAudioLabel = "Audio"

	bytesPerMiB = 1024 * 1024
)

// ClassifyFormats splits info's streams into muxed video and audio-only
// display formats, preserving source order. Streams without audio are dropped.
func ClassifyFormats(info *domain.MediaInfo) *domain.ClassifiedFormats {
	out := &domain.ClassifiedFormats{
		VideoFormats: []domain.DisplayFormat{},
		AudioFormats: []domain.DisplayFormat{},
	}
	if info == nil {
		return out
	}

	out.Title = info.Title
	out.ThumbnailURL = info.ThumbnailURL

	for _, s := range info.Streams {
		if !s.HasAudio() {
			continue
		}

		f := domain.DisplayFormat{
			Label:    s.QualityLabel,
			SizeText: sizeText(s.SizeBytes),
			URL:      s.StreamURL,
		}

		if s.HasVideo() {
			out.VideoFormats = append(out.VideoFormats, f)
			continue
		}

		if f.Label == "" {
			f.Label = DefaultAudioLabel
		}
		out.AudioFormats = append(out.AudioFormats, f)
	}

	return out
}

// FormatSize renders a byte count in binary megabytes with two decimals.
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/bytesPerMiB)
}

func sizeText(bytes *int64) string {
	if bytes == nil {
		return UnknownSize
	}
	return FormatSize(*bytes)
}
