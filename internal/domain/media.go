package domain

// CodecNone is the codec value the extractor reports for an absent track.
const CodecNone = "none"

// StreamDescriptor is one encoded audio/video variant offered by the source.
type StreamDescriptor struct {
	AudioCodec   string
	VideoCodec   string
	QualityLabel string
	SizeBytes    *int64
	StreamURL    string
}

// HasAudio reports whether the descriptor carries an audio track.
func (s StreamDescriptor) HasAudio() bool {
	return s.AudioCodec != CodecNone
}

// HasVideo reports whether the descriptor carries a video track.
func (s StreamDescriptor) HasVideo() bool {
	return s.VideoCodec != CodecNone
}

// MediaInfo is the extractor's view of one source URL.
type MediaInfo struct {
	Title        string
	ThumbnailURL string
	Streams      []StreamDescriptor
}

// DisplayFormat is a single downloadable entry shown to the client.
type DisplayFormat struct {
	Label    string `json:"quality"`
	SizeText string `json:"size"`
	URL      string `json:"url"`
}

// ClassifiedFormats is the response contract for a format lookup.
type ClassifiedFormats struct {
	Title        string          `json:"title"`
	ThumbnailURL string          `json:"thumbnail"`
	VideoFormats []DisplayFormat `json:"formats"`
	AudioFormats []DisplayFormat `json:"audioFormats"`
}
