package internal

import (
	"errors"
	"regexp"
	"strings"
)

// ────────────────────────────────
// REQUEST TYPES
// ────────────────────────────────

type Mode int

const (
	ModeVideo Mode = iota
	ModeAudio
)

func (m Mode) String() string {
	if m == ModeAudio {
		return "audio"
	}
	return "video"
}

type VideoFormat string

const (
	FormatWebM VideoFormat = "webm"
	FormatMP4  VideoFormat = "mp4"
)

// AudioExt is the audio container yt-dlp should pair with the video stream
// so the merge does not need a re-encode.
func (f VideoFormat) AudioExt() string {
	if f == FormatMP4 {
		return "m4a"
	}
	return "opus"
}

type AudioOptions struct {
	EmbedThumbnail bool
	AddMetadata    bool
}

func DefaultAudioOptions() AudioOptions {
	return AudioOptions{EmbedThumbnail: true, AddMetadata: true}
}

type VideoOptions struct {
	Format VideoFormat
	// QualityCap is the maximum vertical resolution. 0 means best available.
	QualityCap int
}

func DefaultVideoOptions() VideoOptions {
	return VideoOptions{Format: FormatWebM}
}

type DownloadRequest struct {
	URL         string
	Mode        Mode
	Destination string
	Audio       AudioOptions
	Video       VideoOptions
}

// Args returns the downloader arguments for the request, without the
// downloader executable itself.
func (r DownloadRequest) Args() []string {
	if r.Mode == ModeAudio {
		return AudioArgs(r.URL, r.Audio, r.Destination)
	}
	return VideoArgs(r.URL, r.Video)
}

// ────────────────────────────────
// URL VALIDATION
// ────────────────────────────────

var (
	urlRe         = regexp.MustCompile(`(?i)^https?://`)
	ErrInvalidURL = errors.New("Must start with http:// or https://")
)

func ValidateURL(s string) error {
	if !urlRe.MatchString(strings.TrimSpace(s)) {
		return ErrInvalidURL
	}
	return nil
}
