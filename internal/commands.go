package internal

import (
	"fmt"
	"strings"
)

// qualityChoices are the caps offered by the shell; 0 is "best".
var qualityChoices = []int{0, 1080, 720, 480, 360}

// AudioArgs builds the yt-dlp arguments for an mp3 extraction at the best
// VBR quality.
func AudioArgs(url string, opts AudioOptions, destination string) []string {
	args := []string{
		"-x",
		"--audio-format", "mp3",
		"--audio-quality", "0",
	}
	if opts.EmbedThumbnail {
		args = append(args, "--embed-thumbnail")
	}
	if opts.AddMetadata {
		args = append(args, "--add-metadata")
	}
	if dest := strings.TrimSpace(destination); dest != "" {
		args = append(args, "-P", dest)
	}
	return append(args, url)
}

// VideoArgs builds the yt-dlp arguments for a merged video download in the
// requested container.
func VideoArgs(url string, opts VideoOptions) []string {
	format := opts.Format
	if format == "" {
		format = FormatWebM
	}
	return []string{
		url,
		"-f", FormatSelector(format, opts.QualityCap),
		"--merge-output-format", string(format),
	}
}

// FormatSelector returns a yt-dlp format expression preferring the best
// video in the given container (optionally capped in height) plus the best
// matching audio, falling back to the best single-file stream in that
// container and finally to anything.
func FormatSelector(format VideoFormat, qualityCap int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "bv*[ext=%s]", format)
	if qualityCap > 0 {
		fmt.Fprintf(&b, "[height<=%d]", qualityCap)
	}
	fmt.Fprintf(&b, "+ba[ext=%s]/b[ext=%s]/b", format.AudioExt(), format)
	return b.String()
}

func qualityLabel(q int) string {
	if q <= 0 {
		return "best"
	}
	return fmt.Sprintf("%dp", q)
}
