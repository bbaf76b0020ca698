package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func TestAudioArgs(t *testing.T) {
	tests := []struct {
		name string
		opts AudioOptions
		dest string
		want []string
	}{
		{
			name: "all options",
			opts: DefaultAudioOptions(),
			dest: "/home/me/Music",
			want: []string{"-x", "--audio-format", "mp3", "--audio-quality", "0",
				"--embed-thumbnail", "--add-metadata", "-P", "/home/me/Music", testURL},
		},
		{
			name: "no options",
			opts: AudioOptions{},
			want: []string{"-x", "--audio-format", "mp3", "--audio-quality", "0", testURL},
		},
		{
			name: "thumbnail only",
			opts: AudioOptions{EmbedThumbnail: true},
			want: []string{"-x", "--audio-format", "mp3", "--audio-quality", "0", "--embed-thumbnail", testURL},
		},
		{
			name: "blank destination ignored",
			opts: AudioOptions{AddMetadata: true},
			dest: "   ",
			want: []string{"-x", "--audio-format", "mp3", "--audio-quality", "0", "--add-metadata", testURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AudioArgs(testURL, tt.opts, tt.dest))
		})
	}
}

func TestAudioArgsWithoutOptionalFlags(t *testing.T) {
	args := AudioArgs(testURL, AudioOptions{}, "")

	assert.NotContains(t, args, "--embed-thumbnail")
	assert.NotContains(t, args, "--add-metadata")
	assert.NotContains(t, args, "-P")

	assert.Contains(t, args, "-x")
	assert.Subset(t, args, []string{"--audio-format", "mp3", "--audio-quality", "0"})
	assert.Equal(t, []string{"--audio-format", "mp3"}, args[1:3])
	assert.Equal(t, []string{"--audio-quality", "0"}, args[3:5])
}

func TestFormatSelector(t *testing.T) {
	tests := []struct {
		format VideoFormat
		qcap   int
		want   string
	}{
		{FormatWebM, 720, "bv*[ext=webm][height<=720]+ba[ext=opus]/b[ext=webm]/b"},
		{FormatWebM, 0, "bv*[ext=webm]+ba[ext=opus]/b[ext=webm]/b"},
		{FormatMP4, 0, "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b"},
		{FormatMP4, 1080, "bv*[ext=mp4][height<=1080]+ba[ext=m4a]/b[ext=mp4]/b"},
		{FormatMP4, -1, "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSelector(tt.format, tt.qcap))
		})
	}
}

func TestVideoArgs(t *testing.T) {
	got := VideoArgs(testURL, VideoOptions{Format: FormatWebM, QualityCap: 720})
	assert.Equal(t, []string{
		testURL,
		"-f", "bv*[ext=webm][height<=720]+ba[ext=opus]/b[ext=webm]/b",
		"--merge-output-format", "webm",
	}, got)

	got = VideoArgs(testURL, VideoOptions{Format: FormatMP4})
	assert.Equal(t, "bv*[ext=mp4]+ba[ext=m4a]/b[ext=mp4]/b", got[2])
	assert.Equal(t, "mp4", got[4])
}

func TestVideoArgsDefaultsToWebM(t *testing.T) {
	got := VideoArgs(testURL, VideoOptions{})
	assert.Equal(t, "webm", got[len(got)-1])
}

func TestQualityLabel(t *testing.T) {
	assert.Equal(t, "best", qualityLabel(0))
	assert.Equal(t, "480p", qualityLabel(480))
}
