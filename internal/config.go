package internal

import (
	"os"
	"os/exec"
	"strings"
)

const (
	defaultDownloader     = "yt-dlp"
	defaultMediaProcessor = "ffmpeg"
	downloaderModule      = "yt_dlp"
)

// Toolchain holds the resolved external commands.
type Toolchain struct {
	// Downloader is the command prefix used to invoke yt-dlp, e.g.
	// ["yt-dlp"] or ["python3", "-m", "yt_dlp"].
	Downloader     []string
	MediaProcessor string
}

// DownloaderCommand prepends the downloader prefix to args.
func (tc Toolchain) DownloaderCommand(args ...string) []string {
	argv := make([]string, 0, len(tc.Downloader)+len(args))
	argv = append(argv, tc.Downloader...)
	return append(argv, args...)
}

type Config struct {
	Tools   Toolchain
	LogPath string
}

func ConfigFromEnv() Config {
	return configFrom(os.Getenv, exec.LookPath)
}

func configFrom(getenv func(string) string, lookPath func(string) (string, error)) Config {
	ffmpeg := strings.TrimSpace(getenv("DLP_FFMPEG"))
	if ffmpeg == "" {
		ffmpeg = defaultMediaProcessor
	}
	return Config{
		Tools: Toolchain{
			Downloader:     resolveDownloader(getenv("DLP_YTDLP"), lookPath),
			MediaProcessor: ffmpeg,
		},
		LogPath: strings.TrimSpace(getenv("DLP_LOG")),
	}
}

// resolveDownloader honours an explicit override, then a yt-dlp binary on
// PATH, then yt-dlp installed as a Python module. If none is found the plain
// binary name is kept so the dependency check reports it as missing.
func resolveDownloader(override string, lookPath func(string) (string, error)) []string {
	if fields := strings.Fields(override); len(fields) > 0 {
		return fields
	}
	if _, err := lookPath(defaultDownloader); err == nil {
		return []string{defaultDownloader}
	}
	for _, py := range []string{"python3", "python"} {
		if path, err := lookPath(py); err == nil {
			return []string{path, "-m", downloaderModule}
		}
	}
	return []string{defaultDownloader}
}
