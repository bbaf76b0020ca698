package internal

import (
	"fmt"
	"strings"
)

// MissingDependencyError means a required external tool is absent or broken.
// The shell treats it as fatal.
type MissingDependencyError struct {
	Tool string
	Hint string
	Err  error
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s not installed!\nRun: %s", e.Tool, e.Hint)
}

func (e *MissingDependencyError) Unwrap() error { return e.Err }

type DependencyReport struct {
	DownloaderVersion     string
	MediaProcessorVersion string
}

// CheckDependencies verifies yt-dlp and then ffmpeg can be run. It stops at
// the first failure, so ffmpeg is never probed when yt-dlp is missing.
func CheckDependencies(r Runner, tc Toolchain) (DependencyReport, error) {
	var report DependencyReport

	res, err := r.Run(tc.DownloaderCommand("--version"))
	if err != nil {
		return report, &MissingDependencyError{Tool: "yt-dlp", Hint: "pip install -U yt-dlp", Err: err}
	}
	report.DownloaderVersion = firstLine(res.Stdout)

	res, err = r.Run([]string{tc.MediaProcessor, "-version"})
	if err != nil {
		return report, &MissingDependencyError{Tool: "ffmpeg", Hint: "sudo apt install ffmpeg", Err: err}
	}
	report.MediaProcessorVersion = ffmpegVersion(res.Stdout)

	return report, nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// ffmpegVersion pulls the token after "version" out of the ffmpeg banner,
// e.g. "ffmpeg version 6.1.1-3ubuntu5 Copyright ..." -> "6.1.1-3ubuntu5".
func ffmpegVersion(banner string) string {
	line := firstLine(banner)
	fields := strings.Fields(line)
	for i, f := range fields {
		if f == "version" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return line
}
