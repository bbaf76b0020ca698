package internal

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// openFolder reveals a download directory in the system file manager.
var openFolder = func(dir string) error {
	return exec.Command("xdg-open", dir).Start()
}

// downloadDir resolves where yt-dlp wrote its output: the requested
// destination, or the working directory when none was given.
func downloadDir(destination string) (string, error) {
	dest := strings.TrimSpace(destination)
	if dest == "" {
		return os.Getwd()
	}
	if strings.HasPrefix(dest, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dest = filepath.Join(home, strings.TrimPrefix(dest, "~"))
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", err
	}
	if fi, err := os.Stat(abs); err != nil {
		return "", err
	} else if !fi.IsDir() {
		return "", errors.New("not a directory: " + abs)
	}
	return abs, nil
}
