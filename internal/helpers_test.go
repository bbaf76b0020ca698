package internal

import (
	"sync"
)

// fakeRunner records every argv it is given and answers through fn.
type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string
	fn    func(argv []string) (CommandResult, error)
}

func (f *fakeRunner) Run(argv []string) (CommandResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string(nil), argv...))
	f.mu.Unlock()
	if f.fn == nil {
		return CommandResult{}, nil
	}
	return f.fn(argv)
}

func (f *fakeRunner) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.calls...)
}

func testToolchain() Toolchain {
	return Toolchain{Downloader: []string{"yt-dlp"}, MediaProcessor: "ffmpeg"}
}
