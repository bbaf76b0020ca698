package internal

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

//
// ────────────────────────────────
// KEY MAP + HELP
// ────────────────────────────────
//

type keyMap struct {
	Up, Down, Enter  key.Binding
	Back, Quit, Open key.Binding
	ForceQuit        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open folder")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// helpKeys is the subset of bindings shown for the current state.
type helpKeys []key.Binding

func (h helpKeys) ShortHelp() []key.Binding  { return h }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

//
// ────────────────────────────────
// MESSAGE TYPES
// ────────────────────────────────
//

type (
	depsCheckedMsg struct {
		Report DependencyReport
		Err    error
	}
	downloadDoneMsg struct {
		Request DownloadRequest
		Stdout  string
		Err     error
	}
)

//
// ────────────────────────────────
// MODEL
// ────────────────────────────────
//

type state int

const (
	stateMenu state = iota
	stateChecking
	stateURL
	stateFormat
	stateQuality
	stateDestination
	stateThumbnail
	stateMetadata
	stateRunning
)

type Model struct {
	runner Runner
	tools  Toolchain

	styles  Styles
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	state   state

	menu      *Picker[Mode]
	format    *Picker[VideoFormat]
	quality   *Picker[int]
	thumbnail *Picker[bool]
	metadata  *Picker[bool]
	urlInput  textinput.Model
	destInput textinput.Model
	urlErr    error

	// req is the request being assembled by the current flow.
	req DownloadRequest

	status    string
	lastError error
	lastDir   string

	// fatal is set when a required tool is missing; Run returns it after
	// the program exits.
	fatal error
}

//
// ────────────────────────────────
// APP ENTRYPOINT
// ────────────────────────────────
//

func Run() error {
	cfg := ConfigFromEnv()

	if cfg.LogPath != "" {
		f, err := tea.LogToFile(cfg.LogPath, "dlp-tui")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	final, err := tea.NewProgram(New(cfg, ExecRunner{})).Run()

	log.SetOutput(os.Stderr)
	log.SetPrefix("")
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.fatal != nil {
		return m.fatal
	}
	return nil
}

func New(cfg Config, runner Runner) Model {
	styles := NewStyles()

	qualities := make([]Choice[int], 0, len(qualityChoices))
	for _, q := range qualityChoices {
		label := "best"
		if q > 0 {
			label = strconv.Itoa(q)
		}
		qualities = append(qualities, Choice[int]{Label: label, Value: q})
	}

	sp := spinner.New(
		spinner.WithSpinner(spinner.Line),
		spinner.WithStyle(styles.Cursor),
	)

	return Model{
		runner:  runner,
		tools:   cfg.Tools,
		styles:  styles,
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: sp,
		state:   stateMenu,

		menu: NewPicker("What's your task:",
			Choice[Mode]{Label: "🎥 Download Video", Value: ModeVideo},
			Choice[Mode]{Label: "🔉 Download Audio", Value: ModeAudio},
		),
		format: NewPicker("Format (default: .webm):",
			Choice[VideoFormat]{Label: "webm", Value: FormatWebM},
			Choice[VideoFormat]{Label: "mp4", Value: FormatMP4},
		),
		quality:   NewPicker("Quality (default: best):", qualities...),
		thumbnail: yesNo("Embed thumbnail to audio file:"),
		metadata:  yesNo("Embed metadata to audio file:"),
		urlInput:  newInput("https://…"),
		destInput: newInput("current directory"),
	}
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 2048
	ti.Width = 60
	return ti
}

func (m Model) Init() tea.Cmd {
	return nil
}

//
// ────────────────────────────────
// VIEW
// ────────────────────────────────
//

func (m Model) dynamicHelp() string {
	k := m.keys
	switch m.state {
	case stateMenu:
		if m.lastDir != "" {
			return m.help.View(helpKeys{k.Up, k.Down, k.Enter, k.Open, k.Quit})
		}
		return m.help.View(helpKeys{k.Up, k.Down, k.Enter, k.Quit})
	case stateURL, stateDestination:
		return m.help.View(helpKeys{k.Enter, k.Back, k.ForceQuit})
	case stateChecking, stateRunning:
		return m.help.View(helpKeys{k.ForceQuit})
	default:
		return m.help.View(helpKeys{k.Up, k.Down, k.Enter, k.Back})
	}
}

func (m Model) View() string {
	banner := m.styles.Banner.Render("Welcome to dlp-tui 🎉")

	var body string
	switch m.state {
	case stateMenu:
		body = m.menu.View(m.styles)
	case stateChecking:
		body = fmt.Sprintf("%s Checking dependencies…", m.spinner.View())
	case stateURL:
		body = m.styles.Title.Render("Paste URL:") + "\n" + m.urlInput.View()
		if m.urlErr != nil {
			body += "\n" + m.styles.Error.Render(m.urlErr.Error())
		}
	case stateFormat:
		body = m.format.View(m.styles)
	case stateQuality:
		body = m.quality.View(m.styles)
	case stateDestination:
		body = m.styles.Title.Render("Destination Folder (default: Current):") + "\n" + m.destInput.View()
	case stateThumbnail:
		body = m.thumbnail.View(m.styles)
	case stateMetadata:
		body = m.metadata.View(m.styles)
	case stateRunning:
		body = fmt.Sprintf("%s Downloading…\n%s", m.spinner.View(), m.styles.Subtle.Render(describe(m.req)))
	}

	if m.state != stateMenu && m.state != stateURL && m.req.URL != "" && m.state != stateRunning {
		body = m.styles.Subtle.Render(m.req.URL) + "\n" + body
	}

	parts := []string{banner, body}
	switch {
	case m.lastError != nil:
		parts = append(parts, m.styles.Error.Render(fmt.Sprintf("[X] %v", m.lastError)))
	case m.status != "":
		parts = append(parts, m.styles.Status.Render(m.status))
	}
	parts = append(parts, m.dynamicHelp())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func describe(r DownloadRequest) string {
	if r.Mode == ModeAudio {
		dest := strings.TrimSpace(r.Destination)
		if dest == "" {
			dest = "."
		}
		return fmt.Sprintf("audio · mp3 · %s → %s", r.URL, dest)
	}
	format := r.Video.Format
	if format == "" {
		format = FormatWebM
	}
	return fmt.Sprintf("video · %s · %s · %s", format, qualityLabel(r.Video.QualityCap), r.URL)
}

//
// ────────────────────────────────
// UPDATE
// ────────────────────────────────
//

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 2
		if w > 64 {
			w = 64
		}
		for _, p := range []interface{ SetWidth(int) }{m.menu, m.format, m.quality, m.thumbnail, m.metadata} {
			p.SetWidth(w)
		}
		if w > 10 {
			m.urlInput.Width = w - 4
			m.destInput.Width = w - 4
		}
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.state != stateChecking && m.state != stateRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case depsCheckedMsg:
		return m.dependenciesChecked(msg)

	case downloadDoneMsg:
		return m.downloadDone(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	// cursor blink and similar input-internal messages
	var cmd tea.Cmd
	switch m.state {
	case stateURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case stateDestination:
		m.destInput, cmd = m.destInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.menu.CursorUp()
		case key.Matches(msg, m.keys.Down):
			m.menu.CursorDown()
		case key.Matches(msg, m.keys.Open):
			if m.lastDir != "" {
				if err := openFolder(m.lastDir); err != nil {
					m.lastError = fmt.Errorf("open folder: %w", err)
				} else {
					m.status = fmt.Sprintf("📂 Opened %s", m.lastDir)
				}
			}
		case key.Matches(msg, m.keys.Enter):
			mode, ok := m.menu.Selected()
			if !ok {
				return m, nil
			}
			return m.startTask(mode)
		}
		return m, nil

	case stateChecking, stateRunning:
		return m, nil

	case stateURL:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m.cancelFlow()
		case key.Matches(msg, m.keys.Enter):
			raw := m.urlInput.Value()
			if err := ValidateURL(raw); err != nil {
				m.urlErr = err
				return m, nil
			}
			m.urlErr = nil
			m.req.URL = strings.TrimSpace(raw)
			m.urlInput.Blur()
			if m.req.Mode == ModeAudio {
				m.state = stateDestination
				m.destInput.Reset()
				return m, m.destInput.Focus()
			}
			m.state = stateFormat
			return m, nil
		}
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		return m, cmd

	case stateDestination:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m.cancelFlow()
		case key.Matches(msg, m.keys.Enter):
			m.req.Destination = strings.TrimSpace(m.destInput.Value())
			m.destInput.Blur()
			m.state = stateThumbnail
			return m, nil
		}
		var cmd tea.Cmd
		m.destInput, cmd = m.destInput.Update(msg)
		return m, cmd

	case stateFormat:
		if v, done, cancel := pick(m.format, m.keys, msg); cancel {
			return m.cancelFlow()
		} else if done {
			m.req.Video.Format = v
			m.state = stateQuality
		}
		return m, nil

	case stateQuality:
		if v, done, cancel := pick(m.quality, m.keys, msg); cancel {
			return m.cancelFlow()
		} else if done {
			m.req.Video.QualityCap = v
			return m.startDownload()
		}
		return m, nil

	case stateThumbnail:
		if v, done, cancel := pick(m.thumbnail, m.keys, msg); cancel {
			return m.cancelFlow()
		} else if done {
			m.req.Audio.EmbedThumbnail = v
			m.state = stateMetadata
		}
		return m, nil

	case stateMetadata:
		if v, done, cancel := pick(m.metadata, m.keys, msg); cancel {
			return m.cancelFlow()
		} else if done {
			m.req.Audio.AddMetadata = v
			return m.startDownload()
		}
		return m, nil
	}
	return m, nil
}

// pick applies navigation keys to a picker and reports whether a value was
// chosen or the prompt was cancelled.
func pick[T any](p *Picker[T], keys keyMap, msg tea.KeyMsg) (v T, done, cancel bool) {
	switch {
	case key.Matches(msg, keys.Back):
		return v, false, true
	case key.Matches(msg, keys.Up):
		p.CursorUp()
	case key.Matches(msg, keys.Down):
		p.CursorDown()
	case key.Matches(msg, keys.Enter):
		v, done = p.Selected()
	}
	return v, done, false
}

//
// ────────────────────────────────
// TRANSITIONS
// ────────────────────────────────
//

func (m Model) startTask(mode Mode) (tea.Model, tea.Cmd) {
	m.req = DownloadRequest{
		Mode:  mode,
		Audio: DefaultAudioOptions(),
		Video: DefaultVideoOptions(),
	}
	for _, p := range []interface{ Reset() }{m.format, m.quality, m.thumbnail, m.metadata} {
		p.Reset()
	}
	m.lastError = nil
	m.status = ""
	m.state = stateChecking
	return m, tea.Batch(m.spinner.Tick, m.checkDependencies())
}

func (m Model) dependenciesChecked(msg depsCheckedMsg) (tea.Model, tea.Cmd) {
	if m.state != stateChecking {
		return m, nil
	}
	if msg.Err != nil {
		var missing *MissingDependencyError
		if errors.As(msg.Err, &missing) {
			m.fatal = missing
		} else {
			m.fatal = msg.Err
		}
		return m, tea.Quit
	}

	m.state = stateURL
	m.urlErr = nil
	m.urlInput.Reset()
	return m, tea.Batch(
		tea.Sequence(
			tea.Printf("[+] yt-dlp installed! (%s)", msg.Report.DownloaderVersion),
			tea.Printf("[+] ffmpeg installed! (%s)", msg.Report.MediaProcessorVersion),
		),
		m.urlInput.Focus(),
	)
}

func (m Model) startDownload() (tea.Model, tea.Cmd) {
	m.state = stateRunning
	m.status = ""
	m.lastError = nil
	return m, tea.Batch(m.spinner.Tick, m.runDownload(m.req))
}

func (m Model) downloadDone(msg downloadDoneMsg) (tea.Model, tea.Cmd) {
	m.state = stateMenu
	m.req = DownloadRequest{}
	if msg.Err != nil {
		m.lastError = msg.Err
		m.status = ""
		return m, nil
	}

	m.lastError = nil
	m.status = "[+] Download Complete!"
	if dir, err := downloadDir(msg.Request.Destination); err == nil {
		m.lastDir = dir
	} else {
		log.Printf("resolve download dir: %v", err)
		m.lastDir = ""
	}
	return m, tea.Printf("[+] Download Complete! %s", describe(msg.Request))
}

// cancelFlow handles a prompt returning no value: the current request is
// dropped and the shell goes back to the menu.
func (m Model) cancelFlow() (tea.Model, tea.Cmd) {
	m.urlInput.Blur()
	m.destInput.Blur()
	m.urlErr = nil
	m.req = DownloadRequest{}
	m.state = stateMenu
	m.status = "Cancelled"
	m.lastError = nil
	return m, nil
}

//
// ────────────────────────────────
// COMMANDS
// ────────────────────────────────
//

func (m Model) checkDependencies() tea.Cmd {
	runner, tools := m.runner, m.tools
	return func() tea.Msg {
		report, err := CheckDependencies(runner, tools)
		return depsCheckedMsg{Report: report, Err: err}
	}
}

func (m Model) runDownload(req DownloadRequest) tea.Cmd {
	runner, argv := m.runner, m.tools.DownloaderCommand(req.Args()...)
	return func() tea.Msg {
		res, err := runner.Run(argv)
		if err != nil {
			return downloadDoneMsg{Request: req, Err: fmt.Errorf("%s download failed: %w", req.Mode, err)}
		}
		return downloadDoneMsg{Request: req, Stdout: res.Stdout}
	}
}
