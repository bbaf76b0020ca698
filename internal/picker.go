package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ────────────────────────────────
// STYLES
// ────────────────────────────────

type Styles struct {
	Banner  lipgloss.Style
	Title   lipgloss.Style
	Box     lipgloss.Style
	Cursor  lipgloss.Style
	Status  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Subtle  lipgloss.Style
}

func NewStyles() Styles {
	border := lipgloss.RoundedBorder()
	return Styles{
		Banner: lipgloss.NewStyle().
			Border(border).
			BorderForeground(lipgloss.Color("10")).
			Foreground(lipgloss.Color("10")).
			Padding(0, 2),
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Box:   lipgloss.NewStyle().Border(border).Padding(0, 1),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FA8072")). // Not pink, its Salmon obviously
			Bold(true),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginTop(1),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).MarginTop(1),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).MarginTop(1),
		Subtle:  lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	}
}

// ────────────────────────────────
// GENERIC CHOICE PICKER
// ────────────────────────────────

type Choice[T any] struct {
	Label string
	Value T
}

type Picker[T any] struct {
	title    string
	choices  []Choice[T]
	selected int
	width    int
}

func NewPicker[T any](title string, choices ...Choice[T]) *Picker[T] {
	return &Picker[T]{title: title, choices: choices, width: 40}
}

// yesNo is the boolean picker used by the audio flow; Yes is first so it is
// the default.
func yesNo(title string) *Picker[bool] {
	return NewPicker(title, Choice[bool]{"Yes", true}, Choice[bool]{"No", false})
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	runes := []rune(text)
	total := 0
	for i, r := range runes {
		rWidth := lipgloss.Width(string(r))
		if total+rWidth > width {
			return string(runes[:i])
		}
		total += rWidth
	}

	return text
}

func (p *Picker[T]) SetWidth(w int) {
	if w < 4 {
		p.width = 0
		return
	}
	p.width = w - 4
}

// Reset moves the cursor back to the first (default) choice.
func (p *Picker[T]) Reset() { p.selected = 0 }

func (p *Picker[T]) CursorUp() {
	if p.selected > 0 {
		p.selected--
	}
}

func (p *Picker[T]) CursorDown() {
	if p.selected < len(p.choices)-1 {
		p.selected++
	}
}

func (p *Picker[T]) Selected() (T, bool) {
	var zero T
	if len(p.choices) == 0 {
		return zero, false
	}
	return p.choices[p.selected].Value, true
}

func (p *Picker[T]) View(styles Styles) string {
	lines := make([]string, 0, len(p.choices)+1)
	lines = append(lines, styles.Title.Render(p.title))

	if len(p.choices) == 0 {
		lines = append(lines, styles.Subtle.Render("(no choices)"))
	}
	for i, c := range p.choices {
		cursor := "  "
		label := c.Label
		if p.width > 3 && lipgloss.Width(label) > p.width-2 {
			label = fmt.Sprintf("%s…", truncateToWidth(label, p.width-3))
		}
		if i == p.selected {
			cursor = "▸ "
			label = styles.Cursor.Render(label)
		}
		lines = append(lines, cursor+label)
	}

	return styles.Box.Width(p.width + 4).Render(strings.Join(lines, "\n"))
}
