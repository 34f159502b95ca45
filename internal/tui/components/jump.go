package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/holonet/internal/domain"
	"github.com/mmcdole/holonet/internal/search"
	"github.com/mmcdole/holonet/internal/tui/styles"
)

const maxVisibleResults = 10

// Jump is the fuzzy jump overlay
type Jump struct {
	input     textinput.Model
	title     string
	results   []search.Result
	cursor    int
	visible   bool
	width     int
	height    int
	prevQuery string
}

// NewJump creates a hidden jump overlay
func NewJump() Jump {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "> "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Jump{input: ti, title: "Jump to"}
}

// Show makes the overlay visible with an empty query
func (j *Jump) Show(title, placeholder string) tea.Cmd {
	j.visible = true
	j.title = title
	j.input.Placeholder = placeholder
	j.input.SetValue("")
	j.results = nil
	j.cursor = 0
	j.prevQuery = ""
	return j.input.Focus()
}

// Hide hides the overlay
func (j *Jump) Hide() {
	j.visible = false
	j.input.Blur()
}

// IsVisible returns true if the overlay is visible
func (j Jump) IsVisible() bool {
	return j.visible
}

// SetResults replaces the results and resets the cursor
func (j *Jump) SetResults(results []search.Result) {
	j.results = results
	j.cursor = 0
}

// SetSize updates the overlay dimensions
func (j *Jump) SetSize(width, height int) {
	j.width = width
	j.height = height
	j.input.Width = max(width/2, 20)
}

// Query returns the current query
func (j Jump) Query() string {
	return j.input.Value()
}

// QueryChanged reports whether the query changed since the last check
func (j *Jump) QueryChanged() bool {
	current := j.input.Value()
	if current != j.prevQuery {
		j.prevQuery = current
		return true
	}
	return false
}

// Selected returns the highlighted result
func (j Jump) Selected() (search.Result, bool) {
	if j.cursor < 0 || j.cursor >= len(j.results) {
		return search.Result{}, false
	}
	return j.results[j.cursor], true
}

// Update handles messages; the bool reports that a result was chosen
func (j Jump) Update(msg tea.Msg) (Jump, tea.Cmd, bool) {
	if !j.visible {
		return j, nil, false
	}

	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, JumpKeys.Escape):
			j.Hide()
			return j, nil, false

		case key.Matches(msg, JumpKeys.Enter):
			return j, nil, len(j.results) > 0

		case key.Matches(msg, JumpKeys.Down):
			if j.cursor < len(j.results)-1 {
				j.cursor++
			}
			return j, nil, false

		case key.Matches(msg, JumpKeys.Up):
			if j.cursor > 0 {
				j.cursor--
			}
			return j, nil, false
		}
	}

	j.input, cmd = j.input.Update(msg)
	return j, cmd, false
}

// View renders the overlay centered in its area
func (j Jump) View(noMatches string) string {
	if !j.visible {
		return ""
	}

	modalWidth := min(max(j.width*2/3, 40), 80)

	var b strings.Builder
	b.WriteString(styles.ModalTitleStyle.Render(j.title))
	b.WriteString("\n")
	b.WriteString(j.input.View())
	b.WriteString("\n\n")
	j.renderResults(&b, modalWidth, noMatches)

	content := lipgloss.NewStyle().
		Width(modalWidth - 4).
		Render(b.String())

	modal := styles.ModalStyle.
		Width(modalWidth).
		Render(content)

	return lipgloss.Place(j.width, j.height, lipgloss.Center, lipgloss.Center, modal)
}

func (j Jump) renderResults(b *strings.Builder, modalWidth int, noMatches string) {
	if len(j.results) == 0 {
		if strings.TrimSpace(j.input.Value()) != "" {
			b.WriteString(styles.DimStyle.Render(noMatches))
		}
		return
	}

	shown := min(len(j.results), maxVisibleResults)
	for i := 0; i < shown; i++ {
		r := j.results[i]
		selected := i == j.cursor

		title := styles.Truncate(r.Title, modalWidth-16)
		b.WriteString(styles.DimBadgeStyle.Render(KindBadge(r.Ref.Kind)))
		b.WriteString(" ")
		b.WriteString(HighlightMatches(title, r.MatchedIndexes, selected))
		b.WriteString("\n")
	}

	if len(j.results) > maxVisibleResults {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("... +%d", len(j.results)-maxVisibleResults)))
	}
}

// KindBadge returns the three letter badge of a resource type
func KindBadge(kind domain.Kind) string {
	switch kind {
	case domain.KindFilms:
		return "FLM"
	case domain.KindPeople:
		return "PPL"
	case domain.KindPlanets:
		return "PLN"
	case domain.KindSpecies:
		return "SPC"
	case domain.KindStarships:
		return "SHP"
	case domain.KindVehicles:
		return "VEH"
	default:
		return "???"
	}
}

// HighlightMatches renders text with the runes at matched positions emphasised.
// Consecutive runes with the same state are rendered as one segment.
func HighlightMatches(text string, matched []int, selected bool) string {
	normal, match := styles.NormalItemStyle.UnsetPadding(), styles.MatchHighlightStyle
	if selected {
		normal, match = styles.SelectedItemStyle.UnsetPadding(), styles.MatchHighlightSelectedStyle
	}
	if len(matched) == 0 {
		return normal.Render(text)
	}

	set := make(map[int]bool, len(matched))
	for _, i := range matched {
		set[i] = true
	}

	var out strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); {
		isMatch := set[i]
		start := i
		for i < len(runes) && set[i] == isMatch {
			i++
		}
		seg := string(runes[start:i])
		if isMatch {
			out.WriteString(match.Render(seg))
		} else {
			out.WriteString(normal.Render(seg))
		}
	}
	return out.String()
}
