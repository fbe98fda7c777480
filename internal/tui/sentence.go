package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
)

// missedSpace marks a sentence space that was typed as something else.
const missedSpace = '•'

type cell struct {
	s       string
	width   int
	isSpace bool
}

type span struct {
	start int
	end   int
}

// sentenceCells styles every rune of the sentence by comparing it with the
// typed text at the same position.
func sentenceCells(sentence, typed []rune) []cell {
	cursor := -1
	if len(typed) < len(sentence) {
		cursor = len(typed)
	}
	word := wordAt(wordSpans(sentence), cursor)

	out := make([]cell, 0, len(sentence))
	for i, want := range sentence {
		shown := want
		style := pendingStyle
		switch {
		case i < len(typed) && want == ' ' && typed[i] != ' ':
			shown = missedSpace
			style = incorrectStyle
		case i < len(typed) && typed[i] == want:
			style = correctStyle
		case i < len(typed):
			style = incorrectStyle
		case i == cursor:
			style = cursorStyle
		case want != ' ' && word != nil && i >= word.start && i < word.end:
			style = currentWordStyle
		}
		out = append(out, cell{
			s:       style.Render(string(shown)),
			width:   runewidth.RuneWidth(shown),
			isSpace: want == ' ',
		})
	}
	return out
}

func wordSpans(sentence []rune) []span {
	var spans []span
	start := -1
	for i, r := range sentence {
		if r == ' ' {
			if start != -1 {
				spans = append(spans, span{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		spans = append(spans, span{start: start, end: len(sentence)})
	}
	return spans
}

// wordAt returns the word holding the cursor, or the next word when the
// cursor sits on a space.
func wordAt(spans []span, cursor int) *span {
	if cursor < 0 {
		return nil
	}
	for i := range spans {
		if cursor < spans[i].end {
			return &spans[i]
		}
	}
	return nil
}

func joinCells(cells []cell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.s)
	}
	return b.String()
}

// wrapCells breaks lines at the last space that fits within width.
func wrapCells(cells []cell, width int) string {
	if width <= 0 {
		return joinCells(cells)
	}
	var lines []string
	line := make([]cell, 0, len(cells))
	lineWidth := 0
	lastSpace := -1

	for i := 0; i < len(cells); {
		c := cells[i]
		overflow := lineWidth+c.width > width && len(line) > 0
		if overflow && c.isSpace {
			lines = append(lines, joinCells(line))
			line = line[:0]
			lineWidth, lastSpace = 0, -1
			i++
			continue
		}
		if overflow {
			if lastSpace >= 0 {
				lines = append(lines, joinCells(line[:lastSpace]))
				line = append([]cell{}, line[lastSpace+1:]...)
			} else {
				lines = append(lines, joinCells(line))
				line = line[:0]
			}
			lineWidth, lastSpace = measure(line)
			continue
		}
		line = append(line, c)
		lineWidth += c.width
		if c.isSpace {
			lastSpace = len(line) - 1
		}
		i++
	}
	lines = append(lines, joinCells(line))
	return strings.Join(lines, "\n")
}

func measure(line []cell) (width, lastSpace int) {
	lastSpace = -1
	for i, c := range line {
		width += c.width
		if c.isSpace {
			lastSpace = i
		}
	}
	return width, lastSpace
}

func renderSentence(sentence, typed string, width int) string {
	return wrapCells(sentenceCells([]rune(sentence), []rune(typed)), width)
}
