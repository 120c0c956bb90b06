package view

import (
	"fmt"
	"io"
	"math"
	"strings"

	"finis-oculus/internal/dashboard/dto"
	"finis-oculus/pkg/common"

	"github.com/charmbracelet/lipgloss"
)

var (
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(30)
	tickerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	priceStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	gainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	neutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

const sparkTicks = "▁▂▃▄▅▆▇█"

// Renderer draws watchlist cards to a terminal.
type Renderer struct {
	out     io.Writer
	columns int
}

// NewRenderer creates a renderer laying cards out in rows of columns.
func NewRenderer(out io.Writer, columns int) *Renderer {
	if columns < 1 {
		columns = 3
	}
	return &Renderer{out: out, columns: columns}
}

// Render writes cards in rows, or a hint when the list is empty.
func (r *Renderer) Render(cards []dto.Card) error {
	if len(cards) == 0 {
		_, err := fmt.Fprintln(r.out, dimStyle.Render("Your watchlist is empty. Add a ticker to get started."))
		return err
	}

	var rows []string
	for i := 0; i < len(cards); i += r.columns {
		end := i + r.columns
		if end > len(cards) {
			end = len(cards)
		}
		boxes := make([]string, 0, end-i)
		for _, c := range cards[i:end] {
			boxes = append(boxes, RenderCard(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	_, err := fmt.Fprintln(r.out, lipgloss.JoinVertical(lipgloss.Left, rows...))
	return err
}

// RenderCard draws one card.
func RenderCard(c dto.Card) string {
	var b strings.Builder
	b.WriteString(tickerStyle.Render(c.Ticker))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(c.Name))
	b.WriteString("\n")
	b.WriteString(priceStyle.Render(fmt.Sprintf("$%.2f", c.Price)))
	b.WriteString(" ")
	b.WriteString(changeStyle(c.ChangeType).Render(c.Change))
	b.WriteString("\n")
	b.WriteString(sentimentStyle(c.SentimentScore).Render(fmt.Sprintf("%s %+.2f", c.SentimentLabel, c.SentimentScore)))
	b.WriteString("\n")
	b.WriteString(changeStyle(c.ChangeType).Render(Sparkline(c.Sparkline)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("AI signal: " + c.Signal))
	return cardStyle.Render(b.String())
}

// Sparkline draws values as block characters scaled between their min
// and max. A flat series renders at mid height.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	ticks := []rune(sparkTicks)
	var b strings.Builder
	for _, v := range values {
		idx := len(ticks) / 2
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(ticks)-1))
		}
		b.WriteRune(ticks[idx])
	}
	return b.String()
}

func changeStyle(changeType string) lipgloss.Style {
	switch changeType {
	case common.ChangePositive:
		return gainStyle
	case common.ChangeNegative:
		return lossStyle
	default:
		return neutralStyle
	}
}

func sentimentStyle(score float64) lipgloss.Style {
	switch {
	case score > 0:
		return gainStyle
	case score < 0:
		return lossStyle
	default:
		return neutralStyle
	}
}
