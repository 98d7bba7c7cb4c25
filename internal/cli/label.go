package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/platewise/backend/internal/nutrition"
)

const (
	labelWidth   = 40
	indentWidth  = 2
	percentWidth = 5
)

var (
	colorBorder = lipgloss.Color("240")
	colorMuted  = lipgloss.Color("245")
)

type labelStyles struct {
	box     lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
	bold    lipgloss.Style
	percent lipgloss.Style
}

func newLabelStyles(r *lipgloss.Renderer) labelStyles {
	return labelStyles{
		box: r.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),
		title:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(colorMuted),
		bold:    r.NewStyle().Bold(true),
		percent: r.NewStyle().Width(percentWidth).Align(lipgloss.Right),
	}
}

// RenderLabel renders a nutrition facts label as a boxed panel, styled
// for the color capabilities of w
func RenderLabel(w io.Writer, label nutrition.Label) string {
	st := newLabelStyles(lipgloss.NewRenderer(w))
	var sb strings.Builder

	sb.WriteString(st.title.Render("Nutrition Facts"))
	sb.WriteString("\n")
	if name := labelName(label); name != "" {
		sb.WriteString(name)
		sb.WriteString("\n")
	}
	sb.WriteString(st.muted.Render("Serving size " + label.Serving))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("━", labelWidth))
	sb.WriteString("\n")
	sb.WriteString(spread(st.title.Render("Calories"), st.title.Render(label.Calories), labelWidth))
	sb.WriteString("\n")
	sb.WriteString(spread("", st.muted.Render("% Daily Value"), labelWidth))

	for _, row := range label.Rows {
		sb.WriteString("\n")
		sb.WriteString(renderRow(st, row))
	}

	return st.box.Render(sb.String())
}

func labelName(label nutrition.Label) string {
	if label.Name != "" && label.Brand != "" {
		return label.Name + " (" + label.Brand + ")"
	}
	return label.Name
}

func renderRow(st labelStyles, row nutrition.LabelRow) string {
	amount := row.Value
	if amount != nutrition.Placeholder {
		amount += string(row.Unit)
	}

	name := row.Label
	if row.Indent == 0 {
		name = st.bold.Render(name)
	}
	left := strings.Repeat(" ", row.Indent*indentWidth) + name + " " + amount

	percent := ""
	if row.PercentDV != nil {
		percent = strconv.Itoa(*row.PercentDV) + "%"
	}
	return spread(left, st.percent.Render(percent), labelWidth)
}

// spread places left and right on one line of the given width
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
