package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(22)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFF00"))
)

// printer writes styled CLI output
type printer struct {
	w     io.Writer
	plain bool
	bar   progress.Model
}

func newPrinter(w io.Writer, plain bool) *printer {
	return &printer{
		w:     w,
		plain: plain,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (p *printer) render(style lipgloss.Style, s string) string {
	if p.plain {
		return s
	}
	return style.Render(s)
}

func (p *printer) header(title string) {
	fmt.Fprintln(p.w, p.render(titleStyle, title))
}

func (p *printer) section(title string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.render(sectionStyle, title))
}

func (p *printer) info(label string, format string, args ...any) {
	l := label + ":"
	if p.plain {
		l = fmt.Sprintf("%-22s", l)
	} else {
		l = labelStyle.Render(l)
	}
	fmt.Fprintf(p.w, "  %s%s\n", l, fmt.Sprintf(format, args...))
}

func (p *printer) success(msg string) {
	fmt.Fprintln(p.w, p.render(successStyle, msg))
}

func (p *printer) warn(msg string) {
	fmt.Fprintln(p.w, p.render(warnStyle, msg))
}

// progress prints one line per finished module
func (p *printer) progress(done, total int, line string) {
	pct := 1.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	if p.plain {
		fmt.Fprintf(p.w, "  [%3.0f%%] %s\n", pct*100, line)
		return
	}
	fmt.Fprintf(p.w, "  %s %s\n", p.bar.ViewAs(pct), line)
}

func meanStd(mean, std float64) string {
	return fmt.Sprintf("%.2f ± %.2f", mean, std)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
