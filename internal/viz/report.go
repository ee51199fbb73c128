package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rotsim/internal/vote"
)

// Summary is everything Report needs about a finished run.
type Summary struct {
	Title   string
	Steps   int
	Final   int
	Winner  vote.Run
	Top     []vote.Run
	Metrics map[string]float64
	Weights []float64
	Centers []float64
	Stream  []int
}

// Report renders a run summary panel followed by the bucket histogram and
// the classification trace.
func Report(s Summary) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(strings.ToUpper(s.Title)) + "\n")
	b.WriteString(row("steps", fmt.Sprintf("%d", s.Steps)))
	b.WriteString(row("final bucket", fmt.Sprintf("%d", s.Final)))
	b.WriteString(labelStyle.Render("winner") + winnerStyle.Render(
		fmt.Sprintf("bucket %d (%d votes)", s.Winner.Value, s.Winner.Count)) + "\n")

	if len(s.Top) > 0 {
		parts := make([]string, len(s.Top))
		for i, r := range s.Top {
			parts[i] = fmt.Sprintf("%d:%d", r.Value, r.Count)
		}
		b.WriteString(row("ranking", strings.Join(parts, "  ")))
	}

	names := make([]string, 0, len(s.Metrics))
	for name := range s.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString(row(name, fmt.Sprintf("%.4f", s.Metrics[name])))
	}

	out := panelStyle.Render(strings.TrimRight(b.String(), "\n"))

	if len(s.Weights) > 0 {
		out += "\n\n" + Bars(s.Weights, s.Centers, 40)
	}
	if len(s.Stream) > 1 {
		out += "\n\n" + Trace(s.Stream, 80, 10)
	}
	return out
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

// Bars draws one horizontal bar per bucket scaled to the largest weight.
// The leading bucket is highlighted.
func Bars(weights, centers []float64, width int) string {
	if len(weights) == 0 {
		return ""
	}
	best := 0
	for i, w := range weights {
		if w > weights[best] {
			best = i
		}
	}
	top := weights[best]

	lines := make([]string, len(weights))
	for i, w := range weights {
		n := 0
		if top > 0 && w > 0 {
			n = int(math.Round(w / top * float64(width)))
		}
		bar := strings.Repeat("█", n)
		style := barStyle
		if i == best {
			style = barBestStyle
		}

		label := fmt.Sprintf("%3d", i)
		if i < len(centers) {
			label = fmt.Sprintf("%3d %5.1f°", i, centers[i]*180/math.Pi)
		}
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Top,
			label+" ", style.Render(bar), fmt.Sprintf(" %.4g", w))
	}
	return strings.Join(lines, "\n")
}

// Trace plots the classification stream, downsampled to width points.
func Trace(stream []int, width, height int) string {
	data := make([]float64, len(stream))
	for i, c := range stream {
		data[i] = float64(c)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("classification over time"),
	)
}
