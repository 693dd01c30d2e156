package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	blockStyle = lipgloss.NewStyle().
			PaddingLeft(2)
)

// renderReport formats one section per planned file.
func renderReport(results []result) string {
	sections := make([]string, 0, len(results))
	for _, r := range results {
		sections = append(sections, renderResult(r))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderResult(r result) string {
	title := titleStyle.Render(r.Path)
	if r.Err != nil {
		return lipgloss.JoinVertical(lipgloss.Left, title, blockStyle.Render(errorStyle.Render(r.Err.Error())), "")
	}

	var b strings.Builder
	plan := r.Plan
	line := func(label, format string, args ...any) {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-10s", label)), fmt.Sprintf(format, args...))
	}

	line("plan", "%s %s", plan.ID, dimStyle.Render(r.Elapsed.Round(time.Microsecond).String()))
	line("world", "tier %s, %d cameras, %d lights, %d bytes",
		plan.World.Tier, len(r.Scene.Cameras), len(r.Scene.Lights), plan.World.Size)
	line("materials", "tier %s, %d in %d %s blocks of %d",
		plan.Materials.Tier, plan.Materials.Container.Count, len(plan.Materials.Container.Buckets),
		plan.Materials.Settings.Usage, plan.Materials.PerBlock)
	line("textures", "%d in %d blocks of %d",
		plan.Textures.Container.Count, len(plan.Textures.Container.Buckets), plan.Textures.Settings.ElementRange)

	for _, p := range plan.Primitives {
		line("primitive", "mesh %d/%d key %s stride %d, %d vertices, %d indices",
			p.Mesh, p.Primitive, keyStyle.Render(p.Key.String()), p.Stride, p.VertexCount, p.IndexCount)
	}

	line("ledger", "%d entries, %d bytes", len(plan.Ledger), ledgerBytes(plan))

	for i, a := range r.Arenas {
		line("arena", "%d %s/%s %d bytes", i, a.Usage, a.Visibility, a.Size)
	}
	if r.Uploaded {
		line("device", "uploaded")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, blockStyle.Render(strings.TrimRight(b.String(), "\n")), "")
}
