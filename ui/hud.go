package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/monsters/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Monsters int
	Food     int
	Tick     int64
	Speed    int
	FPS      int32
	Paused   bool
	Hover    string // Description of the cell under the cursor
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Monsters: %d | Food: %d", data.Monsters, data.Food),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)

	if data.Hover != "" {
		rl.DrawText(data.Hover, 10, 95, 14, rl.Gray)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// GenomePanel lists the most common genomes with their share of the population.
type GenomePanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewGenomePanel creates a new genome panel.
func NewGenomePanel(x, y, width int32) *GenomePanel {
	return &GenomePanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the panel.
func (p *GenomePanel) Draw(census telemetry.Census) {
	r := p.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	height := padding*2 + lineHeight*3 + int32(len(census.Top))*(lineHeight+2)
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding

	y = r.DrawSectionHeader(x, y, "Genomes")
	y = r.DrawLabelValue(x, y, "Monsters", fmt.Sprint(census.Total))
	y = r.DrawLabelValue(x, y, "Distinct", fmt.Sprint(census.Distinct))

	for _, row := range census.Top {
		y = r.DrawShareBar(x, y, row.Genome, row.Share, p.width-padding*2)
	}
}

// PerfPanel renders tick phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Avg: %s  Max: %s  %.0f ticks/s",
			stats.AvgTickDuration.Round(time.Microsecond),
			stats.MaxTickDuration.Round(time.Microsecond),
			stats.TicksPerSecond),
		x, y, 14, rl.Yellow,
	)
	y += 16
	rl.DrawText(fmt.Sprintf("Turn cost: %s", stats.AvgTurnCost), x, y, 12, rl.LightGray)
	y += 14

	for _, phase := range telemetry.Phases() {
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
