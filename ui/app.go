package ui

import (
	"fmt"
	"log/slog"

	"github.com/atotto/clipboard"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/monsters/camera"
	"github.com/pthm-cable/monsters/game"
	"github.com/pthm-cable/monsters/grid"
	"github.com/pthm-cable/monsters/inspector"
	"github.com/pthm-cable/monsters/renderer"
	"github.com/pthm-cable/monsters/telemetry"
)

const controlsHint = "Space pause | N step | ,/. speed | Arrows/Wheel view | Home fit | Click follow | C copy | Tab controls"

// App is the interactive viewer around a running simulation.
// It must be created after the raylib window is open.
type App struct {
	game *game.Game

	camera    *camera.Camera
	board     *renderer.BoardRenderer
	inspector *inspector.Inspector
	overlays  *OverlayRegistry

	hud      *HUD
	genomes  *GenomePanel
	perf     *PerfPanel
	controls *ControlsPanel

	paused bool
	speed  int

	hover    grid.Coords
	hasHover bool

	// Census is refreshed once per tick rather than every frame
	census     telemetry.Census
	censusTick int64

	screenW, screenH float32
}

// NewApp creates the viewer. speed is the number of ticks run per frame.
func NewApp(g *game.Game, speed int) *App {
	cfg := g.Config()
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())

	if speed < 1 {
		speed = 1
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}

	a := &App{
		game:       g,
		camera:     camera.New(w, h, g.Width(), g.Height(), float32(cfg.Screen.CellSize)),
		board:      renderer.NewBoardRenderer(),
		inspector:  inspector.NewInspector(int32(w)),
		overlays:   NewOverlayRegistry(),
		hud:        NewHUD(),
		genomes:    NewGenomePanel(10, 120, 260),
		perf:       NewPerfPanel(10, int32(h)-140),
		controls:   NewControlsPanel(int32(w)/2-140, 10, 280),
		speed:      speed,
		censusTick: -1,
		screenW:    w,
		screenH:    h,
	}
	return a
}

// Update handles input and advances the simulation.
func (a *App) Update() {
	a.handleInput()
	a.game.Perf().RecordFrame()

	if a.paused {
		return
	}
	a.game.Steps(a.speed)
}

// Draw renders one frame.
func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	cfg := a.game.Config()
	a.board.Draw(a.game, a.camera, renderer.BoardView{
		ShowGrid:     a.overlays.IsEnabled(OverlayGrid),
		ShowHP:       a.overlays.IsEnabled(OverlayHP),
		ShowFollowed: a.overlays.IsEnabled(OverlayFollowed),
		MaxHP:        cfg.Energy.RestMaxHP * 2,
	})
	if a.hasHover {
		a.board.DrawHover(a.camera, a.hover.X, a.hover.Y)
	}
	a.inspector.DrawSelectionHighlight(a.game, a.cellRect)

	monsters, food := a.game.Population()
	a.hud.Draw(HUDData{
		Title:    "Monsters",
		Monsters: monsters,
		Food:     food,
		Tick:     a.game.Tick(),
		Speed:    a.speed,
		FPS:      rl.GetFPS(),
		Paused:   a.paused,
		Hover:    a.hoverText(),
	})

	if a.overlays.IsEnabled(OverlayGenomes) {
		a.genomes.Draw(a.currentCensus())
	}
	if a.overlays.IsEnabled(OverlayPerf) {
		a.perf.Draw(a.game.Perf().Stats())
	}
	if a.overlays.IsEnabled(OverlayHelp) {
		a.applyControls(a.controls.Draw(a.paused, a.speed, a.overlays))
	}

	a.inspector.Draw(a.game)
	a.hud.DrawControls(int32(a.screenH), controlsHint)
}

// applyControls acts on the controls panel's events.
func (a *App) applyControls(ev ControlEvents) {
	if ev.TogglePause {
		a.paused = !a.paused
	}
	if ev.Step {
		a.stepOnce()
	}
	if ev.ResetView {
		a.camera.Reset()
	}
	if ev.Speed > 0 {
		a.speed = ev.Speed
	}
}

// stepOnce pauses and runs a single tick.
func (a *App) stepOnce() {
	a.paused = true
	a.game.OneStep()
}

// currentCensus returns the genome census for the current tick.
func (a *App) currentCensus() telemetry.Census {
	if tick := a.game.Tick(); tick != a.censusTick {
		a.census = a.game.Census(a.game.Config().Telemetry.TopGenomes)
		a.censusTick = tick
	}
	return a.census
}

// hoverText describes the cell under the cursor.
func (a *App) hoverText() string {
	if !a.hasHover {
		return ""
	}
	occ := a.game.At(a.hover)
	switch {
	case occ.IsMonster():
		return fmt.Sprintf("%s  %s", a.hover, a.game.Info(occ.Monster))
	case occ.IsFood():
		return fmt.Sprintf("%s  food", a.hover)
	default:
		return a.hover.String()
	}
}

// hoveredMonster returns the monster under the cursor, if any.
func (a *App) hoveredMonster() (ecs.Entity, bool) {
	if !a.hasHover {
		return ecs.Entity{}, false
	}
	occ := a.game.At(a.hover)
	return occ.Monster, occ.IsMonster()
}

// copyInfo copies the hovered monster's info line, or the selected one's.
func (a *App) copyInfo() {
	e, ok := a.hoveredMonster()
	if !ok {
		e, ok = a.inspector.Selected()
	}
	if !ok {
		return
	}
	info := a.game.Info(e)
	if info == "" {
		return
	}
	if err := clipboard.WriteAll(info); err != nil {
		slog.Warn("clipboard unavailable", "error", err)
		return
	}
	slog.Info("copied monster info", "info", info)
}

func (a *App) cellRect(x, y int) rl.Rectangle {
	sx, sy, s := a.camera.CellRect(x, y)
	return rl.Rectangle{X: sx, Y: sy, Width: s, Height: s}
}
