// Package inspector draws a panel with the components of the selected monster.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/monsters/game"
)

// Panel dimensions
const (
	PanelWidth   = 300
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Inspector tracks the selected monster and renders its panel.
type Inspector struct {
	selected    ecs.Entity
	hasSelected bool
	panelX      int32
	panelY      int32
	panelHeight int32
}

// NewInspector creates an inspector docked to the right edge of the screen.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		panelX: screenWidth - PanelWidth - 10,
		panelY: 10,
	}
}

// Resize keeps the panel docked after the window width changes.
func (ins *Inspector) Resize(screenWidth int32) {
	ins.panelX = screenWidth - PanelWidth - 10
}

// Select makes e the inspected monster.
func (ins *Inspector) Select(e ecs.Entity) {
	ins.selected = e
	ins.hasSelected = true
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected entity.
func (ins *Inspector) Selected() (ecs.Entity, bool) {
	return ins.selected, ins.hasSelected
}

// HandleClick reacts to a left click at screen coordinates and reports
// whether the panel consumed it.
func (ins *Inspector) HandleClick(mouseX, mouseY int32) bool {
	if !ins.hasSelected {
		return false
	}

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	if mouseX >= closeX && mouseX <= closeX+20 && mouseY >= closeY && mouseY <= closeY+20 {
		ins.Deselect()
		return true
	}

	return mouseX >= ins.panelX && mouseX <= ins.panelX+PanelWidth &&
		mouseY >= ins.panelY && mouseY <= ins.panelY+ins.panelHeight
}

// Draw renders the panel. A selection whose monster has died is dropped.
func (ins *Inspector) Draw(g *game.Game) {
	if !ins.hasSelected {
		return
	}
	m, ok := g.Monster(ins.selected)
	if !ok {
		ins.Deselect()
		return
	}

	sections := ExtractSections(g.Components(ins.selected))
	sections = append(sections, Section{Title: "Lifetime", Fields: ExtractFields(&m.Lifetime)})

	ins.panelHeight = ins.calculatePanelHeight(sections, len(m.DNA))

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, ins.panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(ins.panelHeight)},
		1,
		ColorPanelBorder,
	)

	// Header
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	title := fmt.Sprintf("MONSTER %d", m.Lineage.ID)
	if m.Name != "" {
		title = fmt.Sprintf("%s (%d)", m.Name, m.Lineage.ID)
	}
	rl.DrawText(title, ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding

	ins.drawSectionHeader(x, y, "DNA")
	y += 20
	for i, gene := range g.Genome(ins.selected) {
		rl.DrawText(fmt.Sprintf("%d. %c %s", i+1, gene.Letter(), gene.Name()), x, y, 14, ColorText)
		y += 16
	}
	y += 6

	for _, s := range sections {
		ins.drawSectionHeader(x, y, s.Title)
		y += 20
		for _, f := range s.Fields {
			y += DrawField(x, y, f)
		}
		y += 6
	}

	rl.DrawText("Click follow  C copy  Esc close", x, y, 12, ColorTextDim)
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

// calculatePanelHeight computes the panel height for the given content.
func (ins *Inspector) calculatePanelHeight(sections []Section, genes int) int32 {
	height := int32(HeaderHeight + PanelPadding)
	height += 20 + int32(genes)*16 + 6
	for _, s := range sections {
		height += 20 + 6
		for _, f := range s.Fields {
			height += FieldHeight(f)
		}
	}
	height += 16 + PanelPadding
	return height
}

// DrawSelectionHighlight outlines the selected monster's cell.
// rect maps a cell to its on-screen rectangle.
func (ins *Inspector) DrawSelectionHighlight(g *game.Game, rect func(x, y int) rl.Rectangle) {
	if !ins.hasSelected {
		return
	}
	m, ok := g.Monster(ins.selected)
	if !ok {
		return
	}
	r := rect(m.At.X, m.At.Y)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: r.X - 2, Y: r.Y - 2, Width: r.Width + 4, Height: r.Height + 4}, 2, rl.Yellow)
}
