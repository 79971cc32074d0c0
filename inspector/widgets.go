package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/monsters/components"
)

// Widget colors
var (
	ColorBarBg    = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill  = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorBarLow   = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorText     = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim  = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorBoolOn   = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff  = rl.Color{R: 80, G: 80, B: 80, A: 255}
	ColorSwatchBd = rl.Color{R: 200, G: 200, B: 200, A: 255}
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	text := FormatValue(value, options["fmt"])
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(text, x+100, y, 14, ColorText)
	return 18
}

// DrawBar renders a horizontal bar with the value printed after it.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	maxVal := GetMax(options)
	ratio := value / maxVal
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	barWidth := int32(120)
	barHeight := int32(14)

	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + 100
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)

	fillColor := ColorBarFill
	if ratio < 0.3 {
		fillColor = ColorBarLow
	}
	rl.DrawRectangle(barX, y, int32(float32(barWidth)*ratio), barHeight, fillColor)

	rl.DrawText(fmt.Sprintf("%.0f", value), barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	indicatorX := x + 100
	indicatorSize := int32(14)

	color := ColorBoolOff
	text := "NO"
	if value {
		color = ColorBoolOn
		text = "YES"
	}

	rl.DrawRectangle(indicatorX, y, indicatorSize, indicatorSize, color)
	rl.DrawText(text, indicatorX+indicatorSize+5, y, 14, color)

	return 18
}

// DrawColor renders a swatch followed by the hex code.
func DrawColor(x, y int32, name string, c components.Color) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	swatchX := x + 100
	rl.DrawRectangle(swatchX, y, 28, 14, rl.Color{R: c.R, G: c.G, B: c.B, A: 255})
	rl.DrawRectangleLines(swatchX, y, 28, 14, ColorSwatchBd)
	rl.DrawText(c.String(), swatchX+34, y, 14, ColorText)

	return 18
}

// DrawField renders a field using its widget type.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	case WidgetColor:
		if v, ok := field.Value.(components.Color); ok {
			return DrawColor(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}

// FieldHeight returns the vertical space DrawField uses.
func FieldHeight(Field) int32 {
	return 18
}
