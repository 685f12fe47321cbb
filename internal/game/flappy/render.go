package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Terminal glyphs
const (
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	GroundChar    = '▒'
	BodyChar      = '●'
)

var wingGlyphs = [wingFrames]rune{'^', '-', 'v'}

// viewport maps world units onto screen cells.
type viewport struct {
	sx, sy     float64
	cols, rows int
}

func newViewport(world World, dst *core.Screen) viewport {
	v := viewport{cols: dst.Width(), rows: dst.Height()}
	if world.Width > 0 {
		v.sx = float64(v.cols) / world.Width
	}
	if world.Height > 0 {
		v.sy = float64(v.rows) / world.Height
	}
	return v
}

func (v viewport) col(x float64) int { return int(math.Floor(x * v.sx)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * v.sy)) }

// span returns the number of cells a world length covers, at least one.
func (v viewport) span(length, scale float64) int {
	return core.Max(1, int(math.Round(length*scale)))
}

// Render draws the snapshot onto dst, scaling the world to fill it.
func Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	v := newViewport(snap.World, dst)

	groundRow := core.Clamp(v.row(snap.World.Height-snap.Ground), 1, v.rows-1)
	dst.FillArea(0, groundRow, v.cols, v.rows-groundRow, GroundChar, core.ColorGround)

	for _, p := range snap.Pipes {
		drawPipe(dst, v, p, snap, groundRow)
	}
	if snap.BonusEnabled {
		for _, c := range snap.Coins {
			drawCoin(dst, v, c, snap.BobAmplitude)
		}
	}
	drawActor(dst, v, snap.Actor)
	drawHUD(dst, snap)

	switch {
	case snap.Phase == PhasePreStart:
		y := dst.Height() / 3
		dst.DrawTextCentered(y, snap.Mode.Title(), core.ColorHUD)
		dst.DrawTextCentered(y+1, "Press SPACE to flap", core.ColorHint)
	case snap.Phase == PhaseActive && snap.Paused:
		drawCenteredMessage(dst, core.ColorHUD, "PAUSED", "Press P to resume")
	case snap.Phase == PhaseOver && snap.Summary != nil:
		drawSummary(dst, *snap.Summary, snap.BonusEnabled)
	}
}

func drawPipe(dst *core.Screen, v viewport, p Pipe, snap Snapshot, groundRow int) {
	left := v.col(p.X)
	right := int(math.Ceil((p.X + snap.PipeWidth) * v.sx))
	width := right - left
	if width <= 0 {
		return
	}

	topRows := core.Min(int(math.Ceil(p.TopHeight*v.sy)), groundRow)
	if topRows > 0 {
		dst.FillArea(left, 0, width, topRows-1, PipeChar, core.ColorPipe)
		dst.DrawHLine(left, topRows-1, width, PipeCapTop, core.ColorPipeCap)
	}

	bottomRow := v.row(p.TopHeight + snap.PipeGap)
	if bottomRow < groundRow {
		dst.DrawHLine(left, bottomRow, width, PipeCapBottom, core.ColorPipeCap)
		dst.FillArea(left, bottomRow+1, width, groundRow-bottomRow-1, PipeChar, core.ColorPipe)
	}
}

func coinGlyph(value int) rune {
	switch {
	case value >= 10:
		return '$'
	case value >= 5:
		return '◎'
	case value >= 3:
		return 'O'
	default:
		return 'o'
	}
}

func drawCoin(dst *core.Screen, v viewport, c Coin, amplitude float64) {
	cx, cy := c.Rect().Center()
	dst.SetColored(v.col(cx), v.row(cy+c.BobOffset(amplitude)), coinGlyph(c.Value), core.ColorCoin)
}

func headGlyph(tilt float64) rune {
	switch {
	case tilt <= -10:
		return '◥'
	case tilt >= 10:
		return '◢'
	default:
		return '▶'
	}
}

func drawActor(dst *core.Screen, v viewport, a Actor) {
	x := v.col(a.X)
	y := v.row(a.Y)
	w := v.span(a.Width, v.sx)
	h := v.span(a.Height, v.sy)

	dst.FillArea(x, y, w, h, BodyChar, core.ColorBird)
	if w > 1 {
		dst.SetColored(x, y+h/2, wingGlyphs[a.WingFrame%wingFrames], core.ColorBird)
	}
	dst.SetColored(x+w-1, y, headGlyph(a.Tilt), core.ColorBeak)
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	left := fmt.Sprintf(" Score: %d ", snap.Score)
	if snap.BonusEnabled {
		left += fmt.Sprintf("Coins: %d ", snap.CoinTotal)
	}
	dst.DrawTextColored(1, 0, left, core.ColorHUD)

	best := fmt.Sprintf(" Best: %d ", snap.Best)
	dst.DrawTextColored(dst.Width()-len(best)-1, 0, best, core.ColorBest)
}

func drawSummary(dst *core.Screen, s Summary, bonus bool) {
	result := fmt.Sprintf("Score: %d", s.Score)
	if bonus {
		result = fmt.Sprintf("Score: %d  Coins: %d  Total: %d", s.Score, s.Coins, s.Total)
	}
	best := fmt.Sprintf("Best: %d", s.Best)
	if s.NewBest {
		best = "NEW BEST!"
	}
	drawCenteredMessage(dst, core.ColorGameOver, "GAME OVER", result, best, "R retry  |  Esc menu")
}

// drawCenteredMessage draws a framed message box in the middle of the screen.
// The first line is the title.
func drawCenteredMessage(dst *core.Screen, titleColor core.Color, title string, lines ...string) {
	inner := len([]rune(title))
	for _, l := range lines {
		inner = core.Max(inner, len([]rune(l)))
	}
	boxW := inner + 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillArea(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorHUD)

	dst.DrawTextCentered(boxY+1, title, titleColor)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l, core.ColorHUD)
	}
}
