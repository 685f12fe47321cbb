package core

// Color represents a foreground color for a screen cell.
// The frontend maps each value to an ANSI 256-color code.
type Color uint8

// Base terminal colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
	ColorGold
)

// Roles used by the flappy renderer, so the palette can change in one place.
const (
	ColorBird     = ColorBrightYellow
	ColorBeak     = ColorOrange
	ColorPipe     = ColorGreen
	ColorPipeCap  = ColorBrightGreen
	ColorGround   = ColorBrown
	ColorCoin     = ColorGold
	ColorHUD      = ColorBrightWhite
	ColorBest     = ColorYellow
	ColorGameOver = ColorBrightRed
	ColorHint     = ColorGray
)
