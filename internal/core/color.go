package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

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
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// letterPalette cycles through distinct colours for successive tile ranks.
var letterPalette = []Color{
	ColorWhite,
	ColorYellow,
	ColorOrange,
	ColorRed,
	ColorMagenta,
	ColorBlue,
	ColorCyan,
	ColorGreen,
	ColorBrightYellow,
	ColorBrightRed,
	ColorBrightMagenta,
	ColorBrightCyan,
}

// RankColor returns the display colour for a tile of the given rank (1-based).
func RankColor(rank int) Color {
	if rank <= 0 {
		return ColorGray
	}
	return letterPalette[(rank-1)%len(letterPalette)]
}
