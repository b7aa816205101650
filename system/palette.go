package system

import (
	"slices"
	"sync"
	"sync/atomic"
)

const (
	DefaultForeground = "Black"
	DefaultBackground = "Yellow"
)

// VGAColors are the color names the text console understands.
var VGAColors = []string{
	"Black", "Blue", "Green", "Cyan", "Red", "Magenta", "Brown", "LightGray",
	"DarkGray", "LightBlue", "LightGreen", "LightCyan", "LightRed", "Pink", "Yellow", "White",
}

// IsVGAColor reports whether name is one of VGAColors.
func IsVGAColor(name string) bool {
	return slices.Contains(VGAColors, name)
}

// Palette is the default ColorSink.
type Palette struct {
	mu      sync.RWMutex
	fg, bg  string
	changed atomic.Bool
}

func NewPalette(fg, bg string) *Palette {
	return &Palette{fg: fg, bg: bg}
}

func (p *Palette) SetColors(fg, bg string) {
	p.mu.Lock()
	p.fg, p.bg = fg, bg
	p.mu.Unlock()

	p.changed.Store(true)
}

func (p *Palette) Colors() (string, string) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.fg, p.bg
}

func (p *Palette) Changed() bool {
	return p.changed.Swap(false)
}
