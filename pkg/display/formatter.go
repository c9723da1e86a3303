package display

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Outcome icons.
const (
	iconPath    = "•"
	iconInfo    = "i"
	iconSuccess = "✔"
	iconWarning = "✘"
)

// New creates a new formatter based on configuration.
func New(cfg Config) Formatter {
	if cfg.Format == "" {
		cfg.Format = FormatText
	}

	switch cfg.Format {
	case FormatJSON:
		return &jsonFormatter{config: cfg}
	case FormatText:
		fallthrough
	default:
		return &textFormatter{config: cfg, styles: newPalette(cfg.Color)}
	}
}

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// ResolveColor decides whether w should receive ANSI colors.
func ResolveColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		f, ok := w.(fdWriter)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format: %q", name)
	}
}

// ParseColorMode validates a color mode name.
func ParseColorMode(name string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(name)) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	default:
		return "", fmt.Errorf("unknown color mode: %q", name)
	}
}
