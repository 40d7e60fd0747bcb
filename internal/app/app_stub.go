//go:build !ebiten

package app

import (
	"github.com/charmbracelet/log"

	"molten-core/internal/core"
)

// Run reports that the GUI build tag is missing.
func Run(core.Scene, *Config, *log.Logger) error {
	return ErrNoGUI
}
