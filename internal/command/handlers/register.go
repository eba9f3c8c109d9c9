// Package handlers provides explicit registration of all command handlers.
// Registration is explicit rather than init()-based, so the command set is
// visible in one place and free of import side effects.
package handlers

import (
	"sync"

	"github.com/Kargones/logroute/internal/command/handlers/checkhandler"
	"github.com/Kargones/logroute/internal/command/handlers/emithandler"
	"github.com/Kargones/logroute/internal/command/handlers/help"
	"github.com/Kargones/logroute/internal/command/handlers/version"
)

var registerOnce sync.Once

// RegisterAll registers all command handlers in the global registry.
// Call it from main() before looking up commands; repeated calls are no-ops.
func RegisterAll() {
	registerOnce.Do(func() {
		checkhandler.RegisterCmd()
		emithandler.RegisterCmd()
		help.RegisterCmd()
		version.RegisterCmd()
	})
}
