package watch

import (
	"github.com/gen2brain/beeep"

	"fauna-warden/internal/logger"
)

// Notify sends a desktop notification. Notification support varies by
// platform, so a failure only warns and never interrupts a watch session.
func Notify(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		logger.Warn("Watch", "desktop notification failed: "+err.Error())
	}
}
