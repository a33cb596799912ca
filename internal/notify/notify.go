// Package notify sends a best-effort desktop notification when the tool
// exits. Failures are ignored; a missing notifier must never affect the
// exit path.
package notify

import (
	"context"
	"os/exec"
	"time"

	"pingscope/internal/platform"
)

const sendTimeout = 3 * time.Second

// Exit announces that the tool is exiting. Only POSIX desktops with
// notify-send get a notification; other families are a no-op.
func Exit(family platform.Family) {
	if family != platform.FamilyPOSIX {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	_ = exec.CommandContext(ctx, "notify-send", "pingscope", "Exiting by user request").Run()
}
