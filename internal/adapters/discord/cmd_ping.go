package discord

import (
	"context"
	"fmt"
)

func (h *Handlers) ping(_ context.Context, inv *Invocation) error {
	start := h.now()
	msg, err := inv.Origin.Send(Reply{Content: "Pong"})
	if err != nil {
		return fmt.Errorf("send pong: %w", err)
	}
	elapsed := h.now().Sub(start)
	if _, err := inv.Origin.Edit(msg, Reply{Content: fmt.Sprintf("Pong! (%dms)", elapsed.Milliseconds())}); err != nil {
		return fmt.Errorf("edit pong: %w", err)
	}
	return nil
}
