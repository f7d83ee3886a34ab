package testutil

import "github.com/specialistvlad/mkr/internal/handlers"

// SimpleModule registers a single action type.
type SimpleModule struct {
	ActionName string
	Handler    *handlers.RegisteredHandler
}

// Register implements the handlers.Module interface.
func (m *SimpleModule) Register(h *handlers.Handlers) {
	if m.ActionName != "" && m.Handler != nil {
		h.RegisterHandler(m.ActionName, m.Handler)
	}
}
