package manager

import (
	"time"

	"chatbotd/pkg/types"
)

// Status builds the response for GET /status.
func (m *Manager) Status() types.StatusResponse {
	state := StateUnavailable
	if m.handle.IsReady() {
		state = StateReady
	}
	now := time.Now()
	return types.StatusResponse{
		State:          string(state),
		Reason:         m.handle.Reason(),
		ModelPath:      m.cfg.ModelPath,
		ContextSize:    m.cfg.ContextSize,
		GPULayers:      m.cfg.GPULayers,
		UptimeSeconds:  int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix: now.Unix(),
	}
}
