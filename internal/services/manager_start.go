package services

import (
	"context"
)

// Start runs the HTTP server and background workers until bgCtx is canceled.
func (m *Manager) Start(bgCtx context.Context) {
	if m.server != nil {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.logger.Info("HTTP server starting", "host", m.cfg.Server.Host, "port", m.cfg.Server.HTTPPort)
			if err := m.server.Start(bgCtx); err != nil {
				m.logger.Error("HTTP server failed", "error", err)
				m.fail(err)
			}
		}()
	}

	if m.relay != nil {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.relay.RunWithRestart(bgCtx, m.cfg.Relay.RestartBackoff, m.cfg.Relay.MaxRestartBackoff)
		}()
	}
}

func (m *Manager) fail(err error) {
	select {
	case m.failed <- err:
	default:
	}
}
