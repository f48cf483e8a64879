package services

import (
	"context"
)

// Shutdown stops the server, waits for background workers and closes connections.
// Callers cancel the context passed to Start first so workers can exit.
func (m *Manager) Shutdown(ctx context.Context) {
	if m.storage != nil {
		defer func() {
			if err := m.storage.Close(ctx); err != nil {
				m.logger.Error("Error closing storage", "error", err)
			}
		}()
	}

	if m.server != nil {
		m.logger.Info("Stopping HTTP server...")
		if err := m.server.Stop(ctx); err != nil {
			m.logger.Error("Error shutting down HTTP server", "error", err)
		}
	}

	m.logger.Info("Waiting for background tasks to finish...")
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("Background tasks finished")
	case <-ctx.Done():
		m.logger.Warn("Timeout waiting for background tasks")
	}

	if m.publisher != nil {
		m.logger.Info("Closing NATS connection...")
		if err := m.publisher.Close(); err != nil {
			m.logger.Error("Error closing NATS connection", "error", err)
		}
	}
}
