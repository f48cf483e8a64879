package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// initHTTPServer derives request contexts from ctx so open streams end when the service is canceled.
func (s *serverImpl) initHTTPServer(ctx context.Context) {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.HTTPPort),
		Handler:      s.wrapMiddleware(s.httpMux),
		ReadTimeout:  s.cfg.HTTPReadTimeout,
		WriteTimeout: s.cfg.HTTPWriteTimeout,
		IdleTimeout:  s.cfg.HTTPIdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
}

func (s *serverImpl) runHTTPServer(errChan chan<- error) {
	s.logger.Info("Starting HTTP server", "port", s.cfg.HTTPPort)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errChan <- fmt.Errorf("http server error: %w", err)
	}
}
