package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"storefront-gateway/internal/app/service"
	"storefront-gateway/internal/app/store"
	"storefront-gateway/pkg/logger"
)

// SessionRefreshScheduler rotates the access token on a fixed interval so
// it never expires mid-session. The job stays registered while signed
// out and simply does nothing until tokens appear.
type SessionRefreshScheduler struct {
	cron        *cron.Cron
	authService service.AuthService
	session     *store.SessionStore
	interval    time.Duration
}

func NewSessionRefreshScheduler(authService service.AuthService, session *store.SessionStore, interval time.Duration) *SessionRefreshScheduler {
	return &SessionRefreshScheduler{
		cron:        cron.New(),
		authService: authService,
		session:     session,
		interval:    interval,
	}
}

// Start registers the refresh job and starts the cron loop.
func (s *SessionRefreshScheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	_, err := s.cron.AddFunc(spec, s.runRefresh)
	if err != nil {
		logger.Error("Failed to add cron job for session refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Session refresh scheduler started", map[string]interface{}{
		"interval": s.interval.String(),
	})
	return nil
}

// Stop halts the cron loop. Running jobs finish first.
func (s *SessionRefreshScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Session refresh scheduler stopped")
}

func (s *SessionRefreshScheduler) runRefresh() {
	if s.session.Token() == "" || s.session.RefreshToken() == "" {
		logger.Debug("No session to refresh, skipping scheduled rotation")
		return
	}

	logger.Info("Starting scheduled session refresh")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.authService.Refresh(ctx); err != nil {
		if errors.Is(err, service.ErrRefreshInFlight) {
			logger.Debug("Refresh already in flight, skipping scheduled rotation")
			return
		}
		logger.Error("Scheduled session refresh failed", err)
		return
	}

	logger.Info("Scheduled session refresh completed")
}
