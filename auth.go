package sublight

import (
	"context"
	"fmt"
	"time"

	"github.com/angelospk/sublight-go/internal/constants"
	apperrors "github.com/angelospk/sublight-go/pkg/core/errors"
	"github.com/angelospk/sublight-go/pkg/core/metrics"
	log "github.com/sirupsen/logrus"
)

// idleLogoutTimeout bounds the logout call made by the idle timer.
const idleLogoutTimeout = 30 * time.Second

// Login opens a session unless one is already open and pushes the idle
// logout forward. Every operation that needs a session calls it first.
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.loginLocked(ctx)
	return err
}

// Logout closes the current session. It is a no-op without a session.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logoutLocked(ctx)
}

// IsLoggedIn reports whether a session is currently open.
func (c *Client) IsLoggedIn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != ""
}

// ensureSession logs in if needed and returns the session and service to use.
func (c *Client) ensureSession(ctx context.Context) (string, Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	session, err := c.loginLocked(ctx)
	if err != nil {
		return "", nil, err
	}
	return session, c.service, nil
}

// holdSession logs in if needed and keeps the session open until release is
// called. The idle timer is paused while any hold is outstanding.
func (c *Client) holdSession(ctx context.Context) (session string, svc Service, release func(), err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	session, err = c.loginLocked(ctx)
	if err != nil {
		return "", nil, nil, err
	}
	c.holds++
	c.cancelIdleTimer()

	release = func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.holds--
		if c.holds == 0 && c.session != "" {
			c.armIdleTimer()
		}
	}
	return session, c.service, release, nil
}

func (c *Client) loginLocked(ctx context.Context) (string, error) {
	if c.clientInfo.ClientID == "" {
		return "", apperrors.ErrNotConfigured
	}

	if c.service == nil {
		c.service = c.newService()
	}

	if c.session == "" {
		args := []string{constants.InstallationID}

		var (
			session string
			err     error
			kind    string
		)
		if c.username == "" {
			kind = "anonymous"
			session, err = c.service.LogInAnonymous(ctx, c.clientInfo, args)
		} else {
			kind = "user"
			session, err = c.service.LogIn(ctx, c.username, c.passwordHash, c.clientInfo, args)
		}
		if err != nil {
			return "", fmt.Errorf("sublight login failed: %w", err)
		}

		c.session = session
		metrics.LoginsTotal.WithLabelValues(kind).Inc()
		c.logger.WithFields(log.Fields{"kind": kind, "user": c.username}).Debug("Sublight session opened")
	}

	if c.holds == 0 {
		c.armIdleTimer()
	}
	return c.session, nil
}

func (c *Client) logoutLocked(ctx context.Context) error {
	if c.session == "" {
		return nil
	}

	if err := c.service.LogOut(ctx, c.session); err != nil {
		return fmt.Errorf("sublight logout failed: %w", err)
	}

	c.session = ""
	c.cancelIdleTimer()
	c.logger.Debug("Sublight session closed")
	return nil
}

// armIdleTimer schedules a logout after the idle timeout, replacing any
// previously scheduled one.
func (c *Client) armIdleTimer() {
	c.cancelIdleTimer()
	gen := c.timerGen
	c.idleTimer = time.AfterFunc(c.idleTimeout, func() {
		c.idleLogout(gen)
	})
}

func (c *Client) cancelIdleTimer() {
	if c.idleTimer != nil {
		c.idleTimer.Stop()
		c.idleTimer = nil
	}
	// A callback that already fired but still waits for the lock sees a new
	// generation and does nothing.
	c.timerGen++
}

func (c *Client) idleLogout(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.timerGen || c.session == "" || c.holds > 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), idleLogoutTimeout)
	defer cancel()

	if err := c.logoutLocked(ctx); err != nil {
		c.logger.WithError(err).Warn("Idle logout failed")
		return
	}
	metrics.IdleLogoutsTotal.Inc()
	c.logger.Info("Sublight session closed after inactivity")
}
