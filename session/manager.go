package session

import (
	"context"
	"sync"
	"time"

	"github.com/hairizuanbinnoorazman/bizadmin/auth"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
)

// Manager issues and revokes the sessions that back sandbox access tokens.
// Expired sessions are swept by a background loop started with StartCleanup.
type Manager struct {
	store    *Store
	duration time.Duration
	logger   logger.Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewManager creates a manager whose sessions live for duration.
func NewManager(duration time.Duration, log logger.Logger) *Manager {
	return &Manager{
		store:    NewStore(),
		duration: duration,
		logger:   log,
		stopCh:   make(chan struct{}),
	}
}

// Create issues a session for a logged-in user. The caller encodes its ID into
// an access token.
func (m *Manager) Create(userID, email string, role auth.Role) (*Session, error) {
	sessionID, err := generateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &Session{
		ID:        sessionID,
		UserID:    userID,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.duration),
	}
	m.store.Set(sess)

	m.logger.Info(context.Background(), "access session issued", map[string]interface{}{
		"user_id":    userID,
		"role":       string(role),
		"expires_at": sess.ExpiresAt.UTC().Format(time.RFC3339),
		"active":     m.store.Len(),
	})

	return sess, nil
}

// Get resolves the session behind a decoded access token.
func (m *Manager) Get(sessionID string) (*Session, error) {
	return m.store.Get(sessionID)
}

// Revoke ends a session so its access token stops working. It reports whether
// a session was removed.
func (m *Manager) Revoke(sessionID string) bool {
	sess, ok := m.store.Delete(sessionID)
	if !ok {
		m.logger.Debug(context.Background(), "revoke of unknown session", nil)
		return false
	}

	m.logger.Info(context.Background(), "access session revoked", map[string]interface{}{
		"user_id": sess.UserID,
		"role":    string(sess.Role),
	})
	return true
}

// Active counts the sessions currently held, expired ones not yet swept included.
func (m *Manager) Active() int {
	return m.store.Len()
}

// StartCleanup sweeps expired sessions every interval until StopCleanup.
func (m *Manager) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				removed := m.store.Cleanup()
				if removed > 0 {
					m.logger.Info(context.Background(), "cleaned up expired sessions", map[string]interface{}{
						"removed_count": removed,
						"active":        m.store.Len(),
					})
				}
			case <-m.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// StopCleanup stops the cleanup goroutine. Safe to call more than once.
func (m *Manager) StopCleanup() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}
