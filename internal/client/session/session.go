// Package session holds the client-side session: the bearer token, the
// current user, and the last-activity timestamp, mirrored between memory
// and a durable local store. Inactivity expiry here is a client policy
// layered on top of the token's own server-side expiry.
package session

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/aligntogether/taskhub/internal/adapters/transport/http/dto"
)

// InactivityTimeout is how long a session survives without user activity.
const InactivityTimeout = 30 * time.Minute

// CheckInterval is how often the watcher compares now against last activity.
const CheckInterval = time.Minute

type Manager struct {
	store *Store
	now   func() time.Time

	mu           sync.Mutex
	token        string
	user         *dto.UserResponse
	lastActivity time.Time

	stopWatcher chan struct{}
}

func NewManager(store *Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Hydrate loads any persisted session into memory. It does not validate the
// token; the caller is expected to verify it against the server and Clear on
// failure.
func (m *Manager) Hydrate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.store.get(ctx, keyToken)
	if err == errNoValue {
		return nil
	}
	if err != nil {
		return err
	}
	m.token = token

	if rawUser, err := m.store.get(ctx, keyUser); err == nil {
		var u dto.UserResponse
		if json.Unmarshal([]byte(rawUser), &u) == nil {
			m.user = &u
		}
	}

	if rawTS, err := m.store.get(ctx, keyLastActivity); err == nil {
		if unix, err := strconv.ParseInt(rawTS, 10, 64); err == nil {
			m.lastActivity = time.Unix(unix, 0)
		}
	}
	return nil
}

// Begin stores a fresh session after login and stamps activity.
func (m *Manager) Begin(ctx context.Context, token string, user dto.UserResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	m.user = &user
	m.lastActivity = m.now()

	if err := m.store.set(ctx, keyToken, token); err != nil {
		return err
	}
	rawUser, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := m.store.set(ctx, keyUser, string(rawUser)); err != nil {
		return err
	}
	return m.store.set(ctx, keyLastActivity, strconv.FormatInt(m.lastActivity.Unix(), 10))
}

// SetToken replaces the token in place, keeping the user (refresh flow).
func (m *Manager) SetToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
	return m.store.set(ctx, keyToken, token)
}

// Touch records user activity now.
func (m *Manager) Touch(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return nil
	}
	m.lastActivity = m.now()
	return m.store.set(ctx, keyLastActivity, strconv.FormatInt(m.lastActivity.Unix(), 10))
}

// Clear wipes the session from memory and the durable store.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = ""
	m.user = nil
	m.lastActivity = time.Time{}
	return m.store.delete(ctx, keyToken, keyUser, keyLastActivity)
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) User() (dto.UserResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return dto.UserResponse{}, false
	}
	return *m.user, true
}

func (m *Manager) LoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// Expired reports whether the inactivity window has elapsed.
func (m *Manager) Expired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" || m.lastActivity.IsZero() {
		return false
	}
	return m.now().Sub(m.lastActivity) > InactivityTimeout
}

// StartWatcher runs the inactivity check on a ticker until the context is
// cancelled or StopWatcher is called. onExpire runs at most once.
func (m *Manager) StartWatcher(ctx context.Context, onExpire func()) {
	m.mu.Lock()
	if m.stopWatcher != nil {
		m.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	m.stopWatcher = stop
	m.mu.Unlock()

	go func() {
		defer func() {
			m.mu.Lock()
			if m.stopWatcher == stop {
				m.stopWatcher = nil
			}
			m.mu.Unlock()
		}()

		ticker := time.NewTicker(CheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if m.Expired() {
					onExpire()
					return
				}
			case <-stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) StopWatcher() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopWatcher != nil {
		close(m.stopWatcher)
		m.stopWatcher = nil
	}
}
