// Package session tracks per-player purchase state for the lifetime of a
// connection. State is created on connect, purchase history is cleared on
// every spawn, and the record is discarded on disconnect.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrNotConnected is returned when an operation references a player with no
// purchase state. Hitting it on a purchase path is a programming or event
// ordering bug in the host integration.
var ErrNotConnected = errors.New("player has no purchase state")

// state is one connected player's purchase standing.
type state struct {
	// token identifies this connection; a reconnect mints a new one, so
	// deferred callbacks holding a stale token become no-ops.
	token uuid.UUID
	// bought counts purchases per weapon key this life.
	bought map[string]int
	// onCooldown blocks all purchases while set. Deliberately not cleared
	// on spawn; only the deferred cooldown timer clears it.
	onCooldown bool
}

// Manager owns all per-player purchase state.
// All methods are safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	players map[string]*state // player ID → state
}

// NewManager creates an empty session Manager.
func NewManager() *Manager {
	return &Manager{players: make(map[string]*state)}
}

// Connect creates fresh purchase state for a player.
//
// Precondition: playerID must be non-empty.
// Postcondition: Returns the session token for this connection, or an error
// if state already exists — connect events are assumed unique per session.
func (m *Manager) Connect(playerID string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.players[playerID]; exists {
		return uuid.Nil, fmt.Errorf("player %q already has purchase state", playerID)
	}

	token := uuid.New()
	m.players[playerID] = &state{
		token:  token,
		bought: make(map[string]int),
	}
	return token, nil
}

// Disconnect discards a player's purchase state. Calling it for a player
// with no state is a no-op; the host may deliver unpaired disconnects.
//
// Postcondition: Returns true if state existed and was removed.
func (m *Manager) Disconnect(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.players[playerID]; !exists {
		return false
	}
	delete(m.players, playerID)
	return true
}

// ClearHistory resets a player's purchase counts for a new life. The
// cooldown flag is left untouched; it persists across deaths until its
// timer fires.
func (m *Manager) ClearHistory(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, exists := m.players[playerID]
	if !exists {
		return fmt.Errorf("player %q: %w", playerID, ErrNotConnected)
	}
	st.bought = make(map[string]int)
	return nil
}

// Connected reports whether the player has purchase state.
func (m *Manager) Connected(playerID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, exists := m.players[playerID]
	return exists
}

// Token returns the session token minted for the player's current connection.
func (m *Manager) Token(playerID string) (uuid.UUID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, exists := m.players[playerID]
	if !exists {
		return uuid.Nil, false
	}
	return st.token, true
}

// BoughtCount returns how many times the player bought the weapon this life.
func (m *Manager) BoughtCount(playerID, weaponKey string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, exists := m.players[playerID]
	if !exists {
		return 0, fmt.Errorf("player %q: %w", playerID, ErrNotConnected)
	}
	return st.bought[weaponKey], nil
}

// RecordPurchase increments the player's purchase count for the weapon.
//
// Postcondition: Returns the new count (1 for a first purchase).
func (m *Manager) RecordPurchase(playerID, weaponKey string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, exists := m.players[playerID]
	if !exists {
		return 0, fmt.Errorf("player %q: %w", playerID, ErrNotConnected)
	}
	st.bought[weaponKey]++
	return st.bought[weaponKey], nil
}

// OnCooldown reports whether the player's purchase cooldown is armed.
func (m *Manager) OnCooldown(playerID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, exists := m.players[playerID]
	if !exists {
		return false, fmt.Errorf("player %q: %w", playerID, ErrNotConnected)
	}
	return st.onCooldown, nil
}

// ArmCooldown sets the player's cooldown flag.
//
// Postcondition: Returns the session token the deferred clear must capture.
func (m *Manager) ArmCooldown(playerID string) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, exists := m.players[playerID]
	if !exists {
		return uuid.Nil, fmt.Errorf("player %q: %w", playerID, ErrNotConnected)
	}
	st.onCooldown = true
	return st.token, nil
}

// ClearCooldown clears the player's cooldown flag if the state still exists
// and belongs to the same connection the token was minted for. Deferred
// timers call this after the player may have disconnected or reconnected;
// a stale token must never touch a newer session's state.
//
// Postcondition: Returns true if the flag was cleared.
func (m *Manager) ClearCooldown(playerID string, token uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, exists := m.players[playerID]
	if !exists || st.token != token {
		return false
	}
	st.onCooldown = false
	return true
}

// Count returns the number of players with purchase state.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.players)
}
