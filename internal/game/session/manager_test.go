package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_CreatesFreshState(t *testing.T) {
	m := NewManager()

	token, err := m.Connect("p1")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, token)
	assert.True(t, m.Connected("p1"))
	assert.Equal(t, 1, m.Count())

	count, err := m.BoughtCount("p1", "ak47")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	cooling, err := m.OnCooldown("p1")
	require.NoError(t, err)
	assert.False(t, cooling)
}

func TestConnect_DuplicateFailsLoudly(t *testing.T) {
	m := NewManager()
	_, err := m.Connect("p1")
	require.NoError(t, err)

	_, err = m.Connect("p1")
	assert.Error(t, err)
	assert.Equal(t, 1, m.Count())
}

func TestDisconnect_Idempotent(t *testing.T) {
	m := NewManager()
	_, err := m.Connect("p1")
	require.NoError(t, err)

	assert.True(t, m.Disconnect("p1"))
	assert.False(t, m.Connected("p1"))
	assert.False(t, m.Disconnect("p1"))
	assert.False(t, m.Disconnect("never-connected"))
}

func TestRecordPurchase_Increments(t *testing.T) {
	m := NewManager()
	_, err := m.Connect("p1")
	require.NoError(t, err)

	n, err := m.RecordPurchase("p1", "ak47")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = m.RecordPurchase("p1", "ak47")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// other weapons are tracked independently
	n, err = m.RecordPurchase("p1", "m4a1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClearHistory_ResetsCountsNotCooldown(t *testing.T) {
	m := NewManager()
	_, err := m.Connect("p1")
	require.NoError(t, err)

	_, err = m.RecordPurchase("p1", "ak47")
	require.NoError(t, err)
	_, err = m.ArmCooldown("p1")
	require.NoError(t, err)

	require.NoError(t, m.ClearHistory("p1"))

	count, err := m.BoughtCount("p1", "ak47")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	cooling, err := m.OnCooldown("p1")
	require.NoError(t, err)
	assert.True(t, cooling, "cooldown persists across spawns")
}

func TestClearHistory_NotConnected(t *testing.T) {
	m := NewManager()
	err := m.ClearHistory("ghost")
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestClearCooldown_TokenMatch(t *testing.T) {
	m := NewManager()
	_, err := m.Connect("p1")
	require.NoError(t, err)

	token, err := m.ArmCooldown("p1")
	require.NoError(t, err)

	assert.True(t, m.ClearCooldown("p1", token))
	cooling, err := m.OnCooldown("p1")
	require.NoError(t, err)
	assert.False(t, cooling)
}

func TestClearCooldown_StaleTokenIsNoOp(t *testing.T) {
	m := NewManager()
	_, err := m.Connect("p1")
	require.NoError(t, err)

	staleToken, err := m.ArmCooldown("p1")
	require.NoError(t, err)

	// reconnect mints a new token
	m.Disconnect("p1")
	_, err = m.Connect("p1")
	require.NoError(t, err)

	newToken, err := m.ArmCooldown("p1")
	require.NoError(t, err)
	require.NotEqual(t, staleToken, newToken)

	assert.False(t, m.ClearCooldown("p1", staleToken))
	cooling, err := m.OnCooldown("p1")
	require.NoError(t, err)
	assert.True(t, cooling, "stale token must not clear the new session's cooldown")
}

func TestClearCooldown_DisconnectedIsNoOp(t *testing.T) {
	m := NewManager()
	_, err := m.Connect("p1")
	require.NoError(t, err)
	token, err := m.ArmCooldown("p1")
	require.NoError(t, err)

	m.Disconnect("p1")
	assert.False(t, m.ClearCooldown("p1", token))
}

func TestToken_RotatesPerConnection(t *testing.T) {
	m := NewManager()
	first, err := m.Connect("p1")
	require.NoError(t, err)

	got, ok := m.Token("p1")
	require.True(t, ok)
	assert.Equal(t, first, got)

	m.Disconnect("p1")
	second, err := m.Connect("p1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, ok = m.Token("ghost")
	assert.False(t, ok)
}
