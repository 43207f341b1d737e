package sim

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oylsister/buycmd/internal/host"
)

func TestAddPlayer_DuplicateName(t *testing.T) {
	h := NewHost(&bytes.Buffer{}, zap.NewNop())

	p := h.AddPlayer("alice", 800)
	require.NotNil(t, p)
	assert.Nil(t, h.AddPlayer("alice", 800))

	got, ok := h.Player("alice")
	require.True(t, ok)
	assert.Same(t, p, got)
}

func TestDispatch_RoutesToHandler(t *testing.T) {
	h := NewHost(&bytes.Buffer{}, zap.NewNop())

	var got string
	h.RegisterCommand("buyak", func(_ host.Player, trigger string) {
		got = trigger
	})

	p := h.AddPlayer("alice", 800)
	assert.True(t, h.Dispatch(p, "buyak"))
	assert.Equal(t, "buyak", got)
	assert.False(t, h.Dispatch(p, "buym4"))
}

func TestPlayer_InventoryAndChat(t *testing.T) {
	var out bytes.Buffer
	h := NewHost(&out, zap.NewNop())
	p := h.AddPlayer("alice", 800)

	p.GiveItem("weapon_glock")
	p.GiveItem("weapon_ak47")

	items := p.HeldItems()
	require.Len(t, items, 2)
	assert.Equal(t, "weapon_glock", items[0].Identifier())

	items[0].Remove()
	items = p.HeldItems()
	require.Len(t, items, 1)
	assert.Equal(t, "weapon_ak47", items[0].Identifier())

	p.SendMessage("\x04[Weapon]\x01 hello")
	assert.Contains(t, out.String(), "[chat → alice] [Weapon] hello")
}

func TestScheduleAfter_FiresCallback(t *testing.T) {
	h := NewHost(&bytes.Buffer{}, zap.NewNop())

	done := make(chan struct{})
	h.ScheduleAfter(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled callback did not fire")
	}
}

func TestDescribe(t *testing.T) {
	h := NewHost(&bytes.Buffer{}, zap.NewNop())
	h.AddPlayer("alice", 800)
	h.SetAlive("alice", true)

	desc, ok := h.Describe("alice")
	require.True(t, ok)
	assert.Contains(t, desc, "alice")
	assert.Contains(t, desc, "$800")
	assert.Contains(t, desc, "alive")

	_, ok = h.Describe("bob")
	assert.False(t, ok)
}
