// Package testutil provides fake host engine implementations for tests.
package testutil

import (
	"time"

	"github.com/oylsister/buycmd/internal/host"
)

// Timer is one deferred callback scheduled on a FakeHost.
type Timer struct {
	Delay time.Duration
	fn    func()
	fired bool
}

// FakeHost records command registrations and captures scheduled callbacks
// so tests can fire them deterministically.
type FakeHost struct {
	// Commands maps each registered trigger to its handler.
	Commands map[string]host.CommandHandler
	// RegisterCalls lists every RegisterCommand call, duplicates included.
	RegisterCalls []string
	// Timers lists every ScheduleAfter call in order.
	Timers []*Timer
}

// NewFakeHost creates an empty FakeHost.
func NewFakeHost() *FakeHost {
	return &FakeHost{Commands: make(map[string]host.CommandHandler)}
}

// RegisterCommand implements host.Host.
func (h *FakeHost) RegisterCommand(name string, handler host.CommandHandler) {
	h.RegisterCalls = append(h.RegisterCalls, name)
	h.Commands[name] = handler
}

// ScheduleAfter implements host.Host. The callback is captured, not run.
func (h *FakeHost) ScheduleAfter(d time.Duration, fn func()) {
	h.Timers = append(h.Timers, &Timer{Delay: d, fn: fn})
}

// FireTimers runs every pending callback and returns how many fired.
func (h *FakeHost) FireTimers() int {
	fired := 0
	for _, t := range h.Timers {
		if !t.fired {
			t.fired = true
			t.fn()
			fired++
		}
	}
	return fired
}

// PendingTimers returns the number of callbacks not yet fired.
func (h *FakeHost) PendingTimers() int {
	pending := 0
	for _, t := range h.Timers {
		if !t.fired {
			pending++
		}
	}
	return pending
}

// Invoke dispatches a trigger as the host engine would.
//
// Postcondition: Returns true if a handler was registered for the trigger.
func (h *FakeHost) Invoke(p host.Player, trigger string) bool {
	handler, ok := h.Commands[trigger]
	if !ok {
		return false
	}
	handler(p, trigger)
	return true
}

// FakePlayer is a configurable host.Player that records every mutation.
type FakePlayer struct {
	PlayerID   string
	PlayerName string
	Alive      bool
	Balance    int
	// Held is the current inventory, in order.
	Held []string
	// Given records every GiveItem call.
	Given []string
	// Removed records every item stripped via an Item handle.
	Removed []string
	// Messages records every chat line sent to the player.
	Messages []string
}

// NewFakePlayer creates an alive player with the given id and balance.
func NewFakePlayer(id string, balance int) *FakePlayer {
	return &FakePlayer{PlayerID: id, PlayerName: id, Alive: true, Balance: balance}
}

// ID implements host.Player.
func (p *FakePlayer) ID() string { return p.PlayerID }

// Name implements host.Player.
func (p *FakePlayer) Name() string { return p.PlayerName }

// IsAlive implements host.Player.
func (p *FakePlayer) IsAlive() bool { return p.Alive }

// Money implements host.Player.
func (p *FakePlayer) Money() int { return p.Balance }

// SetMoney implements host.Player.
func (p *FakePlayer) SetMoney(amount int) { p.Balance = amount }

// HeldItems implements host.Player.
func (p *FakePlayer) HeldItems() []host.Item {
	out := make([]host.Item, 0, len(p.Held))
	for _, id := range p.Held {
		out = append(out, &fakeItem{player: p, id: id})
	}
	return out
}

// GiveItem implements host.Player.
func (p *FakePlayer) GiveItem(identifier string) {
	p.Held = append(p.Held, identifier)
	p.Given = append(p.Given, identifier)
}

// SendMessage implements host.Player.
func (p *FakePlayer) SendMessage(text string) {
	p.Messages = append(p.Messages, text)
}

type fakeItem struct {
	player *FakePlayer
	id     string
}

func (i *fakeItem) Identifier() string { return i.id }

func (i *fakeItem) Remove() {
	for idx, id := range i.player.Held {
		if id == i.id {
			i.player.Held = append(i.player.Held[:idx], i.player.Held[idx+1:]...)
			i.player.Removed = append(i.player.Removed, i.id)
			return
		}
	}
}
