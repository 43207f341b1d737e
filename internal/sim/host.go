// Package sim provides an in-process host engine implementation for the
// buysim development console: real timers, stdout chat, and a registry of
// simulated players. It exists to exercise the purchase system without a
// game server.
package sim

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oylsister/buycmd/internal/game/chat"
	"github.com/oylsister/buycmd/internal/host"
)

// Host is a local host.Host. A single mutex serializes command dispatch
// and timer callbacks, preserving the one-event-at-a-time execution model
// a real game engine provides.
type Host struct {
	log *zap.Logger
	out io.Writer

	mu       sync.Mutex
	commands map[string]host.CommandHandler
	players  map[string]*Player
}

// NewHost creates a simulated host writing chat output to out.
//
// Precondition: out and log must be non-nil.
func NewHost(out io.Writer, log *zap.Logger) *Host {
	return &Host{
		log:      log,
		out:      out,
		commands: make(map[string]host.CommandHandler),
		players:  make(map[string]*Player),
	}
}

// RegisterCommand implements host.Host.
func (h *Host) RegisterCommand(name string, handler host.CommandHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commands[name] = handler
	h.log.Debug("command registered", zap.String("trigger", name))
}

// ScheduleAfter implements host.Host. The callback runs on the event lock,
// serialized with command dispatch.
func (h *Host) ScheduleAfter(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		fn()
	})
}

// AddPlayer creates a simulated player. New players are dead until Spawn.
//
// Postcondition: Returns the player, or nil if the name is taken.
func (h *Host) AddPlayer(name string, money int) *Player {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.players[name]; exists {
		return nil
	}
	p := &Player{host: h, name: name, money: money}
	h.players[name] = p
	return p
}

// Player returns the simulated player with the given name.
func (h *Host) Player(name string) (*Player, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.players[name]
	return p, ok
}

// RemovePlayer drops a simulated player.
func (h *Host) RemovePlayer(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.players, name)
}

// Dispatch delivers a trigger token typed by a player.
//
// Postcondition: Returns true if a handler was registered for the trigger.
func (h *Host) Dispatch(p *Player, trigger string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	handler, ok := h.commands[trigger]
	if !ok {
		return false
	}
	handler(p, trigger)
	return true
}

// Triggers returns all registered triggers, sorted.
func (h *Host) Triggers() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.commands))
	for name := range h.commands {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SetAlive flips a player's alive state.
func (h *Host) SetAlive(name string, alive bool) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.players[name]
	if !ok {
		return false
	}
	p.alive = alive
	return true
}

// SetMoney replaces a player's balance.
func (h *Host) SetMoney(name string, money int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.players[name]
	if !ok {
		return false
	}
	p.money = money
	return true
}

// Describe returns a one-line status summary for a player.
func (h *Host) Describe(name string) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.players[name]
	if !ok {
		return "", false
	}
	state := "dead"
	if p.alive {
		state = "alive"
	}
	items := "none"
	if len(p.items) > 0 {
		items = strings.Join(p.items, ", ")
	}
	return fmt.Sprintf("%s: %s, $%d, items: %s", p.name, state, p.money, items), true
}

// Player is a simulated connected player. Mutating accessors are called
// either under the host event lock (by the engine) or through Host
// methods; they never lock themselves.
type Player struct {
	host  *Host
	name  string
	alive bool
	money int
	items []string
}

// ID implements host.Player.
func (p *Player) ID() string { return p.name }

// Name implements host.Player.
func (p *Player) Name() string { return p.name }

// IsAlive implements host.Player.
func (p *Player) IsAlive() bool { return p.alive }

// Money implements host.Player.
func (p *Player) Money() int { return p.money }

// SetMoney implements host.Player.
func (p *Player) SetMoney(amount int) { p.money = amount }

// HeldItems implements host.Player.
func (p *Player) HeldItems() []host.Item {
	out := make([]host.Item, 0, len(p.items))
	for _, id := range p.items {
		out = append(out, &heldItem{player: p, id: id})
	}
	return out
}

// GiveItem implements host.Player.
func (p *Player) GiveItem(identifier string) {
	p.items = append(p.items, identifier)
}

// SendMessage implements host.Player. Color codes are stripped for the
// plain-text console.
func (p *Player) SendMessage(text string) {
	fmt.Fprintf(p.host.out, "[chat → %s] %s\n", p.name, chat.StripColors(text))
}

// heldItem is a handle to one entry of a simulated player's inventory.
type heldItem struct {
	player *Player
	id     string
}

func (i *heldItem) Identifier() string { return i.id }

// Remove strips the first matching item from the owner's inventory.
func (i *heldItem) Remove() {
	for idx, id := range i.player.items {
		if id == i.id {
			i.player.items = append(i.player.items[:idx], i.player.items[idx+1:]...)
			return
		}
	}
}
