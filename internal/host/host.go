// Package host defines the capability surface the purchase system requires
// from the game engine it is embedded in. The core never talks to a real
// engine directly; it is handed implementations of these interfaces.
package host

import "time"

// Player is the engine's live handle to one connected player.
type Player interface {
	// ID returns the engine's stable identifier for this player connection.
	ID() string
	// Name returns the player's display name (for logging and chat).
	Name() string
	// IsAlive reports whether the player's pawn is currently alive.
	IsAlive() bool
	// Money returns the player's current account balance.
	Money() int
	// SetMoney replaces the player's account balance.
	SetMoney(amount int)
	// HeldItems returns handles to every item the player currently holds,
	// in the engine's inventory order.
	HeldItems() []Item
	// GiveItem grants the named item entity to the player.
	GiveItem(identifier string)
	// SendMessage delivers a chat line to the player.
	SendMessage(text string)
}

// Item is a handle to a single item instance held by a player.
type Item interface {
	// Identifier returns the engine's entity name for this item.
	Identifier() string
	// Remove strips the item from its owner's inventory.
	Remove()
}

// CommandHandler receives a chat/console command dispatched by the engine.
// trigger is the command token the player typed, without arguments.
type CommandHandler func(p Player, trigger string)

// Host is the set of engine-level capabilities the purchase system uses.
type Host interface {
	// RegisterCommand binds a chat/console trigger to a handler.
	RegisterCommand(name string, handler CommandHandler)
	// ScheduleAfter runs fn once after d has elapsed. Callbacks run on the
	// engine's event thread, serialized with command dispatch.
	ScheduleAfter(d time.Duration, fn func())
}
