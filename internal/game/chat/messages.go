// Package chat renders user-facing purchase messages with in-game chat
// color codes.
package chat

import (
	"fmt"
	"strings"

	"github.com/oylsister/buycmd/internal/game/purchase"
)

// Chat color control bytes understood by the game client.
const (
	ColorDefault = "\x01"
	ColorGreen   = "\x04"
	ColorLime    = "\x06"
)

// tag prefixes every purchase message.
const tag = ColorGreen + "[Weapon]" + ColorDefault

// Render returns the chat line for a purchase result.
//
// Postcondition: Returns a non-empty message for every Outcome value.
func Render(res purchase.Result) string {
	switch res.Outcome {
	case purchase.OutcomePurchased:
		if res.Limit > 0 {
			remaining := res.Limit - res.Purchased
			return fmt.Sprintf("%s You have purchased %s, purchases left: %s%d/%d%s",
				tag, highlight(res.WeaponKey), ColorGreen, remaining, res.Limit, ColorDefault)
		}
		return fmt.Sprintf("%s You have purchased %s.", tag, highlight(res.WeaponKey))
	case purchase.OutcomeUnknownWeapon:
		return fmt.Sprintf("%s Invalid weapon!", tag)
	case purchase.OutcomeNotAlive:
		return fmt.Sprintf("%s You need to be alive to purchase weapons!", tag)
	case purchase.OutcomeRestricted:
		return fmt.Sprintf("%s Weapon %s is restricted", tag, highlight(res.WeaponKey))
	case purchase.OutcomeOnCooldown:
		return fmt.Sprintf("%s Your purchase is on cooldown now!", tag)
	case purchase.OutcomeInsufficientFunds:
		return fmt.Sprintf("%s You don't have enough money to purchase this weapon!", tag)
	case purchase.OutcomeLimitReached:
		return fmt.Sprintf("%s You have reached the maximum purchases for %s, you can buy again next life", tag, highlight(res.WeaponKey))
	default:
		return fmt.Sprintf("%s Invalid weapon!", tag)
	}
}

func highlight(s string) string {
	return ColorLime + s + ColorDefault
}

// StripColors removes chat color control bytes, for plain-text sinks such
// as the console host.
func StripColors(s string) string {
	replacer := strings.NewReplacer(ColorDefault, "", ColorGreen, "", ColorLime, "")
	return replacer.Replace(s)
}
