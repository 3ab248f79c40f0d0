package tickets

import (
	"regexp"
	"strings"

	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
)

var (
	invalidNameChars = regexp.MustCompile(`[^a-z0-9-]`)
	statePrefix      = regexp.MustCompile(`^(ticket-|closed-|archived-)`)
)

// ChannelName is the channel name of a new ticket: the type prefix, the lowercased
// username and the discriminator, or the last four digits of the user id for users
// without one. Characters outside a-z, 0-9 and '-' are dropped.
func ChannelName(t entities.TicketType, username, discriminator, userID string) string {
	suffix := discriminator
	if !hasDiscriminator(suffix) {
		suffix = userID
		if len(suffix) > 4 {
			suffix = suffix[len(suffix)-4:]
		}
	}
	name := t.Prefix() + "-" + strings.ToLower(username) + "-" + suffix
	return invalidNameChars.ReplaceAllString(name, "")
}

// ArchivedName is the name of a channel once archived.
func ArchivedName(name string) string {
	return "archived-" + statePrefix.ReplaceAllString(name, "")
}

// SanitizeName lowercases name and replaces every character outside a-z, 0-9 and '-' with '-'.
func SanitizeName(name string) string {
	return invalidNameChars.ReplaceAllString(strings.ToLower(name), "-")
}

// hasDiscriminator reports whether d is a legacy discriminator. Migrated users report "0".
func hasDiscriminator(d string) bool {
	return d != "" && d != "0"
}
