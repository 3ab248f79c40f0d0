package tickets

import (
	"testing"

	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestChannelName(t *testing.T) {
	tests := []struct {
		name          string
		typ           entities.TicketType
		username      string
		discriminator string
		userID        string
		want          string
	}{
		{"general with discriminator", entities.TicketTypeGeneral, "Alice", "4321", "1000001234", "ticket-alice-4321"},
		{"general without discriminator", entities.TicketTypeGeneral, "Alice", "", "1000001234", "ticket-alice-1234"},
		{"migrated user", entities.TicketTypeGeneral, "Alice", "0", "1000001234", "ticket-alice-1234"},
		{"order", entities.TicketTypeOrder, "Bob", "", "2000005678", "order-bob-5678"},
		{"cs", entities.TicketTypeCS, "Bob", "", "2000005678", "cs-bob-5678"},
		{"invalid characters dropped", entities.TicketTypeGeneral, "Jöhn Doe_99", "", "77", "ticket-jhndoe99-77"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ChannelName(tt.typ, tt.username, tt.discriminator, tt.userID))
		})
	}
}

func TestArchivedName(t *testing.T) {
	tests := map[string]string{
		"ticket-alice-1234":   "archived-alice-1234",
		"closed-alice-1234":   "archived-alice-1234",
		"archived-alice-1234": "archived-alice-1234",
		"order-bob-5678":      "archived-order-bob-5678",
	}
	for in, want := range tests {
		require.Equal(t, want, ArchivedName(in), in)
	}
}

func TestSanitizeName(t *testing.T) {
	require.Equal(t, "my-ticket-", SanitizeName("My Ticket!"))
	require.Equal(t, "refund-42", SanitizeName("refund-42"))
	require.Equal(t, "a-b", SanitizeName("A_B"))
}

func TestRequester_Tag(t *testing.T) {
	require.Equal(t, "alice#0001", Requester{Username: "alice", Discriminator: "0001"}.Tag())
	require.Equal(t, "alice", Requester{Username: "alice", Discriminator: "0"}.Tag())
}
