package embeds

import (
	"errors"
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/stretchr/testify/require"
)

func TestComposer_CreateProduct(t *testing.T) {
	f := newFixture(t)

	msg, err := f.c.CreateProduct(f.channel, "seller", ProductOptions{
		Name:        "Nitro",
		Category:    "Digital",
		Price:       "$10",
		Description: "One month",
	})
	require.NoError(t, err)

	e := msg.Embeds[0]
	require.Equal(t, "🛒 Nitro", e.Title)
	require.Equal(t, 0xFF6B6B, e.Color)
	require.Len(t, e.Fields, 2)
	require.Equal(t, "Digital", e.Fields[0].Value)
	require.Equal(t, "$10", e.Fields[1].Value)
	require.Contains(t, e.Description, "One month")

	row, ok := msg.Components[0].(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 2)
	require.Equal(t, ProductBuyButtonID, row.Components[0].(discordgo.Button).CustomID)
	require.Equal(t, ProductCSButtonID, row.Components[1].(discordgo.Button).CustomID)

	r, err := f.store.GetEmbed(msg.ID)
	require.NoError(t, err)
	require.True(t, r.IsProduct())
	require.Equal(t, &entities.Product{Name: "Nitro", Category: "Digital", Price: "$10"}, r.Config.Product)
}

func TestComposer_CreateProductValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		opts  ProductOptions
		field string
	}{
		{"missing name", ProductOptions{Category: "c", Price: "1"}, "name"},
		{"missing category", ProductOptions{Name: "n", Price: "1"}, "category"},
		{"missing price", ProductOptions{Name: "n", Category: "c"}, "price"},
		{"bad thumbnail", ProductOptions{Name: "n", Category: "c", Price: "1", Thumbnail: "x"}, "thumbnail"},
		{"bad color", ProductOptions{Name: "n", Category: "c", Price: "1", Color: "12345"}, "color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.c.CreateProduct(f.channel, "seller", tt.opts)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), err)
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestComposer_EditProduct(t *testing.T) {
	f := newFixture(t)

	msg, err := f.c.CreateProduct(f.channel, "seller", ProductOptions{Name: "Nitro", Category: "Digital", Price: "$10", Color: "00FF00"})
	require.NoError(t, err)

	r, err := f.c.EditProduct(msg.ID, ProductOptions{Price: "$8"})
	require.NoError(t, err)
	require.Equal(t, 1, r.EditedCount)
	require.Equal(t, "Nitro", r.Config.Product.Name)
	require.Equal(t, "$8", r.Config.Product.Price)
	require.Equal(t, 0x00FF00, r.Config.Color)

	got := f.fake.MessagesIn(f.channel)[0]
	require.Equal(t, "$8", got.Embeds[0].Fields[1].Value)
	require.Len(t, got.Components, 1)

	basic, err := f.c.CreateBasic(f.channel, "u1", BasicOptions{Title: "t", Description: "d"})
	require.NoError(t, err)
	_, err = f.c.EditProduct(basic.ID, ProductOptions{Price: "1"})
	require.ErrorIs(t, err, ErrNotProduct)
}

func TestComposer_ListAndDeleteProducts(t *testing.T) {
	f := newFixture(t)

	first, err := f.c.CreateProduct(f.channel, "seller", ProductOptions{Name: "A", Category: "c", Price: "1"})
	require.NoError(t, err)
	_, err = f.c.CreateProduct(f.channel, "seller", ProductOptions{Name: "B", Category: "c", Price: "2"})
	require.NoError(t, err)
	_, err = f.c.CreateBasic(f.channel, "u1", BasicOptions{Title: "t", Description: "d"})
	require.NoError(t, err)

	products := f.c.ListProducts()
	require.Len(t, products, 2)

	list := f.c.ProductListEmbed(products, false)
	require.Contains(t, list.Description, "A - 1")
	require.Contains(t, list.Footer.Text, "Total: 2")

	detail := f.c.ProductListEmbed(products, true)
	require.Contains(t, detail.Description, "Price: 2")

	name, err := f.c.DeleteProduct(first.ID, "admin")
	require.NoError(t, err)
	require.Equal(t, "A", name)
	require.Len(t, f.fake.MessagesIn(f.channel), 2)

	r, err := f.store.GetEmbed(first.ID)
	require.NoError(t, err)
	require.True(t, r.Deleted)
	require.Equal(t, "admin", r.DeletedBy)
	require.Len(t, f.c.ListProducts(), 1)

	_, err = f.c.DeleteProduct(first.ID, "admin")
	require.ErrorIs(t, err, ErrNotProduct)

	empty := f.c.ProductListEmbed(nil, false)
	require.Equal(t, "No products have been created yet.", empty.Description)
}

func TestComposer_ResolveOrderChannel(t *testing.T) {
	t.Run("product order channel", func(t *testing.T) {
		f := newFixture(t)
		orders := f.fake.AddChannel("sales", discordgo.ChannelTypeGuildText, "", "")
		msg, err := f.c.CreateProduct(f.channel, "seller", ProductOptions{Name: "A", Category: "c", Price: "1", OrderChannel: orders})
		require.NoError(t, err)

		got, err := f.c.ResolveOrderChannel("guild", msg.ID)
		require.NoError(t, err)
		require.Equal(t, orders, got)
	})

	t.Run("order ticket channel by name", func(t *testing.T) {
		f := newFixture(t)
		f.fake.AddChannel("orders", discordgo.ChannelTypeGuildText, "", "")
		want := f.fake.AddChannel("Order-Tickets", discordgo.ChannelTypeGuildText, "", "")
		msg, err := f.c.CreateProduct(f.channel, "seller", ProductOptions{Name: "A", Category: "c", Price: "1"})
		require.NoError(t, err)

		got, err := f.c.ResolveOrderChannel("guild", msg.ID)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("common name", func(t *testing.T) {
		f := newFixture(t)
		want := f.fake.AddChannel("pemesanan", discordgo.ChannelTypeGuildText, "", "")

		got, err := f.c.ResolveOrderChannel("guild", "unknown")
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("none", func(t *testing.T) {
		f := newFixture(t)
		got, err := f.c.ResolveOrderChannel("guild", "unknown")
		require.NoError(t, err)
		require.Empty(t, got)
	})
}
