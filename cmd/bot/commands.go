package main

import (
	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketeer/pkg/embeds"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
)

func subcommand(name, description string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     opts,
	}
}

func option(t discordgo.ApplicationCommandOptionType, name, description string, required bool) *discordgo.ApplicationCommandOption {
	o := &discordgo.ApplicationCommandOption{
		Type:        t,
		Name:        name,
		Description: description,
		Required:    required,
	}
	if t == discordgo.ApplicationCommandOptionChannel {
		o.ChannelTypes = []discordgo.ChannelType{discordgo.ChannelTypeGuildText}
	}
	return o
}

func stringOption(name, description string, required bool, choices ...string) *discordgo.ApplicationCommandOption {
	o := option(discordgo.ApplicationCommandOptionString, name, description, required)
	for _, c := range choices {
		o.Choices = append(o.Choices, &discordgo.ApplicationCommandOptionChoice{Name: c, Value: c})
	}
	return o
}

func channelOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return option(discordgo.ApplicationCommandOptionChannel, name, description, required)
}

func documentChoices() []string {
	kinds := make([]string, 0, len(dataaccess.Documents)+1)
	for _, d := range dataaccess.Documents {
		kinds = append(kinds, d.String())
	}
	return append(kinds, dataaccess.ClearAll)
}

// slashCommands declares every slash command of the bot.
func slashCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ticket",
			Description: "Manage support tickets",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("open", "Open a new ticket"),
				subcommand("close", "Close the current ticket"),
				subcommand("rename", "Rename the current ticket",
					stringOption("name", "New name for the ticket", true),
				),
				subcommand("archive", "Archive the current ticket (admin/owner only)"),
				subcommand("delete", "Delete the current ticket (admin/owner only)"),
				subcommand("setup", "Set up the ticket creation panel (admin/owner only)",
					channelOption("channel", "Channel where users can create tickets", true),
				),
				subcommand("permissions", "Check bot permissions (admin/owner only)",
					channelOption("channel", "Channel to check permissions for", false),
				),
				subcommand("botinfo", "Show bot information and permissions (admin/owner only)"),
			},
		},
		{
			Name:        "role",
			Description: "Manage member roles",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("assign", "Assign a role to a member (admin/owner only)",
					option(discordgo.ApplicationCommandOptionUser, "user", "The member to assign the role to", true),
					option(discordgo.ApplicationCommandOptionRole, "role", "Role to assign", true),
				),
				subcommand("remove", "Remove a role from a member (admin/owner only)",
					option(discordgo.ApplicationCommandOptionUser, "user", "The member to remove the role from", true),
					option(discordgo.ApplicationCommandOptionRole, "role", "Role to remove", true),
				),
			},
		},
		{
			Name:        "embed",
			Description: "Create and manage custom embeds",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("create", "Create a basic embed",
					stringOption("title", "Embed title", true),
					stringOption("description", "Embed description", true),
					stringOption("color", "Hex color, for example #00AE86", false),
					stringOption("thumbnail", "Thumbnail URL", false),
					stringOption("image", "Image URL", false),
					stringOption("footer", "Footer text", false),
					channelOption("channel", "Channel to send the embed to", false),
				),
				subcommand("advanced", "Create an embed with fields, author and footer icon",
					stringOption("title", "Embed title", true),
					stringOption("description", "Embed description", false),
					stringOption("color", "Hex color, for example #00AE86", false),
					stringOption("fields", "Fields as name|value|inline;name|value|inline", false),
					stringOption("author", "Author name", false),
					stringOption("author_icon", "Author icon URL", false),
					stringOption("footer", "Footer text", false),
					stringOption("footer_icon", "Footer icon URL", false),
					stringOption("thumbnail", "Thumbnail URL", false),
					stringOption("image", "Image URL", false),
					option(discordgo.ApplicationCommandOptionBoolean, "timestamp", "Add the current time", false),
					channelOption("channel", "Channel to send the embed to", false),
				),
				subcommand("template", "Send a built in template",
					stringOption("type", "Template", true, embeds.PresetNames...),
					stringOption("title", "Custom title", false),
					stringOption("content", "Custom content", false),
					channelOption("channel", "Channel to send the embed to", false),
				),
				subcommand("edit", "Edit an embed the bot posted in this channel",
					stringOption("message_id", "ID of the message to edit", true),
					stringOption("title", "New title", false),
					stringOption("description", "New description", false),
					stringOption("color", "New hex color", false),
				),
				subcommand("save", "Save a custom template",
					stringOption("name", "Template name", true),
					stringOption("title", "Embed title", true),
					stringOption("description", "Embed description", true),
					stringOption("color", "Hex color", false),
					stringOption("thumbnail", "Thumbnail URL", false),
					stringOption("image", "Image URL", false),
					stringOption("footer", "Footer text", false),
				),
				subcommand("load", "Send a custom template",
					stringOption("name", "Template name", true),
					channelOption("channel", "Channel to send the embed to", false),
				),
				subcommand("list", "List saved templates"),
				subcommand("delete", "Delete a custom template",
					stringOption("name", "Template name", true),
				),
				subcommand("stats", "Show embed statistics"),
			},
		},
		{
			Name:        "data",
			Description: "Manage the bot data (admin/owner only)",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("backup", "Create a backup of every document"),
				subcommand("restore", "Restore a backup file, or the latest remote backup",
					option(discordgo.ApplicationCommandOptionAttachment, "file", "Backup file (.json)", false),
				),
				subcommand("clear", "Clear stored data (careful!)",
					stringOption("type", "Data to clear", true, documentChoices()...),
					stringOption("confirm", "Type CONFIRM to clear the data", true),
				),
				subcommand("export", "Export data as JSON",
					stringOption("type", "Data to export", true, documentChoices()...),
				),
				subcommand("info", "Show storage information"),
				subcommand("settings", "Show or change a setting",
					stringOption("category", "Settings category", true,
						entities.SettingsGuild, entities.SettingsEmbedDefaults, entities.SettingsTickets),
					stringOption("key", "Setting to change", false),
					stringOption("value", "New value: text, number, true, false or null", false),
				),
			},
		},
		{
			Name:        "product",
			Description: "Manage product embeds with buy and support buttons",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("create", "Create a product",
					stringOption("name", "Product name", true),
					stringOption("category", "Product category", true),
					stringOption("price", "Product price", true),
					stringOption("description", "Product description", false),
					stringOption("image", "Image URL", false),
					stringOption("thumbnail", "Thumbnail URL", false),
					stringOption("color", "Hex color", false),
					channelOption("order_channel", "Channel buyers are sent to", false),
					channelOption("channel", "Channel to post the product in", false),
				),
				subcommand("edit", "Edit a product",
					stringOption("message_id", "ID of the product message", true),
					stringOption("name", "Product name", false),
					stringOption("category", "Product category", false),
					stringOption("price", "Product price", false),
					stringOption("description", "Product description", false),
					stringOption("image", "Image URL", false),
					stringOption("thumbnail", "Thumbnail URL", false),
					stringOption("color", "Hex color", false),
					channelOption("order_channel", "Channel buyers are sent to", false),
				),
				subcommand("list", "List products",
					option(discordgo.ApplicationCommandOptionBoolean, "detail", "Show product details", false),
				),
				subcommand("delete", "Delete a product",
					stringOption("message_id", "ID of the product message", true),
					stringOption("confirm", "Type DELETE to delete the product", true),
				),
			},
		},
		{
			Name:        "status",
			Description: "Show bot and server status",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("type", "Status to show", false, statusBot, statusServer, statusStats, statusSystem, statusFull),
			},
		},
		{
			Name:        "help",
			Description: "Show the available commands",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("command", "Command to show details for", false, helpTopics()...),
				option(discordgo.ApplicationCommandOptionBoolean, "show_admin", "Include admin commands", false),
			},
		},
		{
			Name:        "closeticket",
			Description: "Close the current ticket (admin/owner only)",
		},
		{
			Name:        "viewarchive",
			Description: "View archived tickets (admin/owner only)",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("all", "View every archived ticket"),
				subcommand("user", "View the archived tickets of a user",
					option(discordgo.ApplicationCommandOptionUser, "user", "User to show archived tickets for", true),
				),
				subcommand("stats", "Show archive statistics"),
			},
		},
	}
}
