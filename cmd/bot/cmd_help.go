package main

import (
	"fmt"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
)

// restrictedCommands are only listed in help for members holding the capability.
var restrictedCommands = map[string]capability{
	"role":        canManage,
	"embed":       canEditEmbeds,
	"data":        canManageData,
	"product":     canEditEmbeds,
	"closeticket": canManage,
	"viewarchive": canManage,
}

func helpTopics() []string {
	return []string{"ticket", "role", "embed", "data", "product", "status", "closeticket", "viewarchive"}
}

// commandLines lists a command and its subcommands with their descriptions.
func commandLines(cmd *discordgo.ApplicationCommand) string {
	lines := make([]string, 0, len(cmd.Options))
	for _, o := range cmd.Options {
		if o.Type == discordgo.ApplicationCommandOptionSubCommand {
			lines = append(lines, fmt.Sprintf("`/%s %s` - %s", cmd.Name, o.Name, o.Description))
		}
	}
	if len(lines) == 0 {
		return fmt.Sprintf("`/%s` - %s", cmd.Name, cmd.Description)
	}
	return strings.Join(lines, "\n")
}

func (a *App) canSee(command string, ic *interaction) bool {
	c, ok := restrictedCommands[command]
	return !ok || c(a.perms, ic.actor.Member)
}

func helpCommand(a *App, ic *interaction) error {
	cmds := slashCommands()
	e := &discordgo.MessageEmbed{
		Title:  a.msgs.T("help_title"),
		Color:  a.cfg.DefaultColor,
		Footer: &discordgo.MessageEmbedFooter{Text: a.msgs.T("help_footer")},
	}

	if topic := ic.opts.String("command"); topic != "" {
		for _, cmd := range cmds {
			if cmd.Name != topic {
				continue
			}
			if !a.canSee(cmd.Name, ic) {
				ic.rejected = true
				return a.reply(ic, a.msgs.T("help_admin_only", "command", topic))
			}
			e.Title = a.msgs.T("help_command_title", "command", topic)
			e.Description = cmd.Description
			e.Fields = []*discordgo.MessageEmbedField{{Name: a.msgs.T("help_usage"), Value: commandLines(cmd)}}
			return a.replyEmbed(ic, e)
		}
		return a.reply(ic, a.msgs.T("help_unknown", "command", topic))
	}

	showAdmin := ic.opts.Bool("show_admin")
	hidden := 0
	e.Description = a.msgs.T("help_description")
	for _, cmd := range cmds {
		if _, restricted := restrictedCommands[cmd.Name]; restricted && (!showAdmin || !a.canSee(cmd.Name, ic)) {
			hidden++
			continue
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{Name: "/" + cmd.Name, Value: commandLines(cmd)})
	}

	if hidden > 0 && !showAdmin && a.perms.CanManage(ic.actor.Member) {
		e.Footer.Text = a.msgs.T("help_admin_hint")
	}
	return a.replyEmbed(ic, e)
}
