package main

import (
	"log/slog"

	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
)

func roleAssign(a *App, ic *interaction) error {
	return changeRole(a, ic, a.client.AddMemberRole, "role_assigned")
}

func roleRemove(a *App, ic *interaction) error {
	return changeRole(a, ic, a.client.RemoveMemberRole, "role_removed")
}

func changeRole(a *App, ic *interaction, change func(guildID, userID, roleID string) error, doneKey string) error {
	userID, roleID := ic.opts.String("user"), ic.opts.String("role")
	if userID == "" || roleID == "" {
		return a.reply(ic, a.msgs.T("role_not_found"))
	}

	if err := change(ic.GuildID, userID, roleID); err != nil {
		a.Warn("Error changing member role",
			slog.String(logging.KeyGuild, ic.GuildID),
			slog.String(logging.KeyUser, userID),
			slog.String("role_id", roleID),
			slog.String(logging.KeyError, err.Error()),
		)
		return a.reply(ic, a.msgs.T("role_failed", "reason", err.Error()))
	}

	a.Info("Member role changed",
		slog.String(logging.KeyGuild, ic.GuildID),
		slog.String(logging.KeyUser, userID),
		slog.String("role_id", roleID),
		slog.String("by", ic.actor.ID),
	)
	return a.reply(ic, a.msgs.T(doneKey, "role", roleMention(roleID), "user", userMention(userID)))
}
