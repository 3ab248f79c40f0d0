package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/custom"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/Jacobbrewer1/ticketeer/pkg/logging"
)

const (
	// clearConfirmation must be typed to clear data.
	clearConfirmation = "CONFIRM"

	// remoteBackupTimeout bounds a call to the remote backup sink.
	remoteBackupTimeout = 10 * time.Second
)

func dataBackup(a *App, ic *interaction) error {
	b := a.store.Backup()
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding backup: %w", err)
	}

	content := a.msgs.T("data_backup_ready")
	if a.backups != nil {
		ctx, cancel := context.WithTimeout(a.ctx, remoteBackupTimeout)
		defer cancel()

		if err := a.backups.SaveBackup(ctx, b); err != nil {
			a.Error("Error storing remote backup", slog.String(logging.KeyError, err.Error()))
			content = a.msgs.T("data_backup_remote_failed", "reason", err.Error())
		} else {
			content = a.msgs.T("data_backup_stored")
		}
	}

	name := fmt.Sprintf("bot-backup-%s.json", b.Timestamp.Time().UTC().Format("2006-01-02"))
	return a.replyFile(ic, content, name, data)
}

// loadBackup reads the backup attached to the interaction, or the latest remote backup when
// nothing is attached. A nil backup with a nil error means there was nothing to read.
func (a *App) loadBackup(ic *interaction) (*dataaccess.Backup, error) {
	url := ic.attachmentURL("file")
	if url == "" {
		if a.backups == nil {
			return nil, nil
		}
		ctx, cancel := context.WithTimeout(a.ctx, remoteBackupTimeout)
		defer cancel()
		return a.backups.LatestBackup(ctx)
	}

	ctx, cancel := context.WithTimeout(a.ctx, attachmentTimeout)
	defer cancel()
	data, err := a.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	b := new(dataaccess.Backup)
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("error decoding backup: %w", err)
	}
	return b, nil
}

func dataRestore(a *App, ic *interaction) error {
	b, err := a.loadBackup(ic)
	switch {
	case errors.Is(err, dataaccess.ErrNotFound):
		return a.reply(ic, a.msgs.T("data_restore_invalid"))
	case err != nil:
		a.Warn("Error reading backup", slog.String(logging.KeyError, err.Error()))
		return a.reply(ic, a.msgs.T("data_restore_failed", "reason", err.Error()))
	case b == nil:
		return a.reply(ic, a.msgs.T("data_restore_invalid"))
	}

	if err := a.store.Restore(b); err != nil {
		return a.reply(ic, a.msgs.T("data_restore_failed", "reason", err.Error()))
	}

	a.Warn("Data restored from backup",
		slog.String(logging.KeyUser, ic.actor.ID),
		slog.String("backup_time", b.Timestamp.String()),
	)
	return a.reply(ic, a.msgs.T("data_restored"))
}

func dataClear(a *App, ic *interaction) error {
	if ic.opts.String("confirm") != clearConfirmation {
		return a.reply(ic, a.msgs.T("data_clear_confirm"))
	}

	kind := ic.opts.String("type")
	if err := a.store.Clear(kind); err != nil {
		return a.reply(ic, a.msgs.T("data_invalid_kind", "kind", kind))
	}

	a.Warn("Data cleared", slog.String("kind", kind), slog.String(logging.KeyUser, ic.actor.ID))
	return a.reply(ic, a.msgs.T("data_cleared", "kind", kind))
}

func dataExport(a *App, ic *interaction) error {
	kind := ic.opts.String("type")

	var (
		data []byte
		err  error
	)
	if kind == dataaccess.ClearAll {
		data, err = json.MarshalIndent(a.store.Backup(), "", "  ")
	} else {
		doc, perr := dataaccess.ParseDocument(kind)
		if perr != nil {
			return a.reply(ic, a.msgs.T("data_invalid_kind", "kind", kind))
		}
		data, err = a.store.Export(doc)
	}
	if err != nil {
		return fmt.Errorf("error exporting %s: %w", kind, err)
	}

	name := fmt.Sprintf("%s-export-%s.json", kind, time.Now().UTC().Format("2006-01-02"))
	return a.replyFile(ic, a.msgs.T("data_export_ready", "kind", kind), name, data)
}

func dataInfo(a *App, ic *interaction) error {
	info := a.store.Info()

	sizes := make([]string, 0, len(info.Files))
	for _, f := range info.Files {
		sizes = append(sizes, a.msgs.T("data_info_file", "name", f.Document.String(), "size", custom.FormatBytes(f.Size)))
	}
	sizes = append(sizes, a.msgs.T("data_info_total", "size", custom.FormatBytes(info.TotalSize())))

	c := info.Counts
	return a.replyEmbed(ic, &discordgo.MessageEmbed{
		Title:       a.msgs.T("data_info_title"),
		Description: a.msgs.T("data_info_description", "dir", info.Dir),
		Color:       a.cfg.SuccessColor,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: a.msgs.T("data_info_storage"), Value: strings.Join(sizes, "\n"), Inline: true},
			{
				Name: a.msgs.T("data_info_counts"),
				Value: a.msgs.T("data_info_counts_value",
					"embeds", strconv.Itoa(c.SavedEmbeds),
					"active", strconv.Itoa(c.ActiveTickets),
					"closed", strconv.Itoa(c.ClosedTickets),
					"archived", strconv.Itoa(c.ArchivedTickets),
					"templates", strconv.Itoa(c.CustomTemplates),
				),
				Inline: true,
			},
		},
	})
}

// settingValue reads a typed setting value: true, false, null, a number or a string.
func settingValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	case "null", "":
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func dataSettings(a *App, ic *interaction) error {
	category := ic.opts.String("category")
	switch category {
	case entities.SettingsGuild, entities.SettingsEmbedDefaults, entities.SettingsTickets:
	default:
		return a.reply(ic, a.msgs.T("data_invalid_kind", "kind", category))
	}

	values := a.store.Settings(category)
	if key := ic.opts.String("key"); key != "" {
		a.store.UpdateSettings(category, map[string]any{key: settingValue(ic.opts.String("value"))})
		a.Info("Setting updated",
			slog.String("category", category),
			slog.String("key", key),
			slog.String(logging.KeyUser, ic.actor.ID),
		)
		return a.reply(ic, a.msgs.T("data_settings_updated", "key", key, "category", category))
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("`%s`: %v", k, values[k]))
	}
	body := a.msgs.T("data_settings_empty")
	if len(lines) > 0 {
		body = strings.Join(lines, "\n")
	}

	return a.replyEmbed(ic, &discordgo.MessageEmbed{
		Title:       a.msgs.T("data_settings_title", "category", category),
		Description: body,
		Color:       a.cfg.DefaultColor,
	})
}
