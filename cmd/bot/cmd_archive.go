package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/custom"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
)

const (
	archivePageSize = 10

	// maxEmbedFields is the most fields an embed may carry.
	maxEmbedFields = 25

	archiveColor      = 0x3498DB
	archiveUserColor  = 0x9B59B6
	archiveStatsColor = 0xE67E22
)

// sortByArchived orders tickets newest archive first. Tickets without an archive time go last.
func sortByArchived(list []*entities.Ticket) {
	sort.SliceStable(list, func(i, j int) bool {
		ai, aj := list[i].ArchivedAt, list[j].ArchivedAt
		switch {
		case ai == nil:
			return false
		case aj == nil:
			return true
		}
		return ai.Time().After(aj.Time())
	})
}

func timeTag(d *custom.Datetime) string {
	if d == nil || d.IsZero() {
		return "-"
	}
	return fmt.Sprintf("<t:%d:f>", d.Unix())
}

func (a *App) archiveField(t *entities.Ticket, withCreator bool) *discordgo.MessageEmbedField {
	mode := a.msgs.T("archive_mode_manual")
	if t.AutoArchived {
		mode = a.msgs.T("archive_mode_auto")
	}

	var value string
	if withCreator {
		value = a.msgs.T("archive_entry",
			"creator", t.CreatorTag,
			"channel", t.ChannelID,
			"archived", timeTag(t.ArchivedAt),
			"mode", mode,
		)
	} else {
		value = a.msgs.T("archive_user_entry",
			"created", timeTag(t.CreatedAt.Ptr()),
			"archived", timeTag(t.ArchivedAt),
			"channel", t.ChannelID,
			"mode", mode,
		)
	}

	return &discordgo.MessageEmbedField{
		Name:   strings.ToUpper(string(t.Type)) + " - " + t.ChannelName,
		Value:  value,
		Inline: true,
	}
}

func archiveAll(a *App, ic *interaction) error {
	archived := a.store.ArchivedTickets()
	if len(archived) == 0 {
		return a.reply(ic, a.msgs.T("archive_empty"))
	}
	sortByArchived(archived)

	page := archived
	if len(page) > archivePageSize {
		page = page[:archivePageSize]
	}

	e := &discordgo.MessageEmbed{
		Title: a.msgs.T("archive_all_title"),
		Description: a.msgs.T("archive_all_description",
			"shown", strconv.Itoa(len(page)),
			"total", strconv.Itoa(len(archived)),
		),
		Color:     archiveColor,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	for _, t := range page {
		e.Fields = append(e.Fields, a.archiveField(t, true))
	}
	if pages := (len(archived) + archivePageSize - 1) / archivePageSize; pages > 1 {
		e.Footer = &discordgo.MessageEmbedFooter{Text: a.msgs.T("archive_pages", "pages", strconv.Itoa(pages))}
	}
	return a.replyEmbed(ic, e)
}

func archiveUser(a *App, ic *interaction) error {
	userID := ic.opts.String("user")

	archived := make([]*entities.Ticket, 0)
	for _, t := range a.store.TicketsByCreator(userID) {
		if t.Bucket == entities.BucketArchived {
			archived = append(archived, t)
		}
	}
	if len(archived) == 0 {
		return a.reply(ic, a.msgs.T("archive_user_empty", "user", userMention(userID)))
	}
	sortByArchived(archived)
	if len(archived) > maxEmbedFields {
		archived = archived[:maxEmbedFields]
	}

	e := &discordgo.MessageEmbed{
		Title:       a.msgs.T("archive_user_title", "user", archived[0].CreatorTag),
		Description: a.msgs.T("archive_user_description", "user", userMention(userID), "count", strconv.Itoa(len(archived))),
		Color:       archiveUserColor,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	for _, t := range archived {
		e.Fields = append(e.Fields, a.archiveField(t, false))
	}
	return a.replyEmbed(ic, e)
}

func archiveStats(a *App, ic *interaction) error {
	archived := a.store.ArchivedTickets()
	info := a.store.Info()

	weekAgo := time.Now().Add(-7 * 24 * time.Hour)
	var auto, recent int
	for _, t := range archived {
		if t.AutoArchived {
			auto++
		}
		if t.ArchivedAt != nil && t.ArchivedAt.Time().After(weekAgo) {
			recent++
		}
	}

	var ticketsSize int64
	for _, f := range info.Files {
		if f.Document.String() == "tickets" {
			ticketsSize = f.Size
		}
	}

	count := func(n int) string {
		return a.msgs.T("archive_stats_count", "count", strconv.Itoa(n))
	}
	return a.replyEmbed(ic, &discordgo.MessageEmbed{
		Title:       a.msgs.T("archive_stats_title"),
		Description: a.msgs.T("archive_stats_description"),
		Color:       archiveStatsColor,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: a.msgs.T("archive_stats_footer")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: a.msgs.T("archive_stats_total"), Value: count(len(archived)), Inline: true},
			{Name: a.msgs.T("archive_stats_auto"), Value: count(auto), Inline: true},
			{Name: a.msgs.T("archive_stats_manual"), Value: count(len(archived) - auto), Inline: true},
			{Name: a.msgs.T("archive_stats_week"), Value: count(recent), Inline: true},
			{Name: a.msgs.T("archive_stats_active"), Value: count(info.Counts.ActiveTickets), Inline: true},
			{Name: a.msgs.T("archive_stats_closed"), Value: count(info.Counts.ClosedTickets), Inline: true},
			{Name: a.msgs.T("archive_stats_storage"), Value: custom.FormatBytes(info.TotalSize()), Inline: true},
			{Name: a.msgs.T("archive_stats_file"), Value: custom.FormatBytes(ticketsSize), Inline: true},
			{Name: a.msgs.T("archive_stats_dir"), Value: "`" + info.Dir + "`"},
		},
	})
}
