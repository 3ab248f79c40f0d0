package embeds

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/ticketeer/pkg/dataaccess"
	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
	"github.com/Jacobbrewer1/ticketeer/pkg/permissions"
)

// Preset is a built in embed template.
type Preset struct {
	Name        string
	Title       string
	Description string
	Color       int
}

// PresetNames lists the built in templates in display order.
var PresetNames = []string{"announcement", "success", "warning", "error", "info", "event", "rules", "welcome"}

const fallbackPreset = "info"

// Presets returns the built in templates keyed by name.
func (c *Composer) Presets() map[string]Preset {
	return map[string]Preset{
		"announcement": {
			Title:       "📢 Important Announcement",
			Description: "This is an important announcement for every member of the server.",
			Color:       0x3498DB,
		},
		"success": {
			Title:       "✅ Success",
			Description: "The operation completed successfully!",
			Color:       c.cfg.SuccessColor,
		},
		"warning": {
			Title:       "⚠️ Warning",
			Description: "Please read this warning carefully.",
			Color:       c.cfg.WarningColor,
		},
		"error": {
			Title:       "❌ Something Went Wrong",
			Description: "An error occurred. Please try again or contact an administrator.",
			Color:       c.cfg.ErrorColor,
		},
		"info": {
			Title:       "ℹ️ Information",
			Description: "Here is some information you should know.",
			Color:       0x9B59B6,
		},
		"event": {
			Title:       "🎉 Special Event",
			Description: "Join our exciting event!\n\n🗓️ **When:** TBA\n📍 **Where:** Discord Server\n🎁 **Prize:** Surprise!",
			Color:       0xFF6B6B,
		},
		"rules": {
			Title:       "📝 Server Rules",
			Description: "**Please follow these rules:**\n\n1️⃣ Be polite and respectful\n2️⃣ No spam or flooding\n3️⃣ Use channels for their topic\n4️⃣ No NSFW content\n5️⃣ Follow moderator instructions",
			Color:       0x34495E,
		},
		"welcome": {
			Title:       "👋 Welcome!",
			Description: "Welcome to our server! We hope you feel at home here.\n\n🔹 Read the server rules\n🔹 Introduce yourself\n🔹 Enjoy your time here!",
			Color:       0x1ABC9C,
		},
	}
}

// Preset returns the named built in template with optional overrides. Unknown names
// fall back to the info preset.
func (c *Composer) Preset(name, title, content string) Preset {
	presets := c.Presets()
	p, ok := presets[name]
	if !ok {
		name = fallbackPreset
		p = presets[name]
	}
	p.Name = name
	if title != "" {
		p.Title = title
	}
	if content != "" {
		p.Description = content
	}
	return p
}

// CreateFromTemplate posts a built in template.
func (c *Composer) CreateFromTemplate(channelID, authorID, name, title, content string) (*discordgo.Message, error) {
	if err := checkLength("title", title, c.cfg.Limits.Title); err != nil {
		return nil, err
	}
	if err := checkLength("description", content, c.cfg.Limits.Description); err != nil {
		return nil, err
	}
	if err := c.canSend(channelID); err != nil {
		return nil, err
	}

	p := c.Preset(name, title, content)
	cfg := entities.EmbedConfig{
		Kind:        entities.EmbedKindTemplate,
		Title:       p.Title,
		Description: p.Description,
		Color:       p.Color,
		Template:    p.Name,
	}
	return c.post(channelID, authorID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{basicEmbed(cfg)}}, cfg)
}

// SaveTemplate stores a custom template under name.
func (c *Composer) SaveTemplate(name, authorID string, o BasicOptions) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}

	var color *int
	if o.Color != "" {
		v, err := ValidateHexColor(o.Color)
		if err != nil {
			return err
		}
		color = &v
	}
	if _, err := c.validateBasic(o, true); err != nil {
		return err
	}

	err := c.store.SaveTemplate(&entities.Template{
		Name:        name,
		Title:       o.Title,
		Description: o.Description,
		Color:       color,
		Thumbnail:   o.Thumbnail,
		Image:       o.Image,
		Footer:      o.Footer,
		AuthorID:    authorID,
	})
	if errors.Is(err, dataaccess.ErrDuplicate) {
		return fmt.Errorf("%s: %w", name, ErrTemplateExists)
	} else if err != nil {
		return fmt.Errorf("error saving template: %w", err)
	}
	return nil
}

// LoadTemplate posts a custom template.
func (c *Composer) LoadTemplate(channelID, authorID, name string) (*discordgo.Message, error) {
	t, err := c.store.GetTemplate(name)
	if errors.Is(err, dataaccess.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", name, ErrTemplateNotFound)
	} else if err != nil {
		return nil, fmt.Errorf("error getting template: %w", err)
	}
	if err := c.canSend(channelID); err != nil {
		return nil, err
	}

	color := c.cfg.DefaultColor
	if t.Color != nil {
		color = *t.Color
	}
	cfg := entities.EmbedConfig{
		Kind:        entities.EmbedKindTemplate,
		Title:       t.Title,
		Description: t.Description,
		Color:       color,
		Thumbnail:   t.Thumbnail,
		Image:       t.Image,
		Footer:      t.Footer,
		Template:    t.Name,
	}
	return c.post(channelID, authorID, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{basicEmbed(cfg)}}, cfg)
}

// DeleteTemplate removes a custom template. Only its creator or a manager may.
func (c *Composer) DeleteTemplate(name string, m permissions.Member) error {
	t, err := c.store.GetTemplate(name)
	if errors.Is(err, dataaccess.ErrNotFound) {
		return fmt.Errorf("%s: %w", name, ErrTemplateNotFound)
	} else if err != nil {
		return fmt.Errorf("error getting template: %w", err)
	}

	if t.AuthorID != m.ID && !c.perms.CanManage(m) {
		return ErrTemplateDenied
	}

	if err := c.store.DeleteTemplate(name); err != nil {
		return fmt.Errorf("error deleting template: %w", err)
	}
	return nil
}

// ListEmbed lists the custom templates, the embed counters and the built in templates.
func (c *Composer) ListEmbed() *discordgo.MessageEmbed {
	templates := c.store.ListTemplates()
	stats := c.store.EmbedStatistics()

	value := c.msgs.T("embed_list_no_templates")
	if len(templates) > 0 {
		lines := make([]string, 0, len(templates))
		for _, t := range templates {
			lines = append(lines, c.msgs.T("embed_list_template_entry", "name", t.Name, "author", t.AuthorID))
		}
		value = truncate(strings.Join(lines, "\n"), c.cfg.Limits.FieldValue)
	}

	return &discordgo.MessageEmbed{
		Title:     c.msgs.T("embed_list_title"),
		Color:     0x3498DB,
		Timestamp: c.timestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: c.msgs.T("embed_list_templates"), Value: value},
			{
				Name: c.msgs.T("embed_list_stats"),
				Value: c.msgs.T("embed_list_stats_value",
					"created", strconv.Itoa(stats.TotalCreated),
					"edited", strconv.Itoa(stats.TotalEdited),
					"templates", strconv.Itoa(len(templates)),
				),
				Inline: true,
			},
			{Name: c.msgs.T("embed_list_builtin"), Value: strings.Join(PresetNames, ", "), Inline: true},
		},
	}
}

// StatsEmbed shows the embed counters.
func (c *Composer) StatsEmbed() *discordgo.MessageEmbed {
	stats := c.store.EmbedStatistics()
	templates := len(c.store.ListTemplates())

	last := c.msgs.T("embed_stats_never")
	if stats.LastCreated != nil && !stats.LastCreated.IsZero() {
		last = fmt.Sprintf("<t:%d:R>", stats.LastCreated.Unix())
	}

	return &discordgo.MessageEmbed{
		Title:       c.msgs.T("embed_stats_title"),
		Description: c.msgs.T("embed_stats_description"),
		Color:       0x9B59B6,
		Timestamp:   c.timestamp(),
		Footer:      &discordgo.MessageEmbedFooter{Text: c.msgs.T("embed_stats_footer")},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   c.msgs.T("embed_stats_created"),
				Value:  c.msgs.T("embed_stats_created_value", "count", strconv.Itoa(stats.TotalCreated), "last", last),
				Inline: true,
			},
			{
				Name:   c.msgs.T("embed_stats_edited"),
				Value:  c.msgs.T("embed_stats_total", "count", strconv.Itoa(stats.TotalEdited)),
				Inline: true,
			},
			{
				Name:   c.msgs.T("embed_stats_templates"),
				Value:  c.msgs.T("embed_stats_total", "count", strconv.Itoa(templates)),
				Inline: true,
			},
		},
	}
}

// truncate cuts s to at most limit runes.
func truncate(s string, limit int) string {
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
