// Package permissions evaluates what a member or the bot may do. Every function is
// pure: callers pass the live role and permission data in on each call.
package permissions

import (
	"strings"

	"github.com/Jacobbrewer1/ticketeer/pkg/entities"
)

// Config binds privileged identities and role names.
type Config struct {
	// OwnerIDs are the user ids with full access.
	OwnerIDs []string

	AdminRole   string
	SellerRole  string
	BuyerRole   string
	SupportRole string
}

// Member is the identity and role names of a guild member.
type Member struct {
	ID    string
	Roles []string
}

// HasRole reports whether the member holds a role with the given name.
func (m Member) HasRole(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range m.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// Level is the coarse permission level of a member.
type Level string

const (
	LevelOwner Level = "owner"
	LevelAdmin Level = "admin"
	LevelStaff Level = "staff"
	LevelUser  Level = "user"
)

// Categories holds the ids of the three ticket groupings.
type Categories struct {
	Active  string
	Closed  string
	Archive string
}

// Evaluator answers capability questions for a fixed configuration.
type Evaluator struct {
	cfg Config
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Config returns the configuration the evaluator was built with.
func (e *Evaluator) Config() Config {
	return e.cfg
}

func (e *Evaluator) IsOwner(m Member) bool {
	for _, id := range e.cfg.OwnerIDs {
		if id != "" && id == m.ID {
			return true
		}
	}
	return false
}

func (e *Evaluator) IsAdmin(m Member) bool {
	return m.HasRole(e.cfg.AdminRole)
}

// CanManage reports whether the member is an owner or an admin.
func (e *Evaluator) CanManage(m Member) bool {
	return e.IsOwner(m) || e.IsAdmin(m)
}

// StaffRoles are the role names that count as staff.
func (e *Evaluator) StaffRoles() []string {
	return []string{e.cfg.AdminRole, e.cfg.SellerRole, e.cfg.SupportRole}
}

func (e *Evaluator) HasStaffRole(m Member) bool {
	for _, r := range e.StaffRoles() {
		if m.HasRole(r) {
			return true
		}
	}
	return false
}

// CanAccessTicket reports whether the member created the ticket, is staff or is an owner.
func (e *Evaluator) CanAccessTicket(m Member, creatorID string) bool {
	return (creatorID != "" && m.ID == creatorID) || e.HasStaffRole(m) || e.IsOwner(m)
}

func (e *Evaluator) CanCloseTicket(m Member, creatorID string) bool {
	return e.CanAccessTicket(m, creatorID)
}

func (e *Evaluator) CanRenameTicket(m Member, creatorID string) bool {
	return e.CanAccessTicket(m, creatorID)
}

func (e *Evaluator) CanEditEmbeds(m Member) bool {
	return e.CanManage(m)
}

func (e *Evaluator) CanManageData(m Member) bool {
	return e.CanManage(m)
}

// Level returns the highest level the member holds.
func (e *Evaluator) Level(m Member) Level {
	switch {
	case e.IsOwner(m):
		return LevelOwner
	case e.IsAdmin(m):
		return LevelAdmin
	case e.HasStaffRole(m):
		return LevelStaff
	}
	return LevelUser
}

// TicketStaffRoles are the role names given access to a ticket of type t.
func (e *Evaluator) TicketStaffRoles(t entities.TicketType) []string {
	switch t {
	case entities.TicketTypeOrder:
		return []string{e.cfg.SellerRole, e.cfg.AdminRole}
	case entities.TicketTypeCS:
		return []string{e.cfg.SupportRole, e.cfg.AdminRole}
	case entities.TicketTypeGeneral:
		return []string{e.cfg.SupportRole, e.cfg.SellerRole, e.cfg.AdminRole}
	}
	return []string{e.cfg.SupportRole, e.cfg.SellerRole, e.cfg.AdminRole}
}

// IsTicketChannel reports whether a channel parented by parentID sits in one of the groupings.
func IsTicketChannel(parentID string, c Categories) bool {
	if parentID == "" {
		return false
	}
	return parentID == c.Active || parentID == c.Closed || parentID == c.Archive
}

// ParseOwnerIDs splits a comma separated id list, dropping blanks.
func ParseOwnerIDs(s string) []string {
	ids := make([]string, 0)
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
