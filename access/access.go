// Package access derives what the signed-in user may see from their session.
//
// Every answer here comes from unverified token claims. It decides which screens and
// commands are offered, nothing more: the backend checks every request on its own.
package access

import (
	"context"
	"strings"

	"github.com/jrsteele09/tcms-client/session"
	"github.com/jrsteele09/tcms-client/users"
	"github.com/rs/zerolog"
)

func Role(s session.Session) string { return s.Role }
func District(s session.Session) string { return s.District }
func CenterID(s session.Session) string { return s.CenterID }
func CenterName(s session.Session) string { return s.CenterName }

// UserName is first and last name joined by a space, trimmed.
func UserName(s session.Session) string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// IsAuthenticated reports whether an access token is stored. Expiry is not checked.
func IsAuthenticated(s session.Session) bool {
	return s.AccessToken != ""
}

func HasRole(s session.Session, role users.RoleType) bool {
	return s.Role == string(role)
}

func CanAccessHeadOfficeReports(s session.Session) bool {
	return HasRole(s, users.RoleAdmin)
}

func CanAccessDistrictReports(s session.Session) bool {
	return HasRole(s, users.RoleDistrictManager)
}

func CanAccessTrainingOfficerReports(s session.Session) bool {
	return HasRole(s, users.RoleTrainingOfficer)
}

// Snapshotter is satisfied by *session.Manager.
type Snapshotter interface {
	Snapshot(ctx context.Context) (session.Session, error)
}

// Checker answers the same questions against the current stored session. It never fails:
// a store error is logged and read as an empty session.
type Checker struct {
	sessions Snapshotter
	log      zerolog.Logger
}

func NewChecker(sessions Snapshotter, log zerolog.Logger) *Checker {
	return &Checker{sessions: sessions, log: log}
}

func (c *Checker) current(ctx context.Context) session.Session {
	s, err := c.sessions.Snapshot(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("session unreadable, treating as logged out")
		return session.Session{}
	}
	return s
}

func (c *Checker) Role(ctx context.Context) string { return Role(c.current(ctx)) }
func (c *Checker) District(ctx context.Context) string { return District(c.current(ctx)) }
func (c *Checker) CenterID(ctx context.Context) string { return CenterID(c.current(ctx)) }
func (c *Checker) CenterName(ctx context.Context) string { return CenterName(c.current(ctx)) }
func (c *Checker) UserName(ctx context.Context) string { return UserName(c.current(ctx)) }

func (c *Checker) IsAuthenticated(ctx context.Context) bool {
	return IsAuthenticated(c.current(ctx))
}

func (c *Checker) CanAccessHeadOfficeReports(ctx context.Context) bool {
	return CanAccessHeadOfficeReports(c.current(ctx))
}

func (c *Checker) CanAccessDistrictReports(ctx context.Context) bool {
	return CanAccessDistrictReports(c.current(ctx))
}

func (c *Checker) CanAccessTrainingOfficerReports(ctx context.Context) bool {
	return CanAccessTrainingOfficerReports(c.current(ctx))
}
