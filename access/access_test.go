package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrsteele09/tcms-client/access"
	"github.com/jrsteele09/tcms-client/session"
	"github.com/jrsteele09/tcms-client/session/memstore"
	"github.com/jrsteele09/tcms-client/users"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestEmptySessionReadsAsEmptyStrings(t *testing.T) {
	var empty session.Session

	require.Equal(t, "", access.Role(empty))
	require.Equal(t, "", access.District(empty))
	require.Equal(t, "", access.CenterID(empty))
	require.Equal(t, "", access.CenterName(empty))
	require.Equal(t, "", access.UserName(empty))
	require.False(t, access.IsAuthenticated(empty))
	require.False(t, access.CanAccessHeadOfficeReports(empty))
	require.False(t, access.CanAccessDistrictReports(empty))
	require.False(t, access.CanAccessTrainingOfficerReports(empty))
}

func TestUserName(t *testing.T) {
	fixtures := []struct {
		first, last, want string
	}{
		{first: "Jane", last: "Doe", want: "Jane Doe"},
		{first: "Jane", last: "", want: "Jane"},
		{first: "", last: "Doe", want: "Doe"},
		{first: "", last: "", want: ""},
	}
	for _, f := range fixtures {
		require.Equal(t, f.want, access.UserName(session.Session{FirstName: f.first, LastName: f.last}))
	}
}

func TestReportAccessMatchesRoleExactly(t *testing.T) {
	candidates := []string{"", "admin", "Admin", "admin ", "district_manager", "training_officer",
		"data_entry", "instructor", "super_admin", "ADMIN"}

	for _, role := range candidates {
		s := session.Session{Role: role}
		require.Equal(t, role == "admin", access.CanAccessHeadOfficeReports(s), role)
		require.Equal(t, role == "district_manager", access.CanAccessDistrictReports(s), role)
		require.Equal(t, role == "training_officer", access.CanAccessTrainingOfficerReports(s), role)
		require.Equal(t, role, access.Role(s))
	}
}

func TestHasRole(t *testing.T) {
	s := session.Session{Role: string(users.RoleDataEntry)}
	require.True(t, access.HasRole(s, users.RoleDataEntry))
	require.False(t, access.HasRole(s, users.RoleInstructor))
}

func TestCheckerReadsStoredSession(t *testing.T) {
	ctx := context.Background()
	sessions := session.NewManager(memstore.New())
	checker := access.NewChecker(sessions, zerolog.Nop())

	require.False(t, checker.IsAuthenticated(ctx))
	require.Equal(t, "", checker.Role(ctx))

	require.NoError(t, sessions.Put(ctx, map[session.Key]string{
		session.KeyAccessToken: "a",
		session.KeyRole:        "district_manager",
		session.KeyDistrict:    "Kandy",
		session.KeyCenterID:    "7",
		session.KeyCenterName:  "Kandy North",
		session.KeyFirstName:   "Ravi",
		session.KeyLastName:    "Perera",
	}))

	require.True(t, checker.IsAuthenticated(ctx))
	require.Equal(t, "district_manager", checker.Role(ctx))
	require.Equal(t, "Kandy", checker.District(ctx))
	require.Equal(t, "7", checker.CenterID(ctx))
	require.Equal(t, "Kandy North", checker.CenterName(ctx))
	require.Equal(t, "Ravi Perera", checker.UserName(ctx))
	require.True(t, checker.CanAccessDistrictReports(ctx))
	require.False(t, checker.CanAccessHeadOfficeReports(ctx))
	require.False(t, checker.CanAccessTrainingOfficerReports(ctx))
}

type brokenStore struct{}

func (brokenStore) Snapshot(context.Context) (session.Session, error) {
	return session.Session{}, errors.New("disk on fire")
}

func TestCheckerTreatsStoreErrorsAsLoggedOut(t *testing.T) {
	checker := access.NewChecker(brokenStore{}, zerolog.Nop())

	require.NotPanics(t, func() {
		require.False(t, checker.IsAuthenticated(context.Background()))
		require.Equal(t, "", checker.UserName(context.Background()))
	})
}
