package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/tcms-client/access"
	"github.com/jrsteele09/tcms-client/apiclient"
	"github.com/jrsteele09/tcms-client/approvals"
	"github.com/jrsteele09/tcms-client/attendance"
	"github.com/jrsteele09/tcms-client/auth"
	"github.com/jrsteele09/tcms-client/centers"
	"github.com/jrsteele09/tcms-client/courses"
	"github.com/jrsteele09/tcms-client/internal/config"
	"github.com/jrsteele09/tcms-client/internal/errors"
	"github.com/jrsteele09/tcms-client/overview"
	"github.com/jrsteele09/tcms-client/reports"
	"github.com/jrsteele09/tcms-client/reqstate"
	"github.com/jrsteele09/tcms-client/session"
	"github.com/jrsteele09/tcms-client/students"
	"github.com/jrsteele09/tcms-client/users"
	"go.uber.org/fx"
)

const (
	configEnvHint    = config.ConfigPathEnvVar
	passwordEnvVar   = "TCMS_PASSWORD"
	bannerFont       = "cybermedium"
	defaultReportDir = "."
)

type command struct {
	summary string
	run     func(ctx context.Context, args []string) error
}

type cliParams struct {
	fx.In

	Options    globalOptions
	Config     config.Config
	Sessions   *session.Manager
	Auth       *auth.Service
	Access     *access.Checker
	Users      *users.API
	Centers    *centers.API
	Courses    *courses.API
	Approvals  *approvals.API
	Students   *students.API
	Attendance *attendance.API
	Reports    *reports.API
	Overview   *overview.API
}

type cli struct {
	cliParams
	commands map[string]command
}

func newCLI(p cliParams) *cli {
	c := &cli{cliParams: p}
	c.commands = map[string]command{
		"login":             {"sign in and store the session", c.login},
		"logout":            {"forget the stored session", c.logout},
		"whoami":            {"show the signed in user", c.whoami},
		"refresh":           {"exchange the refresh token for a new access token", c.refresh},
		"users":             {"list users, optionally by role", c.listUsers},
		"centers":           {"list training centers", c.listCenters},
		"courses":           {"list courses", c.listCourses},
		"approvals":         {"list pending course approvals", c.listApprovals},
		"students":          {"list students", c.listStudents},
		"students-export":   {"download students as csv or excel", c.exportStudents},
		"students-import":   {"upload a spreadsheet of students", c.importStudents},
		"attendance-report": {"generate an attendance report for a course", c.attendanceReport},
		"reports":           {"show a role dashboard: head-office, district or training-officer", c.roleReport},
		"overview":          {"show the landing-page overview, dashboard counters or instructor overview", c.overview},
	}
	return c
}

func (c *cli) execute(ctx context.Context, name string, args []string) error {
	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd.run(ctx, args)
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "usage: tcms [-config file] [-o yaml|json] <command> [flags]")
	fmt.Fprintln(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	c := newCLI(cliParams{})
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-18s %s\n", name, c.commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, config.Usage())
}

// show runs fn and renders its data.
func show[T any](ctx context.Context, c *cli, fn func(context.Context) (T, error)) error {
	res := reqstate.Do(ctx, fn)
	if res.Err != nil {
		return res.Err
	}
	return c.print(res.Data)
}

func (c *cli) print(v any) error {
	return render(c.Options.Out, c.Options.Output, v)
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.Options.ErrOut)
	return fs
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := c.flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (default $"+passwordEnvVar+")")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		*password = os.Getenv(passwordEnvVar)
	}

	res := reqstate.Do(ctx, func(ctx context.Context) (session.Session, error) {
		if _, err := c.Auth.Login(ctx, *email, *password); err != nil {
			return session.Session{}, err
		}
		return c.Sessions.Snapshot(ctx)
	})
	if res.Err != nil {
		return res.Err
	}

	fmt.Fprintln(c.Options.Out, figure.NewFigure(c.Config.GetAppName(), bannerFont, true).String())
	return c.print(profileView(res.Data))
}

func (c *cli) logout(ctx context.Context, _ []string) error {
	c.Auth.Logout(ctx)
	fmt.Fprintln(c.Options.Out, "signed out")
	return nil
}

type profile struct {
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	District      string   `json:"district,omitempty"`
	CenterID      string   `json:"center_id,omitempty"`
	CenterName    string   `json:"center_name,omitempty"`
	Authenticated bool     `json:"authenticated"`
	Reports       []string `json:"reports,omitempty"`
}

func profileView(s session.Session) profile {
	p := profile{
		Name:          access.UserName(s),
		Role:          access.Role(s),
		District:      access.District(s),
		CenterID:      access.CenterID(s),
		CenterName:    access.CenterName(s),
		Authenticated: access.IsAuthenticated(s),
	}
	if access.CanAccessHeadOfficeReports(s) {
		p.Reports = append(p.Reports, "head-office")
	}
	if access.CanAccessDistrictReports(s) {
		p.Reports = append(p.Reports, "district")
	}
	if access.CanAccessTrainingOfficerReports(s) {
		p.Reports = append(p.Reports, "training-officer")
	}
	return p
}

func (c *cli) whoami(ctx context.Context, args []string) error {
	fs := c.flags("whoami")
	remote := fs.Bool("remote", false, "fetch the profile from the backend")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !c.Access.IsAuthenticated(ctx) {
		return errors.ErrNotAuthenticated
	}
	if *remote {
		return show(ctx, c, c.Auth.CurrentUser)
	}
	return show(ctx, c, func(ctx context.Context) (profile, error) {
		s, err := c.Sessions.Snapshot(ctx)
		return profileView(s), err
	})
}

func (c *cli) refresh(ctx context.Context, _ []string) error {
	res := reqstate.Do(ctx, c.Auth.Refresh)
	if res.Err != nil {
		return res.Err
	}
	fmt.Fprintln(c.Options.Out, "access token refreshed")
	return nil
}

func (c *cli) listUsers(ctx context.Context, args []string) error {
	fs := c.flags("users")
	roleFlag := fs.String("role", "", "only users with this role")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *roleFlag == "" {
		return show(ctx, c, c.Users.List)
	}
	role, ok := users.ParseRole(*roleFlag)
	if !ok {
		return errors.Wrapf(errors.ErrInvalidArgument, "role %q", *roleFlag)
	}
	return show(ctx, c, func(ctx context.Context) ([]users.User, error) {
		return c.Users.ListByRole(ctx, role)
	})
}

func (c *cli) listCenters(ctx context.Context, _ []string) error {
	return show(ctx, c, c.Centers.List)
}

func (c *cli) listCourses(ctx context.Context, args []string) error {
	fs := c.flags("courses")
	var filter courses.Filter
	status := fs.String("status", "", "Pending, Approved, Rejected, Active or Inactive")
	fs.StringVar(&filter.District, "district", "", "district name")
	fs.StringVar(&filter.Category, "category", "", "course category")
	fs.IntVar(&filter.Center, "center", 0, "center id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter.Status = courses.Status(*status)
	return show(ctx, c, func(ctx context.Context) ([]courses.Course, error) {
		return c.Courses.List(ctx, filter)
	})
}

func (c *cli) listApprovals(ctx context.Context, args []string) error {
	fs := c.flags("approvals")
	general := fs.Bool("general", false, "list general approvals instead of course approvals")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *general {
		return show(ctx, c, c.Approvals.ListGeneral)
	}
	return show(ctx, c, c.Approvals.List)
}

func (c *cli) listStudents(ctx context.Context, args []string) error {
	fs := c.flags("students")
	var filter students.Filter
	fs.StringVar(&filter.Search, "search", "", "name, NIC or registration number")
	fs.StringVar(&filter.District, "district", "", "district name")
	fs.IntVar(&filter.Center, "center", 0, "center id")
	fs.IntVar(&filter.Course, "course", 0, "course id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return show(ctx, c, func(ctx context.Context) ([]students.Student, error) {
		return c.Students.List(ctx, filter)
	})
}

func (c *cli) exportStudents(ctx context.Context, args []string) error {
	fs := c.flags("students-export")
	format := fs.String("format", string(students.ExportCSV), "csv or excel")
	out := fs.String("out", "", "output file (default: the name the server suggests)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res := reqstate.Do(ctx, func(ctx context.Context) (*apiclient.Blob, error) {
		return c.Students.Export(ctx, students.ExportFormat(*format))
	})
	if res.Err != nil {
		return res.Err
	}

	path := *out
	if path == "" {
		path = res.Data.Filename
	}
	if path == "" {
		path = "students." + exportExtension(students.ExportFormat(*format))
	}
	return c.save(path, res.Data.Data)
}

func exportExtension(format students.ExportFormat) string {
	if format == students.ExportExcel {
		return "xlsx"
	}
	return "csv"
}

func (c *cli) importStudents(ctx context.Context, args []string) error {
	fs := c.flags("students-import")
	path := fs.String("file", "", "csv or excel file to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return errors.Wrapf(errors.ErrInvalidArgument, "-file is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		return err
	}
	defer f.Close()

	return show(ctx, c, func(ctx context.Context) (*students.ImportResult, error) {
		return c.Students.Import(ctx, filepath.Base(*path), f)
	})
}

func (c *cli) attendanceReport(ctx context.Context, args []string) error {
	fs := c.flags("attendance-report")
	var req attendance.ReportRequest
	format := fs.String("format", string(attendance.FormatExcel), "excel or pdf")
	fs.IntVar(&req.CourseID, "course", 0, "course id")
	fs.StringVar(&req.Period, "period", "weekly", "daily, weekly, monthly or custom")
	fs.StringVar(&req.StartDate, "start", "", "first day of a custom period (YYYY-MM-DD)")
	fs.StringVar(&req.EndDate, "end", "", "last day of a custom period (YYYY-MM-DD)")
	dir := fs.String("out", defaultReportDir, "directory to write the report to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if req.CourseID == 0 {
		return errors.Wrapf(errors.ErrInvalidArgument, "-course is required")
	}
	req.Format = attendance.ReportFormat(*format)

	res := reqstate.Do(ctx, func(ctx context.Context) (*attendance.Report, error) {
		return c.Attendance.GenerateReport(ctx, req)
	})
	if res.Err != nil {
		return res.Err
	}
	return c.save(filepath.Join(*dir, filepath.Base(res.Data.Filename)), res.Data.Data)
}

func (c *cli) roleReport(ctx context.Context, args []string) error {
	fs := c.flags("reports")
	period := fs.String("period", "", "training-officer only: weekly, monthly or quarterly")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch kind := strings.ToLower(fs.Arg(0)); kind {
	case "head-office":
		if !c.Access.CanAccessHeadOfficeReports(ctx) {
			return c.forbidden(ctx, kind)
		}
		return show(ctx, c, c.Reports.HeadOffice)
	case "district":
		if !c.Access.CanAccessDistrictReports(ctx) {
			return c.forbidden(ctx, kind)
		}
		return show(ctx, c, c.Reports.District)
	case "training-officer":
		if !c.Access.CanAccessTrainingOfficerReports(ctx) {
			return c.forbidden(ctx, kind)
		}
		return show(ctx, c, func(ctx context.Context) (*reports.TrainingOfficerReport, error) {
			return c.Reports.TrainingOfficer(ctx, reports.Period(*period))
		})
	default:
		return errors.Wrapf(errors.ErrInvalidArgument, "report %q, want head-office, district or training-officer", kind)
	}
}

func (c *cli) overview(ctx context.Context, args []string) error {
	fs := c.flags("overview")
	stats := fs.Bool("stats", false, "show the dashboard counters instead")
	instructor := fs.Bool("instructor", false, "show the signed in instructor's overview instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch {
	case *stats && *instructor:
		return errors.Wrapf(errors.ErrInvalidArgument, "-stats and -instructor are exclusive")
	case *stats:
		return show(ctx, c, c.Overview.DashboardStats)
	case *instructor:
		return show(ctx, c, c.Overview.Instructor)
	default:
		return show(ctx, c, c.Overview.Overview)
	}
}

func (c *cli) forbidden(ctx context.Context, report string) error {
	role := c.Access.Role(ctx)
	if role == "" {
		return errors.ErrNotAuthenticated
	}
	return errors.Wrapf(errors.ErrForbidden, "%s reports are not available to role %q", report, role)
}

func (c *cli) save(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(c.Options.ErrOut, "wrote %s (%d bytes)\n", path, len(data))
	return nil
}
