// Package reports wraps the role dashboards (head office, district, training officer),
// their spreadsheet and PDF exports, and the generic generated-report store.
package reports

import (
	"encoding/json"
	"time"
)

type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

type Period string

const (
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodCustom    Period = "custom"
)

// ExportOptions are the optional export parameters. Include maps a section name such as
// "centers" to whether the export carries it, sent as include_<name>.
type ExportOptions struct {
	StartDate string
	EndDate   string
	Include   map[string]bool
}

// Export describes one dashboard export
type Export struct {
	Format     Format
	Period     Period
	ReportType string
	Options    ExportOptions
}

type TrainingOfficerReport struct {
	OverallStats struct {
		TotalStudents    int     `json:"total_students"`
		TotalCenters     int     `json:"total_centers"`
		TotalInstructors int     `json:"total_instructors"`
		TotalCourses     int     `json:"total_courses"`
		ActiveCourses    int     `json:"active_courses"`
		CompletionRate   float64 `json:"completion_rate"`
	} `json:"overall_stats"`
	TrainingPrograms struct {
		TotalPrograms     int `json:"total_programs"`
		ActivePrograms    int `json:"active_programs"`
		PendingApproval   int `json:"pending_approval"`
		ApprovedPrograms  int `json:"approved_programs"`
		CompletedPrograms int `json:"completed_programs"`
		InactivePrograms  int `json:"inactive_programs"`
	} `json:"training_programs"`
	TrainingProgress struct {
		TotalTrained      int `json:"total_trained"`
		InTraining        int `json:"in_training"`
		CompletedTraining int `json:"completed_training"`
		AwaitingTraining  int `json:"awaiting_training"`
		DroppedTraining   int `json:"dropped_training"`
	} `json:"training_progress"`
	CenterPerformance   []CenterPerformance   `json:"center_performance"`
	InstructorMetrics   []InstructorMetric    `json:"instructor_metrics"`
	CourseEffectiveness []CourseEffectiveness `json:"course_effectiveness"`
	TrainingTrends      []TrainingTrend       `json:"training_trends"`
	PendingApprovals    struct {
		CourseApprovals  int `json:"course_approvals"`
		GeneralApprovals int `json:"general_approvals"`
	} `json:"pending_approvals"`
	UserDistrict      string `json:"user_district"`
	Period            string `json:"period"`
	ReportGeneratedAt string `json:"report_generated_at"`
	GeneratedBy       string `json:"generated_by"`
}

type CenterPerformance struct {
	CenterName     string  `json:"center_name"`
	TotalStudents  int     `json:"total_students"`
	TotalCourses   int     `json:"total_courses"`
	CompletionRate float64 `json:"completion_rate"`
	AttendanceRate float64 `json:"attendance_rate"`
	Performance    string  `json:"performance"`
}

type InstructorMetric struct {
	InstructorName    string  `json:"instructor_name"`
	Email             string  `json:"email"`
	TotalCourses      int     `json:"total_courses"`
	TotalStudents     int     `json:"total_students"`
	CompletedStudents int     `json:"completed_students"`
	CompletionRate    float64 `json:"completion_rate"`
	AttendanceRate    float64 `json:"attendance_rate"`
	Performance       string  `json:"performance"`
}

type CourseEffectiveness struct {
	CourseName     string  `json:"course_name"`
	CourseCode     string  `json:"course_code"`
	Category       string  `json:"category"`
	Instructor     string  `json:"instructor"`
	Status         string  `json:"status"`
	TotalEnrolled  int     `json:"total_enrolled"`
	CompletionRate float64 `json:"completion_rate"`
	AttendanceRate float64 `json:"attendance_rate"`
	Duration       string  `json:"duration"`
	Schedule       string  `json:"schedule"`
}

type TrainingTrend struct {
	Month             string `json:"month"`
	NewStudents       int    `json:"new_students"`
	CompletedTraining int    `json:"completed_training"`
	NewCourses        int    `json:"new_courses"`
}

// Slice is one segment of a distribution chart
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type HeadOfficeReport struct {
	Summary struct {
		TotalDistricts   int     `json:"total_districts"`
		TotalCenters     int     `json:"total_centers"`
		TotalStudents    int     `json:"total_students"`
		TotalCourses     int     `json:"total_courses"`
		TotalInstructors int     `json:"total_instructors"`
		CompletionRate   float64 `json:"completion_rate"`
		PendingApprovals int     `json:"pending_approvals"`
	} `json:"summary"`
	DistrictPerformance []struct {
		Name        string  `json:"name"`
		Centers     int     `json:"centers"`
		Students    int     `json:"students"`
		Instructors int     `json:"instructors"`
		Completion  float64 `json:"completion"`
		Growth      float64 `json:"growth"`
	} `json:"district_performance"`
	IslandTrends []struct {
		Period         string `json:"period"`
		Enrollment     int    `json:"enrollment"`
		Completions    int    `json:"completions"`
		NewInstructors int    `json:"new_instructors"`
	} `json:"island_trends"`
	CourseDistribution   []Slice `json:"course_distribution"`
	TopPerformingCenters []struct {
		Name        string  `json:"name"`
		District    string  `json:"district"`
		Students    int     `json:"students"`
		Instructors int     `json:"instructors"`
		Completion  float64 `json:"completion"`
	} `json:"top_performing_centers"`
	InstructorSummary []struct {
		District  string  `json:"district"`
		Total     int     `json:"total"`
		Active    int     `json:"active"`
		AvgRating float64 `json:"avg_rating"`
	} `json:"instructor_summary"`
}

// Current wraps a single figure in the district summary
type Current struct {
	Current float64 `json:"current"`
}

// DistrictReport uses the backend's camelCase keys.
type DistrictReport struct {
	Summary struct {
		TotalCenters     Current `json:"totalCenters"`
		TotalCourses     Current `json:"totalCourses"`
		TotalUsers       Current `json:"totalUsers"`
		PendingApprovals Current `json:"pendingApprovals"`
		ActiveStudents   Current `json:"activeStudents"`
		CompletionRate   Current `json:"completionRate"`
	} `json:"summary"`
	CenterPerformance []struct {
		Name       string  `json:"name"`
		Students   int     `json:"students"`
		Courses    int     `json:"courses"`
		Completion float64 `json:"completion"`
	} `json:"centerPerformance"`
	EnrollmentTrend []struct {
		Period     string `json:"period"`
		Enrollment int    `json:"enrollment"`
		Approvals  int    `json:"approvals"`
	} `json:"enrollmentTrend"`
	CourseDistribution []Slice `json:"courseDistribution"`
	RecentApprovals    []struct {
		ID     int    `json:"id"`
		Type   string `json:"type"`
		Name   string `json:"name"`
		Status string `json:"status"`
		Date   string `json:"date"`
	} `json:"recentApprovals"`
}

// Stored is a report held by the generic report store
type Stored struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	GeneratedAt time.Time `json:"generated_at"`
	DownloadURL string    `json:"download_url"`
	Status      string    `json:"status"` // "pending", "completed" or "failed"
}

type GenerateResult struct {
	ReportID int    `json:"report_id"`
	Status   string `json:"status"`
}

// SystemReport is left undecoded; its shape varies with the period and center asked for.
type SystemReport = json.RawMessage
