package attendance

import (
	"time"

	"github.com/jrsteele09/tcms-client/courses"
	"github.com/jrsteele09/tcms-client/students"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
)

type Record struct {
	ID             int               `json:"id"`
	Student        int               `json:"student"`
	StudentDetails *students.Student `json:"student_details,omitempty"`
	Course         int               `json:"course"`
	CourseDetails  *courses.Course   `json:"course_details,omitempty"`
	Date           string            `json:"date"`
	Status         Status            `json:"status"`
	CheckInTime    *string           `json:"check_in_time,omitempty"`
	Remarks        *string           `json:"remarks,omitempty"`
	RecordedBy     int               `json:"recorded_by"`
	RecordedAt     *time.Time        `json:"recorded_at,omitempty"`
}

// Mark records one student's attendance for a day
type Mark struct {
	Student     int     `json:"student"`
	Course      int     `json:"course"`
	Date        string  `json:"date"`
	Status      Status  `json:"status"`
	CheckInTime *string `json:"check_in_time,omitempty"`
	Remarks     *string `json:"remarks,omitempty"`
}

type BulkEntry struct {
	StudentID   int     `json:"student_id"`
	Status      Status  `json:"status"`
	CheckInTime *string `json:"check_in_time,omitempty"`
	Remarks     *string `json:"remarks,omitempty"`
}

type BulkUpdate struct {
	Date       string      `json:"date"`
	Attendance []BulkEntry `json:"attendance"`
}

type BulkResult struct {
	Message string   `json:"message"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// Filter narrows List. Zero values are not sent.
type Filter struct {
	Course int
	Date   string
	Status Status
}

// CourseStudent is a student on a course roll with their mark for today, if any
type CourseStudent struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	NIC              string  `json:"nic"`
	AttendanceStatus *Status `json:"attendance_status"`
	CheckInTime      *string `json:"check_in_time"`
	Remarks          *string `json:"remarks"`
}

type Summary struct {
	ID             int     `json:"id"`
	Course         int     `json:"course"`
	Date           string  `json:"date"`
	TotalStudents  int     `json:"total_students"`
	PresentCount   int     `json:"present_count"`
	AbsentCount    int     `json:"absent_count"`
	LateCount      int     `json:"late_count"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type StudentStats struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Phone                string  `json:"phone"`
	NIC                  string  `json:"nic"`
	AttendancePercentage float64 `json:"attendance_percentage"`
	TotalClasses         int     `json:"total_classes"`
	PresentClasses       int     `json:"present_classes"`
	LateClasses          int     `json:"late_classes"`
	AbsentClasses        int     `json:"absent_classes"`
	Status               string  `json:"status"` // "active", "at-risk" or "inactive"
	LastActive           string  `json:"last_active"`
	EnrollmentStatus     string  `json:"enrollment_status"`
}

// ScanResult is the backend's answer to a scanned QR code
type ScanResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Record  *Record `json:"attendance,omitempty"`
}

type ReportFormat string

const (
	FormatExcel ReportFormat = "excel"
	FormatPDF   ReportFormat = "pdf"
)

// ReportRequest is the body of a report generation call. Period is one of daily, weekly,
// monthly or custom; custom periods need StartDate and EndDate.
type ReportRequest struct {
	CourseID  int          `json:"course_id"`
	Period    string       `json:"period"`
	Format    ReportFormat `json:"format"`
	StartDate string       `json:"start_date,omitempty"`
	EndDate   string       `json:"end_date,omitempty"`
}

// Report is a generated report file
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}

// StoredReport is a report kept on the server
type StoredReport struct {
	ID          int       `json:"id"`
	Course      int       `json:"course"`
	Period      string    `json:"period"`
	Format      string    `json:"format"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	FileURL     string    `json:"file_url"`
	FileName    string    `json:"file_name"`
	GeneratedBy int       `json:"generated_by"`
	GeneratedAt time.Time `json:"generated_at"`
	Status      string    `json:"status"` // "processing", "completed" or "failed"
}
