package students

import "time"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "Pending"
	EnrollmentEnrolled  EnrollmentStatus = "Enrolled"
	EnrollmentCompleted EnrollmentStatus = "Completed"
	EnrollmentDropped   EnrollmentStatus = "Dropped"
)

// Qualification is one O/L or A/L exam result
type Qualification struct {
	ID      *int   `json:"id,omitempty"`
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
	Year    int    `json:"year"`
	Type    string `json:"type"` // "OL" or "AL"
}

type Student struct {
	ID                          *int             `json:"id,omitempty"`
	RegistrationNo              string           `json:"registration_no"`
	DistrictCode                string           `json:"district_code,omitempty"`
	CourseCode                  string           `json:"course_code,omitempty"`
	Batch                       *int             `json:"batch,omitempty"`
	BatchDisplay                string           `json:"batch_display,omitempty"`
	BatchCode                   string           `json:"batch_code,omitempty"`
	ProfilePhotoURL             string           `json:"profile_photo_url,omitempty"`
	BatchYear                   string           `json:"batch_year,omitempty"`
	StudentNumber               int              `json:"student_number,omitempty"`
	RegistrationYear            string           `json:"registration_year,omitempty"`
	FullNameEnglish             string           `json:"full_name_english"`
	FullNameSinhala             string           `json:"full_name_sinhala"`
	NameWithInitials            string           `json:"name_with_initials"`
	Gender                      Gender           `json:"gender"`
	DateOfBirth                 string           `json:"date_of_birth"`
	NICID                       string           `json:"nic_id"`
	AddressLine                 string           `json:"address_line"`
	District                    string           `json:"district"`
	DivisionalSecretariat       string           `json:"divisional_secretariat"`
	GramaNiladhariDivision      string           `json:"grama_niladhari_division"`
	Village                     string           `json:"village"`
	MaritalStatus               string           `json:"marital_status"`
	MobileNo                    string           `json:"mobile_no"`
	Email                       string           `json:"email"`
	OLResults                   []Qualification  `json:"ol_results"`
	ALResults                   []Qualification  `json:"al_results"`
	TrainingReceived            bool             `json:"training_received"`
	TrainingProvider            string           `json:"training_provider"`
	CourseVocationName          string           `json:"course_vocation_name"`
	TrainingDuration            string           `json:"training_duration"`
	TrainingNature              string           `json:"training_nature"`
	TrainingEstablishment       string           `json:"training_establishment"`
	TrainingPlacementPreference string           `json:"training_placement_preference"`
	Center                      *int             `json:"center,omitempty"`
	CenterName                  string           `json:"center_name,omitempty"`
	Course                      *int             `json:"course,omitempty"`
	CourseName                  string           `json:"course_name,omitempty"`
	CourseCodeDisplay           string           `json:"course_code_display,omitempty"`
	EnrollmentDate              string           `json:"enrollment_date,omitempty"`
	EnrollmentStatus            EnrollmentStatus `json:"enrollment_status,omitempty"`
	DateOfApplication           string           `json:"date_of_application"`
	CreatedAt                   *time.Time       `json:"created_at,omitempty"`
	UpdatedAt                   *time.Time       `json:"updated_at,omitempty"`
}

// Filter narrows List. Zero values are not sent.
type Filter struct {
	Search           string
	District         string
	Center           int
	Course           int
	EnrollmentStatus EnrollmentStatus
	TrainingReceived *bool
}

type Stats struct {
	TotalStudents      int            `json:"total_students"`
	TrainedStudents    int            `json:"trained_students"`
	EnrolledStudents   int            `json:"enrolled_students"`
	CompletedStudents  int            `json:"completed_students"`
	PendingStudents    int            `json:"pending_students"`
	WithOLResults      int            `json:"with_ol_results"`
	WithALResults      int            `json:"with_al_results"`
	RecentStudents     int            `json:"recent_students"`
	CenterDistribution map[string]int `json:"center_distribution"`
}

type ImportResult struct {
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// QRCode is the payload encoded in a student's QR code
type QRCode struct {
	StudentID        int    `json:"student_id"`
	RegistrationNo   string `json:"registration_no"`
	FullName         string `json:"full_name"`
	NICID            string `json:"nic_id"`
	CourseName       string `json:"course_name"`
	CenterName       string `json:"center_name"`
	EnrollmentStatus string `json:"enrollment_status"`
}

type RegistrationPreviewRequest struct {
	District       string `json:"district"`
	CourseID       *int   `json:"course_id,omitempty"`
	EnrollmentDate string `json:"enrollment_date,omitempty"`
	BatchID        *int   `json:"batch_id,omitempty"`
}

type RegistrationPreview struct {
	DistrictCode     string            `json:"district_code"`
	CourseCode       string            `json:"course_code"`
	BatchID          *int              `json:"batch_id"`
	BatchCode        string            `json:"batch_code"`
	BatchName        string            `json:"batch_name"`
	StudentNumber    string            `json:"student_number"`
	Year             string            `json:"year"`
	FullRegistration string            `json:"full_registration"`
	Explanation      map[string]string `json:"explanation"`
}

type RegistrationFormats struct {
	Format   string `json:"format"`
	Examples []struct {
		Format      string `json:"format"`
		Explanation string `json:"explanation"`
	} `json:"examples"`
	Note string `json:"note"`
}

type DistrictCode struct {
	ID           int    `json:"id"`
	DistrictName string `json:"district_name"`
	DistrictCode string `json:"district_code"`
	Description  string `json:"description"`
}

type CourseCode struct {
	ID          int    `json:"id"`
	CourseName  string `json:"course_name"`
	CourseCode  string `json:"course_code"`
	Description string `json:"description"`
}

type BatchYear struct {
	ID          int    `json:"id"`
	YearCode    string `json:"year_code"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type Batch struct {
	ID           int    `json:"id"`
	BatchCode    string `json:"batch_code"`
	BatchName    string `json:"batch_name"`
	Description  string `json:"description"`
	IsActive     bool   `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}
