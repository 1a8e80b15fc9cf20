// Package overview reads the landing-page figures each role sees after login: the
// role-scoped overview, the dashboard counters and the instructor's own overview.
package overview

// Trend is the change of one figure against the previous period.
type Trend struct {
	Value      float64 `json:"value"`
	IsPositive bool    `json:"isPositive"`
}

type Activity struct {
	ID       string `json:"id"`
	Activity string `json:"activity"`
	Time     string `json:"time"`
	Type     string `json:"type"` // "success", "info", "warning" or "error"
}

type Overview struct {
	TotalCenters     int     `json:"total_centers"`
	ActiveStudents   int     `json:"active_students"`
	TotalInstructors int     `json:"total_instructors"`
	CompletionRate   float64 `json:"completion_rate"`
	EnrollmentData   []struct {
		Month    string `json:"month"`
		Students int    `json:"students"`
	} `json:"enrollment_data"`
	CenterPerformanceData []struct {
		Name  string  `json:"name"`
		Value float64 `json:"value"`
		Color string  `json:"color"`
	} `json:"center_performance_data"`
	RecentActivities []Activity `json:"recent_activities"`
	Trends           struct {
		Centers     Trend `json:"centers"`
		Students    Trend `json:"students"`
		Instructors Trend `json:"instructors"`
		Completion  Trend `json:"completion"`
	} `json:"trends"`

	// The sections below are only sent to the roles they concern.
	DistrictSummary *struct {
		TotalDistricts   int `json:"total_districts"`
		ActiveDistricts  int `json:"active_districts"`
		NewDistrictsWeek int `json:"new_districts_week"`
	} `json:"district_summary,omitempty"`
	TrainingSummary *struct {
		ActiveCourses  int `json:"active_courses"`
		CompletedMonth int `json:"completed_month"`
		Upcoming       int `json:"upcoming"`
	} `json:"training_summary,omitempty"`
	SystemStats *struct {
		ActiveUsers    int    `json:"active_users"`
		APIStatus      string `json:"api_status"`
		DatabaseStatus string `json:"database_status"`
	} `json:"system_stats,omitempty"`
	UserDistrict string `json:"user_district,omitempty"`
}

type DashboardStats struct {
	TotalStudents    int `json:"total_students"`
	TotalCenters     int `json:"total_centers"`
	TotalCourses     int `json:"total_courses"`
	ActiveCourses    int `json:"active_courses"`
	PendingApprovals int `json:"pending_approvals"`
	RecentActivity   struct {
		NewStudents      int `json:"new_students"`
		NewCourses       int `json:"new_courses"`
		CompletedCourses int `json:"completed_courses"`
	} `json:"recent_activity"`
	EnrollmentStats struct {
		Enrolled  int `json:"enrolled"`
		Completed int `json:"completed"`
		Pending   int `json:"pending"`
		Dropped   int `json:"dropped"`
	} `json:"enrollment_stats"`
	TrainingStats struct {
		Trained    int `json:"trained"`
		NotTrained int `json:"not_trained"`
	} `json:"training_stats"`
}

// InstructorOverview uses the backend's camelCase keys.
type InstructorOverview struct {
	Stats struct {
		WeeklyHours      float64 `json:"weeklyHours"`
		TotalStudents    int     `json:"totalStudents"`
		CompletedCourses int     `json:"completedCourses"`
		UpcomingClasses  int     `json:"upcomingClasses"`
		Performance      float64 `json:"performance"`
		AttendanceRate   float64 `json:"attendanceRate"`
	} `json:"stats"`
	UpcomingClasses []UpcomingClass `json:"upcomingClasses"`
	RecentActivity  []struct {
		ID     string `json:"id"`
		Action string `json:"action"`
		Course string `json:"course"`
		Time   string `json:"time"`
	} `json:"recentActivity"`
}

type UpcomingClass struct {
	ID       string `json:"id"`
	Course   string `json:"course"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Students int    `json:"students"`
}
