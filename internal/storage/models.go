package storage

// Message represents one processed inbound message and how it was handled.
type Message struct {
	ID             int64  `json:"id"`
	Sender         string `json:"sender"`
	Body           string `json:"body"`
	Department     string `json:"department"`
	Redirected     bool   `json:"redirected"`
	ResponseTimeMs int64  `json:"response_time_ms"`
	CreatedAt      int64  `json:"created_at"` // Unix timestamp
}

// DepartmentCount is the number of messages routed to one department.
type DepartmentCount struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// DayCount is the number of messages received on one calendar day.
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// Redirect records one wa.me link handed to a student.
type Redirect struct {
	ID         int64  `json:"id"`
	Sender     string `json:"sender"`
	Department string `json:"department"`
	Link       string `json:"link"`
	CreatedAt  int64  `json:"created_at"` // Unix timestamp
	Clicked    bool   `json:"clicked"`
	ClickedAt  int64  `json:"clicked_at,omitempty"` // Unix timestamp, zero if never clicked
}

// RedirectStats aggregates redirect history for the dashboard.
type RedirectStats struct {
	TotalRedirects int64             `json:"total_redirects"`
	ByDepartment   []DepartmentCount `json:"by_department"`
	ClickRate      float64           `json:"click_rate"`
}

// Stats aggregates message history for the dashboard.
type Stats struct {
	TotalMessages     int64             `json:"total_messages"`
	ByDepartment      []DepartmentCount `json:"by_department"`
	ByDay             []DayCount        `json:"by_day"` // last 7 days
	AvgResponseTimeMs float64           `json:"avg_response_time_ms"`
	RedirectRate      float64           `json:"redirect_rate"`
}
