package domain

// EventAnalytics aggregates registration activity for a single event.
// CapacityUtilization is registrations over capacity as a percentage; zero
// when the event has no capacity set.
type EventAnalytics struct {
	TotalRegistrations    int             `json:"total_registrations"`
	TotalTickets          int             `json:"total_tickets"`
	CapacityUtilization   float64         `json:"capacity_utilization"`
	RegistrationBreakdown map[string]int  `json:"registration_breakdown"`
	RecentRegistrations   []*Registration `json:"recent_registrations"`
}

// AdminStats holds platform-wide aggregate counts for the admin dashboard
type AdminStats struct {
	TotalUsers         int     `json:"total_users"`
	TotalOrganizers    int     `json:"total_organizers"`
	TotalEvents        int     `json:"total_events"`
	TotalRegistrations int     `json:"total_registrations"`
	TotalRevenue       float64 `json:"total_revenue"`
}
