package dto

import "github.com/spec-kit/event-marketplace/internal/domain"

// RejectVendorRequest payload.
type RejectVendorRequest struct {
	Reason string `json:"reason"`
}

// DashboardResponse carries the admin headline numbers.
type DashboardResponse struct {
	TotalUsers     int64   `json:"total_users"`
	TotalVendors   int64   `json:"total_vendors"`
	PendingVendors int64   `json:"pending_vendors"`
	TotalEvents    int64   `json:"total_events"`
	TotalContracts int64   `json:"total_contracts"`
	TotalRevenue   float64 `json:"total_revenue"`
}

// GrowthPointResponse is one month of the growth report.
type GrowthPointResponse struct {
	Month   string `json:"month"`
	Users   int64  `json:"users"`
	Vendors int64  `json:"vendors"`
	Events  int64  `json:"events"`
}

func NewDashboardResponse(s *domain.DashboardStats) DashboardResponse {
	return DashboardResponse{
		TotalUsers:     s.TotalUsers,
		TotalVendors:   s.TotalVendors,
		PendingVendors: s.PendingVendors,
		TotalEvents:    s.TotalEvents,
		TotalContracts: s.TotalContracts,
		TotalRevenue:   s.TotalRevenue,
	}
}

// NewGrowthReport maps growth points, formatting months as YYYY-MM.
func NewGrowthReport(points []domain.GrowthPoint) []GrowthPointResponse {
	out := make([]GrowthPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, GrowthPointResponse{
			Month:   p.Month.Format("2006-01"),
			Users:   p.Users,
			Vendors: p.Vendors,
			Events:  p.Events,
		})
	}
	return out
}
