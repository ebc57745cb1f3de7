package domain

import "time"

// DashboardStats aggregates admin counters.
type DashboardStats struct {
	TotalUsers     int64
	TotalVendors   int64
	PendingVendors int64
	TotalEvents    int64
	TotalContracts int64
	TotalRevenue   float64
}

// GrowthPoint is one month of sign-up and creation counts.
type GrowthPoint struct {
	Month   time.Time
	Users   int64
	Vendors int64
	Events  int64
}
