package models

import (
	"time"
)

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// DashboardStats is the aggregated analytics snapshot for one scope
// (global for directors, per-department otherwise).
type DashboardStats struct {
	Alumni      int `json:"alumni"`
	Departments int `json:"departments"`
	Events      int `json:"events"`
	Users       int `json:"users"`

	DepartmentDistribution []NameCount `json:"department_distribution"`
	YearlyGrowth           []YearCount `json:"yearly_growth"`
	PlacementBreakdown     []NameCount `json:"placement_breakdown"`

	LastUpdated time.Time `json:"last_updated"`
}
