package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/redis/go-redis/v9"

	"alumni-portal/models"
	"alumni-portal/monitoring"
)

// DashboardService computes the aggregate stats behind the portal dashboard.
// Results are cached in redis per scope; without redis every call recomputes.
type DashboardService struct {
	app   *pocketbase.PocketBase
	redis *redis.Client
	ttl   time.Duration
}

func NewDashboardService(app *pocketbase.PocketBase, rdb *redis.Client, ttl time.Duration) *DashboardService {
	return &DashboardService{app: app, redis: rdb, ttl: ttl}
}

// Stats returns the dashboard numbers for the given scope. An empty
// departmentID means the global (director) view.
func (s *DashboardService) Stats(ctx context.Context, departmentID string) (*models.DashboardStats, error) {
	key := cacheKey(departmentID)

	if s.redis != nil {
		if data, err := s.redis.Get(ctx, key).Bytes(); err == nil {
			var stats models.DashboardStats
			if json.Unmarshal(data, &stats) == nil {
				monitoring.TrackDashboardCache(true)
				return &stats, nil
			}
		}
		monitoring.TrackDashboardCache(false)
	}

	stats, err := s.compute(departmentID)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, key, data, s.ttl).Err(); err != nil {
				slog.Warn("dashboard cache write failed", "error", err)
			}
		}
	}
	return stats, nil
}

// Invalidate drops the cached stats for a scope (and the global view, which
// any department change also affects).
func (s *DashboardService) Invalidate(ctx context.Context, departmentID string) {
	if s.redis == nil {
		return
	}
	keys := []string{cacheKey("")}
	if departmentID != "" {
		keys = append(keys, cacheKey(departmentID))
	}
	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("dashboard cache invalidation failed", "error", err)
	}
}

func cacheKey(departmentID string) string {
	if departmentID == "" {
		return "dashboard:stats:all"
	}
	return "dashboard:stats:" + departmentID
}

func (s *DashboardService) compute(departmentID string) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{LastUpdated: time.Now()}

	var err error
	if stats.Alumni, err = s.count("alumni", departmentID); err != nil {
		return nil, err
	}
	if stats.Events, err = s.count("events", departmentID); err != nil {
		return nil, err
	}
	if stats.Users, err = s.count("users", departmentID); err != nil {
		return nil, err
	}
	if stats.Departments, err = s.count("departments", ""); err != nil {
		return nil, err
	}

	if stats.DepartmentDistribution, err = s.departmentDistribution(departmentID); err != nil {
		return nil, err
	}
	if stats.YearlyGrowth, err = s.yearlyGrowth(departmentID); err != nil {
		return nil, err
	}
	if stats.PlacementBreakdown, err = s.placementBreakdown(departmentID); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *DashboardService) count(table, departmentID string) (int, error) {
	sql := fmt.Sprintf("SELECT COUNT(*) AS c FROM %s", table)
	params := dbx.Params{}
	if departmentID != "" {
		sql += " WHERE department = {:dept}"
		params["dept"] = departmentID
	}

	var row struct {
		C int `db:"c"`
	}
	if err := s.app.DB().NewQuery(sql).Bind(params).One(&row); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return row.C, nil
}

func (s *DashboardService) departmentDistribution(departmentID string) ([]models.NameCount, error) {
	sql := `SELECT d.name AS name, COUNT(a.id) AS c
		FROM alumni a
		JOIN departments d ON d.id = a.department`
	params := dbx.Params{}
	if departmentID != "" {
		sql += " WHERE a.department = {:dept}"
		params["dept"] = departmentID
	}
	sql += " GROUP BY d.name ORDER BY c DESC"

	var rows []struct {
		Name string `db:"name"`
		C    int    `db:"c"`
	}
	if err := s.app.DB().NewQuery(sql).Bind(params).All(&rows); err != nil {
		return nil, fmt.Errorf("department distribution: %w", err)
	}
	out := make([]models.NameCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.NameCount{Name: r.Name, Count: r.C})
	}
	return out, nil
}

func (s *DashboardService) yearlyGrowth(departmentID string) ([]models.YearCount, error) {
	sql := "SELECT graduation_year AS y, COUNT(*) AS c FROM alumni WHERE graduation_year > 0"
	params := dbx.Params{}
	if departmentID != "" {
		sql += " AND department = {:dept}"
		params["dept"] = departmentID
	}
	sql += " GROUP BY graduation_year ORDER BY graduation_year"

	var rows []struct {
		Y int `db:"y"`
		C int `db:"c"`
	}
	if err := s.app.DB().NewQuery(sql).Bind(params).All(&rows); err != nil {
		return nil, fmt.Errorf("yearly growth: %w", err)
	}
	out := make([]models.YearCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.YearCount{Year: r.Y, Count: r.C})
	}
	return out, nil
}

func (s *DashboardService) placementBreakdown(departmentID string) ([]models.NameCount, error) {
	sql := `SELECT COALESCE(NULLIF(placement_status, ''), 'unknown') AS name, COUNT(*) AS c
		FROM alumni`
	params := dbx.Params{}
	if departmentID != "" {
		sql += " WHERE department = {:dept}"
		params["dept"] = departmentID
	}
	sql += " GROUP BY name ORDER BY c DESC"

	var rows []struct {
		Name string `db:"name"`
		C    int    `db:"c"`
	}
	if err := s.app.DB().NewQuery(sql).Bind(params).All(&rows); err != nil {
		return nil, fmt.Errorf("placement breakdown: %w", err)
	}
	out := make([]models.NameCount, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.NameCount{Name: r.Name, Count: r.C})
	}
	return out, nil
}
