package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alumni-portal/models"
)

func TestStatsServedFromCache(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewDashboardService(nil, rdb, 5*time.Minute)

	cached := &models.DashboardStats{
		Alumni:      120,
		Departments: 4,
		Events:      9,
		DepartmentDistribution: []models.NameCount{
			{Name: "Computer Science", Count: 70},
			{Name: "Mechanical", Count: 50},
		},
		LastUpdated: time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)

	// A cache hit never touches the database; the service has no app here
	// and would panic if it tried to compute.
	mock.ExpectGet("dashboard:stats:all").SetVal(string(data))

	stats, err := svc.Stats(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 120, stats.Alumni)
	assert.Equal(t, cached.DepartmentDistribution, stats.DepartmentDistribution)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsCacheKeyPerScope(t *testing.T) {
	assert.Equal(t, "dashboard:stats:all", cacheKey(""))
	assert.Equal(t, "dashboard:stats:dept123", cacheKey("dept123"))
}

func TestInvalidateDropsScopeAndGlobal(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	svc := NewDashboardService(nil, rdb, time.Minute)

	mock.ExpectDel("dashboard:stats:all", "dashboard:stats:dept123").SetVal(2)
	svc.Invalidate(context.Background(), "dept123")
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectDel("dashboard:stats:all").SetVal(1)
	svc.Invalidate(context.Background(), "")
	assert.NoError(t, mock.ExpectationsWereMet())
}
