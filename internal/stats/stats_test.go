package stats

import (
	"context"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/alexivanou/weather-dashboard/internal/config"
	"github.com/alexivanou/weather-dashboard/internal/database"
	"github.com/alexivanou/weather-dashboard/internal/provider"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sqlx.DB, config.DBConfig) {
	cfg := config.DBConfig{
		Type: config.DBTypeMemory,
		Name: fmt.Sprintf("stats_%s", t.Name()),
	}
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db, cfg, "../../migrations"))

	return db, cfg
}

type fixedHealth provider.Health

func (f fixedHealth) Health() provider.Health {
	return provider.Health(f)
}

func TestCollector_Collect(t *testing.T) {
	db, cfg := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO preferences (key, value) VALUES ('searchCity', 'Paris')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO preferences (key, value) VALUES ('searchHistory', '["Paris"]')`)
	require.NoError(t, err)

	collector := NewCollector(db, cfg, fixedHealth{Circuit: "closed", Requests: 3})

	stats, err := collector.Collect(ctx)
	require.NoError(t, err)

	assert.Equal(t, "memory", stats.Database.Type)
	assert.Equal(t, int64(2), stats.Database.TotalRecords)
	assert.Equal(t, []string{"searchCity", "searchHistory"}, stats.Database.StoredKeys)

	require.Len(t, stats.Database.TableStats, 1)
	assert.Equal(t, "preferences", stats.Database.TableStats[0].Name)
	assert.Equal(t, int64(2), stats.Database.TableStats[0].RowCount)

	require.NotNil(t, stats.Provider)
	assert.Equal(t, "closed", stats.Provider.Circuit)
	assert.Equal(t, uint32(3), stats.Provider.Requests)

	assert.Greater(t, stats.Memory.Alloc, uint64(0))
	assert.GreaterOrEqual(t, stats.Runtime.NumGoroutines, 1)
	assert.Equal(t, runtime.Version(), stats.Runtime.GoVersion)
	assert.NotEmpty(t, stats.Runtime.Uptime)

	stats2, err := collector.Collect(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats.Memory.Alloc, stats2.Memory.Alloc)
}

func TestCollector_EmptyDB(t *testing.T) {
	db, cfg := setupTestDB(t)
	defer db.Close()

	collector := NewCollector(db, cfg, nil)

	stats, err := collector.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Database.TotalRecords)
	assert.Empty(t, stats.Database.StoredKeys)
	assert.Nil(t, stats.Provider)
}

func TestMemSampler(t *testing.T) {
	sampler := &memSampler{ttl: time.Minute}
	start := time.Now()

	first := sampler.sample(start)
	assert.Equal(t, start, first.SampledAt)

	// within the ttl the cached sample is returned
	assert.Equal(t, first, sampler.sample(start.Add(30*time.Second)))

	later := start.Add(2 * time.Minute)
	assert.Equal(t, later, sampler.sample(later).SampledAt)
}
