package stats

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/alexivanou/weather-dashboard/internal/config"
	"github.com/alexivanou/weather-dashboard/internal/provider"
	"github.com/jmoiron/sqlx"
)

type Stats struct {
	Timestamp time.Time        `json:"timestamp"`
	Memory    MemoryStats      `json:"memory"`
	Database  DatabaseStats    `json:"database"`
	Runtime   RuntimeStats     `json:"runtime"`
	Provider  *provider.Health `json:"provider,omitempty"`
}

// MemoryStats is a trimmed view of runtime.MemStats
type MemoryStats struct {
	Alloc       uint64    `json:"alloc"`
	Sys         uint64    `json:"sys"`
	HeapInuse   uint64    `json:"heap_inuse"`
	HeapObjects uint64    `json:"heap_objects"`
	NumGC       uint32    `json:"num_gc"`
	GCPauseMs   uint64    `json:"gc_pause_total_ms"`
	SampledAt   time.Time `json:"sampled_at"`
}

type DatabaseStats struct {
	Type         string      `json:"type"`
	TotalRecords int64       `json:"total_records"`
	SizeBytes    int64       `json:"size_bytes"`
	TableStats   []TableStat `json:"table_stats"`
	StoredKeys   []string    `json:"stored_keys"`
}

type TableStat struct {
	Name      string `json:"name"`
	RowCount  int64  `json:"row_count"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

type RuntimeStats struct {
	GoVersion     string    `json:"go_version"`
	NumGoroutines int       `json:"num_goroutines"`
	NumCPU        int       `json:"num_cpu"`
	StartedAt     time.Time `json:"started_at"`
	Uptime        string    `json:"uptime"`
}

// HealthReporter exposes the provider circuit breaker
type HealthReporter interface {
	Health() provider.Health
}

// memSampler rate-limits runtime.ReadMemStats, which stops the world
type memSampler struct {
	mu   sync.Mutex
	ttl  time.Duration
	last *MemoryStats
}

func (s *memSampler) sample(now time.Time) MemoryStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last != nil && now.Sub(s.last.SampledAt) < s.ttl {
		return *s.last
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	s.last = &MemoryStats{
		Alloc:       m.Alloc,
		Sys:         m.Sys,
		HeapInuse:   m.HeapInuse,
		HeapObjects: m.HeapObjects,
		NumGC:       m.NumGC,
		GCPauseMs:   m.PauseTotalNs / uint64(time.Millisecond),
		SampledAt:   now,
	}
	return *s.last
}

type Collector struct {
	db       *sqlx.DB
	config   config.DBConfig
	provider HealthReporter
	started  time.Time
	memory   *memSampler
}

var tables = []string{"preferences"}

// NewCollector creates a collector. reporter may be nil when no provider is wired.
func NewCollector(db *sqlx.DB, cfg config.DBConfig, reporter HealthReporter) *Collector {
	return &Collector{
		db:       db,
		config:   cfg,
		provider: reporter,
		started:  time.Now(),
		memory:   &memSampler{ttl: 5 * time.Second},
	}
}

func (c *Collector) Collect(ctx context.Context) (*Stats, error) {
	now := time.Now()

	dbStats, err := c.collectDatabaseStats(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Timestamp: now,
		Memory:    c.memory.sample(now),
		Database:  *dbStats,
		Runtime: RuntimeStats{
			GoVersion:     runtime.Version(),
			NumGoroutines: runtime.NumGoroutine(),
			NumCPU:        runtime.NumCPU(),
			StartedAt:     c.started,
			Uptime:        now.Sub(c.started).Round(time.Second).String(),
		},
	}

	if c.provider != nil {
		health := c.provider.Health()
		stats.Provider = &health
	}

	return stats, nil
}

func (c *Collector) collectDatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	stats := &DatabaseStats{
		Type:       string(c.config.Type),
		TableStats: []TableStat{},
		StoredKeys: []string{},
	}

	dbSize := "SELECT pg_database_size(current_database())"
	if c.config.IsSQLite() {
		dbSize = "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
	}
	// size is informational; some builds cannot report it
	_ = c.db.GetContext(ctx, &stats.SizeBytes, dbSize)

	for _, table := range tables {
		stat, err := c.tableStat(ctx, table)
		if err != nil {
			continue
		}
		stats.TableStats = append(stats.TableStats, stat)
		stats.TotalRecords += stat.RowCount
	}

	if keys, err := c.storedKeys(ctx); err == nil {
		stats.StoredKeys = keys
	}

	return stats, nil
}

func (c *Collector) storedKeys(ctx context.Context) ([]string, error) {
	keys := []string{}
	if err := c.db.SelectContext(ctx, &keys, "SELECT key FROM preferences ORDER BY key"); err != nil {
		return nil, fmt.Errorf("failed to list stored keys: %w", err)
	}
	return keys, nil
}

func (c *Collector) tableStat(ctx context.Context, table string) (TableStat, error) {
	stat := TableStat{Name: table}

	if err := c.db.GetContext(ctx, &stat.RowCount, "SELECT COUNT(*) FROM "+table); err != nil {
		return stat, err
	}

	// dbstat only exists when SQLite is compiled with it
	sizeQuery := `SELECT COALESCE(pg_total_relation_size($1::regclass), 0)`
	if c.config.IsSQLite() {
		sizeQuery = `SELECT COALESCE(SUM(pgsize), 0) FROM dbstat WHERE name = ?`
	}
	_ = c.db.GetContext(ctx, &stat.SizeBytes, sizeQuery, table)

	return stat, nil
}
