package health

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"gfg-stable-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is satisfied by *sql.DB. A nil pinger reports the database as disconnected.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// Checker gathers the /health/json report.
type Checker struct {
	DB          DBPinger
	Redis       *redis.Client
	FrontendURL string
	HTTPClient  *http.Client
	Started     time.Time
}

// CollectResult is the /health/json body and the data behind the dashboard.
type CollectResult struct {
	Service      string               `json:"service"`
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Goroutines    int        `json:"goroutines"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	Alloc    int `json:"alloc"`
	HeapUsed int `json:"heapUsed"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime string      `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

func ping(fn func() error) (string, *int64) {
	start := time.Now()
	if err := fn(); err != nil {
		return "error", nil
	}
	ms := time.Since(start).Milliseconds()
	return "connected", &ms
}

// Collect pings the database and redis, reads the traffic counters kept by
// middleware.HealthMarker and, when a frontend URL is set, checks it is reachable.
// Status is "ok" only when the database answers and redis, if configured, answers too.
func (h *Checker) Collect(ctx context.Context) CollectResult {
	result := CollectResult{
		Service:      "gfg-stable-api",
		Dependencies: make(map[string]DepStatus),
		Traffic:      TrafficInfo{SuccessRate: "100", AvgResponseTime: "0"},
	}

	dbStatus := "disconnected"
	var dbPing *int64
	if h.DB != nil {
		dbStatus, dbPing = ping(func() error { return h.DB.PingContext(ctx) })
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPing}

	started := h.Started
	redisStatus := "disconnected"
	var redisPing *int64
	if h.Redis != nil {
		redisStatus, redisPing = ping(func() error { return h.Redis.Ping(ctx).Err() })
		if redisStatus == "connected" {
			result.Traffic, started = h.traffic(ctx, started)
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPing}

	if h.FrontendURL != "" {
		status, ms := "unreachable", h.httpPing(ctx, h.FrontendURL)
		if ms != nil {
			status = "reachable"
		}
		result.Dependencies["frontend"] = DepStatus{Status: status, PingMs: ms}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptime := int64(0)
	if !started.IsZero() {
		uptime = int64(time.Since(started).Seconds())
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptime,
		Memory:        MemoryInfo{Alloc: int(m.Alloc / 1024 / 1024), HeapUsed: int(m.HeapInuse / 1024 / 1024)},
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	result.Status = "issue"
	if dbStatus == "connected" && (h.Redis == nil || redisStatus == "connected") {
		result.Status = "ok"
	}
	return result
}

func (h *Checker) traffic(ctx context.Context, started time.Time) (TrafficInfo, time.Time) {
	stats := TrafficInfo{SuccessRate: "100", AvgResponseTime: "0"}
	vals, err := h.Redis.MGet(ctx,
		middleware.KeyReqTotal,
		middleware.KeyReqErrors,
		middleware.KeyResTime,
		middleware.KeyResCount,
		middleware.KeyStartTime,
		middleware.KeyLastReq,
	).Result()
	if err != nil {
		return stats, started
	}
	str := func(i int) string {
		s, _ := vals[i].(string)
		return s
	}

	if ms, err := strconv.ParseInt(str(4), 10, 64); err == nil {
		started = time.UnixMilli(ms)
	} else {
		if started.IsZero() {
			started = time.Now()
		}
		h.Redis.SetNX(ctx, middleware.KeyStartTime, started.UnixMilli(), 0)
	}

	stats.TotalRequests, _ = strconv.Atoi(str(0))
	stats.FailedCount, _ = strconv.Atoi(str(1))
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(str(2), 64)
	count, _ := strconv.Atoi(str(3))
	if count > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(count), 'f', 2, 64)
	}
	if last := str(5); last != "" {
		var lastReq map[string]interface{}
		if json.Unmarshal([]byte(last), &lastReq) == nil {
			stats.LastRequest = lastReq
		}
	}
	return stats, started
}

func (h *Checker) httpPing(ctx context.Context, url string) *int64 {
	client := h.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	ms := time.Since(start).Milliseconds()
	return &ms
}

// Reset clears the counters and the error log and restarts the uptime clock.
func Reset(ctx context.Context, rdb *redis.Client) error {
	if err := rdb.Del(ctx, middleware.HealthKeys...).Err(); err != nil {
		return err
	}
	return rdb.Set(ctx, middleware.KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err()
}

// ErrorLog returns the most recent 5xx entries, newest first.
func ErrorLog(ctx context.Context, rdb *redis.Client, n int64) ([]map[string]interface{}, error) {
	entries, err := rdb.LRange(ctx, middleware.KeyErrorLog, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(entries))
	for _, s := range entries {
		var m map[string]interface{}
		if json.Unmarshal([]byte(s), &m) == nil {
			out = append(out, m)
		}
	}
	return out, nil
}
