package health

import (
	"context"
	"encoding/json"
	"errors"
	"runtime"
	"strconv"
	"time"

	"portfolio-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is satisfied by *sql.DB. A nil pinger reports the database as disconnected.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

type Report struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	HeapAllocMB   int    `json:"heapAllocMb"`
	HeapInuseMB   int    `json:"heapInuseMb"`
	Goroutines    int    `json:"goroutines"`
	Platform      string `json:"platform"`
	GoVersion     string `json:"goVersion"`
}

type TrafficInfo struct {
	TotalRequests int                    `json:"totalRequests"`
	SuccessCount  int                    `json:"successCount"`
	FailedCount   int                    `json:"failedCount"`
	SuccessRate   float64                `json:"successRate"`
	AvgResponseMs float64                `json:"avgResponseMs"`
	LastRequest   map[string]interface{} `json:"lastRequest,omitempty"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

const (
	StatusOK    = "ok"
	StatusIssue = "issue"
)

// Collect gathers dependency status, request counters and runtime figures.
func Collect(ctx context.Context, rdb *redis.Client, db DBPinger) Report {
	r := Report{Dependencies: make(map[string]DepStatus, 2)}

	r.Dependencies["database"] = ping(func() error {
		if db == nil {
			return errDisconnected
		}
		return db.PingContext(ctx)
	})
	redisDep := ping(func() error {
		if rdb == nil {
			return errDisconnected
		}
		return rdb.Ping(ctx).Err()
	})
	r.Dependencies["redis"] = redisDep

	startMs := time.Now().UnixMilli()
	r.Traffic = TrafficInfo{SuccessRate: 100}
	if redisDep.Status == "connected" {
		r.Traffic, startMs = readTraffic(ctx, rdb, startMs)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptime := (time.Now().UnixMilli() - startMs) / 1000
	if uptime < 0 {
		uptime = 0
	}
	r.Runtime = RuntimeInfo{
		UptimeSeconds: uptime,
		HeapAllocMB:   int(m.HeapAlloc / 1024 / 1024),
		HeapInuseMB:   int(m.HeapInuse / 1024 / 1024),
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	r.Status = StatusIssue
	if r.Dependencies["database"].Status == "connected" && redisDep.Status == "connected" {
		r.Status = StatusOK
	}
	return r
}

var errDisconnected = errors.New("disconnected")

func ping(fn func() error) DepStatus {
	start := time.Now()
	err := fn()
	switch {
	case errors.Is(err, errDisconnected):
		return DepStatus{Status: "disconnected"}
	case err != nil:
		return DepStatus{Status: "error"}
	}
	ms := time.Since(start).Milliseconds()
	return DepStatus{Status: "connected", PingMs: &ms}
}

// readTraffic reads the counters kept by middleware.HealthMarker. The start
// time is initialised on first read.
func readTraffic(ctx context.Context, rdb *redis.Client, nowMs int64) (TrafficInfo, int64) {
	keys := []string{
		middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime,
		middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq,
	}
	vals, _ := rdb.MGet(ctx, keys...).Result()
	str := func(i int) string {
		if i < len(vals) {
			if s, ok := vals[i].(string); ok {
				return s
			}
		}
		return ""
	}

	t := TrafficInfo{SuccessRate: 100}
	t.TotalRequests, _ = strconv.Atoi(str(0))
	t.FailedCount, _ = strconv.Atoi(str(1))
	t.SuccessCount = t.TotalRequests - t.FailedCount
	if t.TotalRequests > 0 {
		t.SuccessRate = roundTo(float64(t.SuccessCount)/float64(t.TotalRequests)*100, 10)
	}
	timeSum, _ := strconv.ParseFloat(str(2), 64)
	if count, _ := strconv.Atoi(str(3)); count > 0 {
		t.AvgResponseMs = roundTo(timeSum/float64(count), 100)
	}

	startMs := nowMs
	if s := str(4); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			startMs = v
		}
	} else {
		rdb.Set(ctx, middleware.KeyStartTime, nowMs, 0)
	}
	if s := str(5); s != "" {
		_ = json.Unmarshal([]byte(s), &t.LastRequest)
	}
	return t, startMs
}

func roundTo(v float64, scale float64) float64 {
	return float64(int64(v*scale+0.5)) / scale
}

// ErrorLog returns the newest entries of the Redis error log.
func ErrorLog(ctx context.Context, rdb *redis.Client) ([]middleware.ErrorEntry, error) {
	raw, err := rdb.LRange(ctx, middleware.KeyErrorLog, 0, middleware.ErrorLogLimit-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]middleware.ErrorEntry, 0, len(raw))
	for _, s := range raw {
		var e middleware.ErrorEntry
		if json.Unmarshal([]byte(s), &e) == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

// Reset clears every counter and restarts the uptime clock.
func Reset(ctx context.Context, rdb *redis.Client) error {
	keys := []string{
		middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime, middleware.KeyResCount,
		middleware.KeyStartTime, middleware.KeyLastReq, middleware.KeyErrorLog,
	}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	return rdb.Set(ctx, middleware.KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err()
}
