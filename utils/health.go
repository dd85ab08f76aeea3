package utils

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Probe checks one dependency; nil means healthy.
type Probe func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Components map[string]bool `json:"components"`
	CheckedAt  time.Time       `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	out := HealthStatus{CheckedAt: currentHealth.CheckedAt, Components: make(map[string]bool, len(currentHealth.Components))}
	for k, v := range currentHealth.Components {
		out.Components[k] = v
	}
	return out
}

// RunHealthChecks runs every probe once and stores the snapshot.
func RunHealthChecks(ctx context.Context, probes map[string]Probe) HealthStatus {
	results := make(map[string]bool, len(probes))
	for name, probe := range probes {
		checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := probe(checkCtx)
		cancel()
		if err != nil {
			GetLogger().Debug("health probe failed", zap.String("component", name), zap.Error(err))
		}
		results[name] = err == nil
	}

	mu.Lock()
	currentHealth = HealthStatus{Components: results, CheckedAt: time.Now()}
	mu.Unlock()
	return GetHealthStatus()
}

// StartHealthMonitor performs periodic health checks until ctx is done.
func StartHealthMonitor(ctx context.Context, interval time.Duration, probes map[string]Probe) {
	go func() {
		RunHealthChecks(ctx, probes)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				RunHealthChecks(ctx, probes)
			}
		}
	}()
}
