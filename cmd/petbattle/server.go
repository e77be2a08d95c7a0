package main

import (
	"time"

	"github.com/pawhaven/petbattle/internal/service"
	"github.com/pawhaven/petbattle/internal/storage"
)

// startTimeoutScanner expires overdue battles on a fixed interval,
// delegating the per-battle handling to service.HandleTimedOutBattle.
func startTimeoutScanner(repo storage.Repository, notifier service.Notifier, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			service.ExpireTimedOutBattles(repo, notifier, time.Now())
		}
	}()
}
