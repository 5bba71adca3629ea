package utils

import (
	"fmt"
	"log"
	"tradegate/config"
	"tradegate/database"
	"tradegate/services"

	"github.com/robfig/cron/v3"
)

// InitializeReevalScheduler starts the periodic sweep that redelivers
// unprocessed permission re-evaluation signals to the grant service.
// Completion-to-grant staleness is therefore bounded by one sweep interval;
// the immediate in-process attempt after a completion usually beats it.
func InitializeReevalScheduler() {
	interval := config.AppConfig.ReevalSweepSeconds
	if interval <= 0 {
		interval = 5
	}

	log.Printf("[REEVAL-SCHEDULER] Initializing re-evaluation sweep every %ds...", interval)

	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc(fmt.Sprintf("@every %ds", interval), func() {
		services.ProcessReevalSignals(database.Database.Db)
	})
	if err != nil {
		log.Fatalf("[REEVAL-SCHEDULER] Failed to schedule sweep: %v", err)
	}

	c.Start()
	log.Println("[REEVAL-SCHEDULER] Re-evaluation scheduler started")
}
