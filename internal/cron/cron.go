package cron

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v6"
	cronv3 "github.com/robfig/cron/v3"

	"github.com/mailflow/mailflow/config"
	cron_config "github.com/mailflow/mailflow/internal/cron/config"
	"github.com/mailflow/mailflow/internal/logger"
	"github.com/mailflow/mailflow/internal/tracing"
	"github.com/mailflow/mailflow/internal/utils"
	"github.com/mailflow/mailflow/services/email"
)

const (
	// GroupMailflow is the group for mailflow related jobs
	GroupMailflow = "mailflow"
)

// LOCK MANAGEMENT
var jobLocks = struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}{
	locks: map[string]*sync.Mutex{
		GroupMailflow: new(sync.Mutex),
	},
}

type CronManager struct {
	cfg          *config.Config
	log          logger.Logger
	cron         *cronv3.Cron
	stopCh       chan struct{}
	jobIDs       map[string]cronv3.EntryID
	emailService *email.EmailService
}

func NewCronManager(cfg *config.Config, log logger.Logger, emailService *email.EmailService) *CronManager {
	return &CronManager{
		cfg:          cfg,
		log:          log,
		stopCh:       make(chan struct{}),
		jobIDs:       make(map[string]cronv3.EntryID),
		emailService: emailService,
	}
}

// Stop gracefully stops the cron manager
func (cm *CronManager) Stop() {
	if cm.cron != nil {
		cm.log.Info("Stopping cron manager")
		ctx := cm.cron.Stop()
		// Wait for jobs to finish
		<-ctx.Done()
	}
	close(cm.stopCh)
}

// registerJobs adds all cron jobs to the scheduler
func (cm *CronManager) registerJobs(c *cronv3.Cron) {
	var cronConfig cron_config.Config
	if err := env.Parse(&cronConfig); err != nil {
		cm.log.Fatalf("Failed to parse cron config from environment: %v", err)
	}

	if cronConfig.CronScheduleHeartbeat != "" {
		podName := os.Getenv("POD_NAME")
		if podName == "" {
			podName = "local"
		}
		id, err := c.AddFunc(cronConfig.CronScheduleHeartbeat, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			cm.log.Infof("Cron heartbeat from pod: %s", podName)
		})
		if err != nil {
			cm.log.Fatalf("Could not add heartbeat cron job: %v", err)
		}
		cm.jobIDs["heartbeat"] = id
		cm.log.Infof("Registered heartbeat job with schedule: %s", cronConfig.CronScheduleHeartbeat)
	}

	if cronConfig.CronScheduleTrashPurge != "" {
		retention := cronConfig.TrashRetentionDays
		id, err := c.AddFunc(cronConfig.CronScheduleTrashPurge, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			jobLocks.locks[GroupMailflow].Lock()
			defer jobLocks.locks[GroupMailflow].Unlock()
			cm.purgeExpiredTrash(retention)
		})
		if err != nil {
			cm.log.Fatalf("Could not add trash purge cron job: %v", err)
		}
		cm.jobIDs["trash_purge"] = id
		cm.log.Infof("Registered trash purge job with schedule: %s", cronConfig.CronScheduleTrashPurge)
	}
}

// StartCron initializes and starts the cron scheduler
func (cm *CronManager) StartCron() {
	cm.log.Info("Starting cron manager")
	// Seconds field enabled, jobs skip when a previous run is still going
	cronOptions := []cronv3.Option{
		cronv3.WithSeconds(),
		cronv3.WithChain(
			cronv3.SkipIfStillRunning(cronv3.DefaultLogger),
			cronv3.Recover(cronv3.DefaultLogger),
		),
	}
	c := cronv3.New(cronOptions...)
	cm.registerJobs(c)
	c.Start()
	cm.cron = c
}

// purgeExpiredTrash permanently deletes emails that sat in trash past the
// retention window.
func (cm *CronManager) purgeExpiredTrash(retentionDays int) {
	cm.log.Info("Running trash purge")

	ctx := context.Background()

	span, ctx := tracing.StartTracerSpan(ctx, "CronManager.purgeExpiredTrash")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	cutoff := utils.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour)
	result := cm.emailService.PurgeTrashedBefore(ctx, cutoff)
	if !result.Succeeded {
		cm.log.Errorf("Failed to purge expired trash: %s", result.Error)
		return
	}

	cm.log.Infof("Trash purge removed %d emails", result.Count)
}
