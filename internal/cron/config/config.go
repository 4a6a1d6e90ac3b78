package config

type Config struct {
	CronScheduleHeartbeat  string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 0 * * * *"`
	CronScheduleTrashPurge string `env:"CRON_SCHEDULE_TRASH_PURGE" envDefault:"0 0 2 * * *"`
	TrashRetentionDays     int    `env:"TRASH_RETENTION_DAYS" envDefault:"30"`
}
