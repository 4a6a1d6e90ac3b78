package config

import (
	"github.com/mailflow/mailflow/internal/logger"
	"github.com/mailflow/mailflow/internal/tracing"
)

type AppConfig struct {
	APIPort     string `env:"PORT,required" envDefault:"11000"`
	APIKey      string `env:"API_KEY,required"`
	RabbitMQURL string `env:"RABBITMQ_URL"`
	Logger      *logger.Config
	Tracing     *tracing.JaegerConfig
}

type DatabaseConfig struct {
	Host            string `env:"MAILFLOW_POSTGRES_HOST,required"`
	Port            string `env:"MAILFLOW_POSTGRES_PORT,required"`
	User            string `env:"MAILFLOW_POSTGRES_USER,required"`
	DBName          string `env:"MAILFLOW_POSTGRES_DB_NAME,required"`
	Password        string `env:"MAILFLOW_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"MAILFLOW_POSTGRES_DB_MAX_CONN"`
	MaxIdleConn     int    `env:"MAILFLOW_POSTGRES_DB_MAX_IDLE_CONN"`
	ConnMaxLifetime int    `env:"MAILFLOW_POSTGRES_DB_CONN_MAX_LIFETIME"`
	LogLevel        string `env:"MAILFLOW_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"MAILFLOW_POSTGRES_SSL_MODE"`
}

type StorageConfig struct {
	Region           string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID      string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey  string `env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint         string `env:"AWS_S3_ENDPOINT"`
	AttachmentBucket string `env:"BUCKET_NAME_ATTACHMENT" envDefault:"attachments"`
}

type CronConfig struct {
	TrashPurgeSchedule string `env:"CRON_SCHEDULE_TRASH_PURGE" envDefault:"0 2 * * *"`
	TrashRetentionDays int    `env:"TRASH_RETENTION_DAYS" envDefault:"30"`
}
