package cron_config

type Config struct {
	// Heartbeat check, every minute
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 * * * * *"`
	// Fleet-wide mailbox sync, every five minutes
	CronScheduleFleetSync string `env:"CRON_SCHEDULE_FLEET_SYNC" envDefault:"0 */5 * * * *"`
}
