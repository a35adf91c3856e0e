package tasks

import "time"

// Task Types
const (
	TaskTypeLeaderboardRefresh   = "leaderboard:refresh"
	TaskTypeEmailSend            = "email:send"
	TaskTypeCustomizationCleanup = "customizations:cleanup"
)

// Task Queues
const (
	QueueCritical = "critical" // time-sensitive work like email delivery
	QueueDefault  = "default"  // regular tasks
	QueueLow      = "low"      // background work like cleanup and refresh
)

// Task Timeouts
const (
	TimeoutShort  = 1 * time.Minute
	TimeoutMedium = 5 * time.Minute
	TimeoutLong   = 30 * time.Minute
)

// Task Retry Settings
const (
	RetryMax     = 5
	RetryDefault = 3
	RetryMin     = 1
)

// Cron specs for periodic tasks
const (
	CronLeaderboardRefresh   = "0 6 * * 1" // Monday 06:00
	CronCustomizationCleanup = "30 3 * * *"
)

// Retention for soft-deleted customizations, in days.
const CustomizationRetentionDays = 30

// EmailSendPayload is the payload of an email:send task.
type EmailSendPayload struct {
	MemberID   string `json:"member_id"`
	CampaignID string `json:"campaign_id"`
	Recipient  string `json:"recipient"`
}
