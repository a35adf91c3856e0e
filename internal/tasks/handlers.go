package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"brokerkit/internal/config"
	"brokerkit/internal/metrics"
	"brokerkit/internal/models"
	"brokerkit/internal/services"
	"brokerkit/internal/tasks/rate"
	"brokerkit/internal/utils/logger"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// TaskHandler processes background tasks.
type TaskHandler struct {
	db          *gorm.DB
	logger      *logger.Logger
	leaderboard *services.LeaderboardService
	customize   *services.CustomizeService
	mailer      *services.Mailer
	mailLimiter *rate.QueueRateLimiter
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(db *gorm.DB, cfg *config.Config, customize *services.CustomizeService) *TaskHandler {
	taskClient := NewTaskClient(cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.DB)

	return &TaskHandler{
		db:          db,
		logger:      logger.New("task_handler"),
		leaderboard: services.NewLeaderboardService(db),
		customize:   customize,
		mailer:      services.NewMailer(cfg.SMTP),
		mailLimiter: rate.NewQueueRateLimiter(taskClient.Redis(), rate.QueueConfig{
			Name: QueueCritical,
			RateLimit: rate.RateLimit{
				Window:  time.Minute,
				MaxJobs: 30,
			},
		}),
	}
}

// HandleLeaderboardRefresh recomputes leaderboard scores and ranks.
func (h *TaskHandler) HandleLeaderboardRefresh(ctx context.Context, t *asynq.Task) error {
	err := h.leaderboard.Refresh(ctx)
	h.observe(TaskTypeLeaderboardRefresh, err)
	if err != nil {
		return h.logger.Error("leaderboard refresh failed", err)
	}
	h.logger.Success("leaderboard refresh complete")
	return nil
}

// HandleEmailSend delivers a rendered email campaign to a member.
func (h *TaskHandler) HandleEmailSend(ctx context.Context, t *asynq.Task) error {
	var payload EmailSendPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid email payload: %w", err)
	}

	allowed, err := h.mailLimiter.Allow(ctx, payload.Recipient)
	if err != nil {
		return err
	}
	if !allowed {
		// retried by asynq after backoff
		return fmt.Errorf("rate limit reached for %s", payload.Recipient)
	}

	var member models.Member
	if err := h.db.WithContext(ctx).First(&member, "id = ?", payload.MemberID).Error; err != nil {
		return fmt.Errorf("member %s not found: %w", payload.MemberID, err)
	}

	var campaign models.EmailCampaign
	if err := h.db.WithContext(ctx).First(&campaign, "id = ? AND is_deleted = false", payload.CampaignID).Error; err != nil {
		return fmt.Errorf("campaign %s not found: %w", payload.CampaignID, err)
	}

	result, err := services.RenderEmailCampaign(&campaign, services.MergeData(&member))
	if err != nil {
		return err
	}

	if err := h.mailer.Send(payload.Recipient, result); err != nil {
		if m := metrics.Global(); m != nil {
			m.MailFailedTotal.Inc()
		}
		return err
	}

	if m := metrics.Global(); m != nil {
		m.MailSentTotal.Inc()
	}
	h.observe(TaskTypeEmailSend, nil)
	return nil
}

// HandleCustomizationCleanup purges old soft-deleted customizations.
func (h *TaskHandler) HandleCustomizationCleanup(ctx context.Context, t *asynq.Task) error {
	purged, err := h.customize.PurgeDeleted(ctx, CustomizationRetentionDays)
	h.observe(TaskTypeCustomizationCleanup, err)
	if err != nil {
		return h.logger.Error("customization cleanup failed", err)
	}
	h.logger.Info("customization cleanup purged %d rows", purged)
	return nil
}

func (h *TaskHandler) observe(taskType string, err error) {
	m := metrics.Global()
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.TasksProcessedTotal.WithLabelValues(taskType, outcome).Inc()
}
