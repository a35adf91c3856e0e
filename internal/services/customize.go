package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"brokerkit/internal/config"
	"brokerkit/internal/models"
	"brokerkit/internal/utils/logger"

	"google.golang.org/genai"
	"gorm.io/gorm"
)

var ErrCustomizationUnavailable = errors.New("AI customization is not configured")

// CustomizeService produces member-personalized variants of content
// items via the Gemini API and stores the result. The authored item is
// never modified.
type CustomizeService struct {
	db     *gorm.DB
	client *genai.Client
	model  string
	log    *logger.Logger
}

func NewCustomizeService(ctx context.Context, db *gorm.DB, cfg config.AIConfig) (*CustomizeService, error) {
	s := &CustomizeService{
		db:    db,
		model: cfg.Model,
		log:   logger.New("customize"),
	}

	if cfg.APIKey == "" {
		s.log.Warn("GEMINI_API_KEY not set, template customization disabled")
		return s, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	s.client = client
	return s, nil
}

// Customize runs the LLM over the item body plus the member's
// instructions and persists a TemplateCustomization.
func (s *CustomizeService) Customize(ctx context.Context, member *models.Member, category models.ContentCategory, itemID, instructions string) (*models.TemplateCustomization, error) {
	if s.client == nil {
		return nil, ErrCustomizationUnavailable
	}
	if !models.IsValidCategory(category) {
		return nil, ErrUnknownCategory
	}

	body, name, err := s.loadItemBody(ctx, category, itemID)
	if err != nil {
		return nil, err
	}

	prompt := s.buildPrompt(member, name, body, instructions)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("GenAI request failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	usage, _ := json.Marshal(result.UsageMetadata)

	customization := &models.TemplateCustomization{
		MemberID:     member.ID,
		Category:     category,
		ItemID:       itemID,
		Instructions: instructions,
		Result:       text,
		Model:        s.model,
		Usage:        usage,
	}

	if err := s.db.WithContext(ctx).Create(customization).Error; err != nil {
		return nil, err
	}

	return customization, nil
}

// ListForMember returns a member's stored customizations, newest
// first.
func (s *CustomizeService) ListForMember(ctx context.Context, memberID string) ([]models.TemplateCustomization, error) {
	var customizations []models.TemplateCustomization
	err := s.db.WithContext(ctx).
		Where("member_id = ? AND is_deleted = ?", memberID, false).
		Order("created_at DESC").
		Find(&customizations).Error
	return customizations, err
}

func (s *CustomizeService) loadItemBody(ctx context.Context, category models.ContentCategory, itemID string) (body, name string, err error) {
	switch category {
	case models.CategoryEmailCampaigns:
		var item models.EmailCampaign
		if err := s.db.WithContext(ctx).First(&item, "id = ? AND is_deleted = false", itemID).Error; err != nil {
			return "", "", ErrContentNotFound
		}
		return item.SubjectLine + "\n\n" + item.BodyText, item.Name, nil
	case models.CategoryPhoneTextScript:
		var item models.PhoneScript
		if err := s.db.WithContext(ctx).First(&item, "id = ? AND is_deleted = false", itemID).Error; err != nil {
			return "", "", ErrContentNotFound
		}
		return item.Body, item.Name, nil
	case models.CategorySocialShareable:
		var item models.SocialShareable
		if err := s.db.WithContext(ctx).First(&item, "id = ? AND is_deleted = false", itemID).Error; err != nil {
			return "", "", ErrContentNotFound
		}
		return item.Caption, item.Name, nil
	case models.CategoryDirectMail:
		var item models.DirectMailTemplate
		if err := s.db.WithContext(ctx).First(&item, "id = ? AND is_deleted = false", itemID).Error; err != nil {
			return "", "", ErrContentNotFound
		}
		return item.Introduction, item.Name, nil
	}
	return "", "", ErrUnknownCategory
}

func (s *CustomizeService) buildPrompt(member *models.Member, name, body, instructions string) string {
	var b strings.Builder
	b.WriteString("You are a marketing copywriter for real-estate agents. ")
	b.WriteString("Rewrite the template below in the agent's voice. Keep the structure and intent, but personalize it.\n\n")
	fmt.Fprintf(&b, "Agent: %s %s", member.FirstName, member.LastName)
	if member.Brokerage != "" {
		fmt.Fprintf(&b, ", %s", member.Brokerage)
	}
	if member.MarketArea != "" {
		fmt.Fprintf(&b, " (market: %s)", member.MarketArea)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Template %q:\n%s\n", name, body)
	if instructions != "" {
		fmt.Fprintf(&b, "\nAdditional instructions from the agent:\n%s\n", instructions)
	}
	return b.String()
}

// PurgeDeleted removes soft-deleted customizations older than the
// retention window. Called from the nightly cleanup task.
func (s *CustomizeService) PurgeDeleted(ctx context.Context, retentionDays int) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("is_deleted = ? AND deleted_at < NOW() - make_interval(days => ?)", true, retentionDays).
		Delete(&models.TemplateCustomization{})
	return result.RowsAffected, result.Error
}
