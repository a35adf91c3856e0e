package services

import (
	"bytes"
	"fmt"
	htmlTemplate "html/template"
	textTemplate "text/template"

	"brokerkit/internal/models"
)

// RenderResult is a rendered email campaign.
type RenderResult struct {
	Subject string
	HTML    string
	Text    string
}

// MergeData builds the merge-field map for a member. Field names match
// what the authored templates reference ({{.AgentName}} etc).
func MergeData(member *models.Member) map[string]interface{} {
	name := member.FirstName
	if member.LastName != "" {
		name = member.FirstName + " " + member.LastName
	}
	return map[string]interface{}{
		"AgentName":  name,
		"FirstName":  member.FirstName,
		"LastName":   member.LastName,
		"Email":      member.Email,
		"Phone":      member.Phone,
		"Brokerage":  member.Brokerage,
		"MarketArea": member.MarketArea,
	}
}

// RenderEmailCampaign renders subject, HTML body (auto-escaped) and
// plain-text body of a campaign against the merge data.
func RenderEmailCampaign(campaign *models.EmailCampaign, data map[string]interface{}) (*RenderResult, error) {
	result := &RenderResult{}

	subject, err := renderText("subject", campaign.SubjectLine, data)
	if err != nil {
		return nil, fmt.Errorf("failed to render subject: %w", err)
	}
	result.Subject = subject

	if campaign.BodyHTML != "" {
		html, err := renderHTML("html", campaign.BodyHTML, data)
		if err != nil {
			return nil, fmt.Errorf("failed to render html: %w", err)
		}
		result.HTML = html
	}

	if campaign.BodyText != "" {
		text, err := renderText("text", campaign.BodyText, data)
		if err != nil {
			return nil, fmt.Errorf("failed to render text: %w", err)
		}
		result.Text = text
	}

	return result, nil
}

// ValidateEmailCampaign checks template syntax without rendering.
func ValidateEmailCampaign(campaign *models.EmailCampaign) error {
	if campaign.SubjectLine != "" {
		if _, err := textTemplate.New("subject").Parse(campaign.SubjectLine); err != nil {
			return fmt.Errorf("invalid subject template: %w", err)
		}
	}
	if campaign.BodyHTML != "" {
		if _, err := htmlTemplate.New("html").Parse(campaign.BodyHTML); err != nil {
			return fmt.Errorf("invalid html template: %w", err)
		}
	}
	if campaign.BodyText != "" {
		if _, err := textTemplate.New("text").Parse(campaign.BodyText); err != nil {
			return fmt.Errorf("invalid text template: %w", err)
		}
	}
	return nil
}

func renderText(name, tmplStr string, data map[string]interface{}) (string, error) {
	t, err := textTemplate.New(name).Parse(tmplStr)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderHTML(name, tmplStr string, data map[string]interface{}) (string, error) {
	t, err := htmlTemplate.New(name).Parse(tmplStr)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
