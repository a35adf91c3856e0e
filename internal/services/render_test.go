package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brokerkit/internal/models"
)

func testMember() *models.Member {
	return &models.Member{
		Email:      "jordan@example.com",
		FirstName:  "Jordan",
		LastName:   "Reyes",
		Brokerage:  "Summit Realty",
		Phone:      "555-0147",
		MarketArea: "Denver Metro",
	}
}

func TestMergeData(t *testing.T) {
	data := MergeData(testMember())

	assert.Equal(t, "Jordan Reyes", data["AgentName"])
	assert.Equal(t, "Summit Realty", data["Brokerage"])
	assert.Equal(t, "Denver Metro", data["MarketArea"])

	t.Run("no last name", func(t *testing.T) {
		m := testMember()
		m.LastName = ""
		assert.Equal(t, "Jordan", MergeData(m)["AgentName"])
	})
}

func TestRenderEmailCampaign(t *testing.T) {
	campaign := &models.EmailCampaign{
		SubjectLine: "Market update from {{.AgentName}}",
		BodyHTML:    "<p>Hi, this is {{.AgentName}} with {{.Brokerage}}.</p>",
		BodyText:    "Hi, this is {{.AgentName}} with {{.Brokerage}}.",
	}

	result, err := RenderEmailCampaign(campaign, MergeData(testMember()))
	require.NoError(t, err)

	assert.Equal(t, "Market update from Jordan Reyes", result.Subject)
	assert.Equal(t, "<p>Hi, this is Jordan Reyes with Summit Realty.</p>", result.HTML)
	assert.Equal(t, "Hi, this is Jordan Reyes with Summit Realty.", result.Text)
}

func TestRenderEmailCampaign_EscapesHTML(t *testing.T) {
	campaign := &models.EmailCampaign{
		SubjectLine: "hello",
		BodyHTML:    "<p>{{.Brokerage}}</p>",
	}
	data := MergeData(testMember())
	data["Brokerage"] = `<script>alert("x")</script>`

	result, err := RenderEmailCampaign(campaign, data)
	require.NoError(t, err)
	assert.NotContains(t, result.HTML, "<script>")
}

func TestRenderEmailCampaign_BadTemplate(t *testing.T) {
	campaign := &models.EmailCampaign{
		SubjectLine: "{{.AgentName",
	}

	_, err := RenderEmailCampaign(campaign, MergeData(testMember()))
	assert.Error(t, err)
}

func TestValidateEmailCampaign(t *testing.T) {
	tests := []struct {
		name     string
		campaign models.EmailCampaign
		wantErr  bool
	}{
		{
			name: "all parts valid",
			campaign: models.EmailCampaign{
				SubjectLine: "{{.AgentName}}",
				BodyHTML:    "<p>{{.MarketArea}}</p>",
				BodyText:    "{{.MarketArea}}",
			},
		},
		{
			name:     "empty campaign is fine",
			campaign: models.EmailCampaign{},
		},
		{
			name: "broken subject",
			campaign: models.EmailCampaign{
				SubjectLine: "{{.Unclosed",
			},
			wantErr: true,
		},
		{
			name: "broken body",
			campaign: models.EmailCampaign{
				SubjectLine: "ok",
				BodyText:    "{{range}}",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmailCampaign(&tt.campaign)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
