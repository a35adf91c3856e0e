package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func validRequest() AssignmentRequest {
	return AssignmentRequest{
		WeekID:     "c7b6a1f2-0000-4000-8000-000000000001",
		CampaignID: "c7b6a1f2-0000-4000-8000-000000000002",
		Category:   "email-campaigns",
		DayOfWeek:  intPtr(0),
	}
}

func TestAssignmentRequestValidation(t *testing.T) {
	v := NewValidator()
	require.NotNil(t, v)

	tests := []struct {
		name    string
		mutate  func(*AssignmentRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *AssignmentRequest) {}},
		{name: "friday allowed", mutate: func(r *AssignmentRequest) { r.DayOfWeek = intPtr(4) }},
		{name: "missing day of week", mutate: func(r *AssignmentRequest) { r.DayOfWeek = nil }, wantErr: true},
		{name: "saturday rejected", mutate: func(r *AssignmentRequest) { r.DayOfWeek = intPtr(5) }, wantErr: true},
		{name: "negative day rejected", mutate: func(r *AssignmentRequest) { r.DayOfWeek = intPtr(-1) }, wantErr: true},
		{name: "unknown category", mutate: func(r *AssignmentRequest) { r.Category = "podcasts" }, wantErr: true},
		{name: "bad week id", mutate: func(r *AssignmentRequest) { r.WeekID = "not-a-uuid" }, wantErr: true},
		{name: "missing campaign id", mutate: func(r *AssignmentRequest) { r.CampaignID = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := v.Validate(&req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomTagValidation(t *testing.T) {
	v := NewValidator()
	require.NotNil(t, v)

	t.Run("region", func(t *testing.T) {
		type body struct {
			Region string `json:"region" validate:"required,region"`
		}
		assert.NoError(t, v.Validate(&body{Region: "US"}))
		assert.NoError(t, v.Validate(&body{Region: "CA"}))
		assert.NoError(t, v.Validate(&body{Region: "US,CA"}))
		assert.Error(t, v.Validate(&body{Region: "UK"}))
	})

	t.Run("platform", func(t *testing.T) {
		type body struct {
			Platform string `json:"platform" validate:"required,platform"`
		}
		assert.NoError(t, v.Validate(&body{Platform: "youtube"}))
		assert.NoError(t, v.Validate(&body{Platform: "instagram"}))
		assert.Error(t, v.Validate(&body{Platform: "tiktok"}))
	})

	t.Run("member role", func(t *testing.T) {
		type body struct {
			Role string `json:"role" validate:"required,member_role"`
		}
		assert.NoError(t, v.Validate(&body{Role: "ADMIN"}))
		assert.NoError(t, v.Validate(&body{Role: "MEMBER"}))
		assert.Error(t, v.Validate(&body{Role: "admin"}))
	})
}

func TestValidationErrorsMessage(t *testing.T) {
	v := NewValidator()
	require.NotNil(t, v)

	req := validRequest()
	req.Category = "bad"
	req.WeekID = ""

	err := v.Validate(&req)
	require.Error(t, err)

	var ve ValidationErrors
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "category")
	assert.Contains(t, err.Error(), "weekId")
}
