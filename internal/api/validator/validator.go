package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"brokerkit/internal/models"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	if err := v.RegisterValidation("content_category", validateContentCategory); err != nil {
		return nil
	}
	if err := v.RegisterValidation("region", validateRegion); err != nil {
		return nil
	}
	if err := v.RegisterValidation("member_role", validateMemberRole); err != nil {
		return nil
	}
	if err := v.RegisterValidation("platform", validatePlatform); err != nil {
		return nil
	}

	return &CustomValidator{validator: v}
}

// Custom validation functions
func validateContentCategory(fl playgroundvalidator.FieldLevel) bool {
	return models.IsValidCategory(models.ContentCategory(fl.Field().String()))
}

func validateRegion(fl playgroundvalidator.FieldLevel) bool {
	return models.IsValidRegion(fl.Field().String())
}

func validateMemberRole(fl playgroundvalidator.FieldLevel) bool {
	return models.IsValidMemberRole(models.MemberRole(fl.Field().String()))
}

func validatePlatform(fl playgroundvalidator.FieldLevel) bool {
	return models.IsValidPlatform(models.LeaderboardPlatform(fl.Field().String()))
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}

// AssignmentRequest is the admin create-assignment body.
type AssignmentRequest struct {
	WeekID       string `json:"weekId" validate:"required,uuid"`
	CampaignID   string `json:"campaignId" validate:"required,uuid"`
	Category     string `json:"category" validate:"required,content_category"`
	DayOfWeek    *int   `json:"dayOfWeek" validate:"required,min=0,max=4"`
	DisplayOrder int    `json:"displayOrder" validate:"min=0"`
}

// CustomizationRequest asks the AI service for a personalized variant.
type CustomizationRequest struct {
	Category     string `json:"category" validate:"required,content_category"`
	ItemID       string `json:"itemId" validate:"required,uuid"`
	Instructions string `json:"instructions" validate:"max=2000"`
}

// RegisterRequest creates a member account.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Region    string `json:"region" validate:"omitempty,region"`
	Brokerage string `json:"brokerage"`
}

// LoginRequest authenticates a member.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// ShareRequest emails a rendered campaign. Recipient defaults to the
// member's own address.
type ShareRequest struct {
	Recipient string `json:"recipient" validate:"omitempty,email"`
}
