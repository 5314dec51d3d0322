package validator

import (
	"log"
	"strings"

	"collabex_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the domain tags. Empty values pass; use
// `required` to forbid them.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("notification_type", validateNotificationType)
	mustRegister("collab_status", validateCollabStatus)
	mustRegister("account_type", validateAccountType)
	mustRegister("rate_type", validateRateType)
	mustRegister("currency", validateCurrency)
	mustRegister("swipe_direction", validateSwipeDirection)
	mustRegister("post_status", validatePostStatus)
	mustRegister("application_status", validateApplicationStatus)
	mustRegister("http_url", validateHTTPURL)
}

func validateNotificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.NotificationType(value).Valid()
}

func validateCollabStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.CollaborationStatus(value).Valid()
}

func validateAccountType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.AccountType(value).Valid()
}

func validateRateType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.RateType(value).Valid()
}

func validateCurrency(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.Currency(value).Valid()
}

func validateSwipeDirection(fl validator.FieldLevel) bool {
	switch models.SwipeDirection(fl.Field().String()) {
	case "", models.SwipeLeft, models.SwipeRight:
		return true
	}
	return false
}

func validatePostStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.PostStatus(value).Valid()
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.ApplicationStatus(value).Valid()
}

func validateHTTPURL(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	return strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")
}
