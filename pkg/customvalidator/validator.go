package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"apparel-erp/pkg/constants"
)

// RegisterCustomValidations registers the project's custom rules on the
// given validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("role", isKnownRole); err != nil {
		return err
	}
	if err := v.RegisterValidation("production_stage", isProductionStage); err != nil {
		return err
	}
	if err := v.RegisterValidation("workspace_slug", isWorkspaceSlug); err != nil {
		return err
	}
	if err := v.RegisterValidation("po_number", isPoNumber); err != nil {
		return err
	}
	return nil
}

func isKnownRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, role := range constants.Roles {
		if value == role {
			return true
		}
	}
	return false
}

func isProductionStage(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, stage := range constants.ProductionStages {
		if value == stage {
			return true
		}
	}
	return false
}

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func isWorkspaceSlug(fl validator.FieldLevel) bool {
	return slugRegex.MatchString(fl.Field().String())
}

// PO numbers come from client purchase orders; letters, digits and
// dashes only.
var poRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9/-]{1,31}$`)

func isPoNumber(fl validator.FieldLevel) bool {
	return poRegex.MatchString(fl.Field().String())
}
