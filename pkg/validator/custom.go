package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var bloodGroups = map[string]struct{}{
	"A+": {}, "A-": {}, "B+": {}, "B-": {},
	"AB+": {}, "AB-": {}, "O+": {}, "O-": {},
}

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", validateLat)
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("radius_km", validateRadiusKM)
	validate.RegisterValidation("bloodgroup", validateBloodGroup)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180.0 && lng <= 180.0
}

func validateRadiusKM(fl validator.FieldLevel) bool {
	radius := fl.Field().Float()
	return radius >= 0.1 && radius <= 100.0
}

func validateBloodGroup(fl validator.FieldLevel) bool {
	_, ok := bloodGroups[strings.ToUpper(strings.TrimSpace(fl.Field().String()))]
	return ok
}
