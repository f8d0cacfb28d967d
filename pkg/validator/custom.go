package validator

import (
	"math"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	MinRadiusKM = 0.01
	MaxRadiusKM = 2000.0
)

var resourceKindRe = regexp.MustCompile(`^[a-z][a-z0-9_]{0,31}$`)

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", validateLat)
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("lnglat", validateLngLat)
	validate.RegisterValidation("radius_km", validateRadiusKM)
	validate.RegisterValidation("resource_kind", validateResourceKind)
}

func validLat(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90.0 && lat <= 90.0
}

func validLng(lng float64) bool {
	return !math.IsNaN(lng) && lng >= -180.0 && lng <= 180.0
}

func validateLat(fl validator.FieldLevel) bool {
	return validLat(fl.Field().Float())
}

func validateLng(fl validator.FieldLevel) bool {
	return validLng(fl.Field().Float())
}

// validateLngLat checks a GeoJSON position stored as [2]float64 (orb.Point): longitude first.
func validateLngLat(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Array || f.Len() != 2 {
		return false
	}
	return validLng(f.Index(0).Float()) && validLat(f.Index(1).Float())
}

func validateRadiusKM(fl validator.FieldLevel) bool {
	radius := fl.Field().Float()
	return radius >= MinRadiusKM && radius <= MaxRadiusKM
}

func validateResourceKind(fl validator.FieldLevel) bool {
	return resourceKindRe.MatchString(fl.Field().String())
}
