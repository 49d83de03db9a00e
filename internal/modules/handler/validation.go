package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations hooks custom rules into gin's binding validator.
// Call once at router setup.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterStructValidation(updateSettingsStructLevel, UpdateSettingsReq{})
}

// updateSettingsStructLevel requires at least one settings block so a bare
// `{}` body cannot silently no-op.
func updateSettingsStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(UpdateSettingsReq)
	if req.PatientSettings == nil && req.ClinicianSettings == nil {
		sl.ReportError(req.PatientSettings, "patient_settings", "PatientSettings", "required_without", "")
	}
}
