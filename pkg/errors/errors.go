package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Domain error codes
const (
	ErrInvalidData ErrorCode = iota + 1000
	ErrPatientNotFound
	ErrDoctorUnavailable
	ErrSlotTaken
	ErrPrescriptionInvalid
	ErrDuplicatePatient
	ErrDuplicateDoctor
	ErrDuplicateSpecialty
)

// CodeOf returns the error code carried by err, or 0 when err is not an
// AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return 0
}

// Error constructors
func InvalidData(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidData,
		Message: message,
	}
}

func InvalidDataf(format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrInvalidData,
		Message: fmt.Sprintf(format, args...),
	}
}

func PatientNotFound(nationalID string) *AppError {
	return &AppError{
		Code:    ErrPatientNotFound,
		Message: fmt.Sprintf("no patient registered with DNI %s", nationalID),
	}
}

func DoctorNotFound(licenseID string) *AppError {
	return &AppError{
		Code:    ErrDoctorUnavailable,
		Message: fmt.Sprintf("no doctor registered with license %s", licenseID),
	}
}

func DoctorUnavailable(message string) *AppError {
	return &AppError{
		Code:    ErrDoctorUnavailable,
		Message: message,
	}
}

func SlotTaken(licenseID string, at time.Time) *AppError {
	return &AppError{
		Code:    ErrSlotTaken,
		Message: fmt.Sprintf("doctor %s already has an appointment booked for %s", licenseID, at.Format("02/01/2006 15:04")),
	}
}

func PrescriptionInvalid(message string) *AppError {
	return &AppError{
		Code:    ErrPrescriptionInvalid,
		Message: message,
	}
}

func DuplicatePatient(nationalID string) *AppError {
	return &AppError{
		Code:    ErrDuplicatePatient,
		Message: fmt.Sprintf("a patient with DNI %s is already registered", nationalID),
	}
}

func DuplicateDoctor(licenseID string) *AppError {
	return &AppError{
		Code:    ErrDuplicateDoctor,
		Message: fmt.Sprintf("a doctor with license %s is already registered", licenseID),
	}
}

func DuplicateSpecialty(name string) *AppError {
	return &AppError{
		Code:    ErrDuplicateSpecialty,
		Message: fmt.Sprintf("doctor already has the specialty %s", name),
	}
}
