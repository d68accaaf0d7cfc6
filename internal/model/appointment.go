package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/clinica/pkg/errors"
)

// TimestampLayout is the textual format for appointment timestamps.
const TimestampLayout = "02/01/2006 15:04"

// Appointment is a booked slot binding one patient, one doctor, a timestamp
// and a specialty name. Immutable once constructed.
type Appointment struct {
	patient   *Patient
	doctor    *Doctor
	timestamp time.Time
	specialty string
}

// NewAppointment validates and builds an appointment. The timestamp must not
// be strictly before the clock at construction time; this holds even when the
// appointment is built outside the clinic service.
func NewAppointment(patient *Patient, doctor *Doctor, timestamp time.Time, specialty string) (*Appointment, error) {
	if patient == nil {
		return nil, errors.InvalidData("appointment patient must not be nil")
	}
	if doctor == nil {
		return nil, errors.InvalidData("appointment doctor must not be nil")
	}
	if timestamp.IsZero() {
		return nil, errors.InvalidData("appointment timestamp must not be empty")
	}
	specialty = strings.TrimSpace(specialty)
	if specialty == "" {
		return nil, errors.InvalidData("appointment specialty must not be empty")
	}
	if timestamp.Before(nowFunc()) {
		return nil, errors.InvalidData("appointments cannot be booked in the past")
	}

	return &Appointment{
		patient:   patient,
		doctor:    doctor,
		timestamp: timestamp,
		specialty: specialty,
	}, nil
}

// Patient returns the booked patient.
func (a *Appointment) Patient() *Patient {
	return a.patient
}

// Doctor returns the booked doctor.
func (a *Appointment) Doctor() *Doctor {
	return a.doctor
}

// Timestamp returns the booked date and time.
func (a *Appointment) Timestamp() time.Time {
	return a.timestamp
}

// Specialty returns the requested specialty name.
func (a *Appointment) Specialty() string {
	return a.specialty
}

func (a *Appointment) String() string {
	return fmt.Sprintf("Appointment: patient %s with Dr. %s (%s) - %s",
		a.patient.NationalID(), a.doctor.LicenseID(), a.specialty,
		a.timestamp.Format(TimestampLayout))
}
