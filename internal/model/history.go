package model

import (
	"fmt"
	"strings"

	"github.com/jwalitptl/clinica/pkg/errors"
)

// ClinicalHistory aggregates every appointment and prescription involving one
// patient, in insertion order. Duplicate prevention is not its job; the
// clinic service guards slots before anything reaches the history.
type ClinicalHistory struct {
	patient       *Patient
	appointments  []*Appointment
	prescriptions []*Prescription
}

// NewClinicalHistory builds an empty history owned by a patient.
func NewClinicalHistory(patient *Patient) (*ClinicalHistory, error) {
	if patient == nil {
		return nil, errors.InvalidData("clinical history patient must not be nil")
	}
	return &ClinicalHistory{patient: patient}, nil
}

// Patient returns the owner of the history.
func (h *ClinicalHistory) Patient() *Patient {
	return h.patient
}

// AddAppointment appends an appointment to the history.
func (h *ClinicalHistory) AddAppointment(apt *Appointment) error {
	if apt == nil {
		return errors.InvalidData("appointment must not be nil")
	}
	h.appointments = append(h.appointments, apt)
	return nil
}

// AddPrescription appends a prescription to the history.
func (h *ClinicalHistory) AddPrescription(p *Prescription) error {
	if p == nil {
		return errors.InvalidData("prescription must not be nil")
	}
	h.prescriptions = append(h.prescriptions, p)
	return nil
}

// Appointments returns a copy of the appointment list.
func (h *ClinicalHistory) Appointments() []*Appointment {
	out := make([]*Appointment, len(h.appointments))
	copy(out, h.appointments)
	return out
}

// Prescriptions returns a copy of the prescription list.
func (h *ClinicalHistory) Prescriptions() []*Prescription {
	out := make([]*Prescription, len(h.prescriptions))
	copy(out, h.prescriptions)
	return out
}

// String renders the full report: all appointments, then all prescriptions,
// each numbered from 1, with explicit markers for empty sections.
func (h *ClinicalHistory) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Clinical history of %s ===\n\n", h.patient)

	fmt.Fprintf(&b, "APPOINTMENTS (%d):\n", len(h.appointments))
	if len(h.appointments) == 0 {
		b.WriteString("No appointments registered.\n")
	}
	for i, apt := range h.appointments {
		fmt.Fprintf(&b, "%d. %s\n", i+1, apt)
	}

	fmt.Fprintf(&b, "\nPRESCRIPTIONS (%d):\n", len(h.prescriptions))
	if len(h.prescriptions) == 0 {
		b.WriteString("No prescriptions registered.\n")
	}
	for i, p := range h.prescriptions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}

	return b.String()
}
