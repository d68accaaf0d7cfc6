package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/clinica/pkg/errors"
)

// Prescription records medications issued by a doctor to a patient. The
// issuance timestamp is captured at construction and cannot be backdated.
type Prescription struct {
	patient     *Patient
	doctor      *Doctor
	medications []string
	issuedAt    time.Time
}

// NewPrescription validates and builds a prescription. Blank medication
// entries are dropped; at least one non-blank entry must remain.
func NewPrescription(patient *Patient, doctor *Doctor, medications []string) (*Prescription, error) {
	if patient == nil {
		return nil, errors.PrescriptionInvalid("prescription patient must not be nil")
	}
	if doctor == nil {
		return nil, errors.PrescriptionInvalid("prescription doctor must not be nil")
	}
	if len(medications) == 0 {
		return nil, errors.PrescriptionInvalid("prescription must include at least one medication")
	}

	cleaned := make([]string, 0, len(medications))
	for _, med := range medications {
		if med = strings.TrimSpace(med); med != "" {
			cleaned = append(cleaned, med)
		}
	}
	if len(cleaned) == 0 {
		return nil, errors.PrescriptionInvalid("prescription must include at least one non-blank medication")
	}

	return &Prescription{
		patient:     patient,
		doctor:      doctor,
		medications: cleaned,
		issuedAt:    nowFunc(),
	}, nil
}

// Patient returns the patient the prescription was issued to.
func (p *Prescription) Patient() *Patient {
	return p.patient
}

// Doctor returns the issuing doctor.
func (p *Prescription) Doctor() *Doctor {
	return p.doctor
}

// Medications returns a copy of the medication list.
func (p *Prescription) Medications() []string {
	out := make([]string, len(p.medications))
	copy(out, p.medications)
	return out
}

// IssuedAt returns the issuance timestamp.
func (p *Prescription) IssuedAt() time.Time {
	return p.issuedAt
}

func (p *Prescription) String() string {
	return fmt.Sprintf("Prescription for %s by Dr. %s (%s) - medications: %s",
		p.patient.NationalID(), p.doctor.LicenseID(),
		p.issuedAt.Format(TimestampLayout), strings.Join(p.medications, ", "))
}
