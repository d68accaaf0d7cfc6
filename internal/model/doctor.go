package model

import (
	"fmt"
	"strings"

	"github.com/jwalitptl/clinica/pkg/errors"
)

// Doctor is a registered doctor. Specialties grow over the doctor's lifetime
// through AddSpecialty; nothing removes them.
type Doctor struct {
	fullName    string
	licenseID   string
	specialties []*Specialty
}

type doctorParams struct {
	FullName  string `validate:"required,notblank"`
	LicenseID string `validate:"required,notblank"`
}

// NewDoctor validates and builds a doctor record with no specialties.
func NewDoctor(fullName, licenseID string) (*Doctor, error) {
	params := doctorParams{
		FullName:  strings.TrimSpace(fullName),
		LicenseID: strings.TrimSpace(licenseID),
	}
	if msg := checkStruct(params); msg != "" {
		return nil, errors.InvalidDataf("doctor %s", msg)
	}

	return &Doctor{
		fullName:  params.FullName,
		licenseID: params.LicenseID,
	}, nil
}

// FullName returns the doctor's full name.
func (d *Doctor) FullName() string {
	return d.fullName
}

// LicenseID returns the doctor's license number, the registry key.
func (d *Doctor) LicenseID() string {
	return d.licenseID
}

// AddSpecialty appends a specialty. A specialty whose name matches an
// existing one (ignoring case) is rejected.
func (d *Doctor) AddSpecialty(sp *Specialty) error {
	if sp == nil {
		return errors.InvalidData("specialty must not be nil")
	}
	for _, existing := range d.specialties {
		if strings.EqualFold(existing.Name(), sp.Name()) {
			return errors.DuplicateSpecialty(sp.Name())
		}
	}
	d.specialties = append(d.specialties, sp)
	return nil
}

// Specialties returns a copy of the specialty list in insertion order.
func (d *Doctor) Specialties() []*Specialty {
	out := make([]*Specialty, len(d.specialties))
	copy(out, d.specialties)
	return out
}

// SpecialtyOn scans the specialties in insertion order and returns the name
// of the first one offered on the given day. When two specialties cover the
// same day only the earliest-added one is ever reported; that first-match
// policy is observable behavior callers rely on, not an accident.
func (d *Doctor) SpecialtyOn(day string) (string, bool) {
	for _, sp := range d.specialties {
		if sp.OffersOn(day) {
			return sp.Name(), true
		}
	}
	return "", false
}

func (d *Doctor) String() string {
	if len(d.specialties) == 0 {
		return fmt.Sprintf("Dr. %s (license %s)", d.fullName, d.licenseID)
	}
	parts := make([]string, len(d.specialties))
	for i, sp := range d.specialties {
		parts[i] = sp.String()
	}
	return fmt.Sprintf("Dr. %s (license %s) - %s", d.fullName, d.licenseID, strings.Join(parts, "; "))
}
