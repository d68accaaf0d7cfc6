package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/clinica/pkg/errors"
)

// BirthDateLayout is the accepted textual format for patient birth dates.
const BirthDateLayout = "02/01/2006"

// Patient is a registered patient, immutable once constructed. The birth
// date keeps the raw dd/mm/yyyy text it was registered with; nothing in the
// core does arithmetic on it.
type Patient struct {
	fullName   string
	nationalID string
	birthDate  string
}

type patientParams struct {
	FullName   string `validate:"required,notblank"`
	NationalID string `validate:"required,notblank"`
	BirthDate  string `validate:"required,notblank"`
}

// NewPatient validates and builds a patient record.
func NewPatient(fullName, nationalID, birthDate string) (*Patient, error) {
	params := patientParams{
		FullName:   strings.TrimSpace(fullName),
		NationalID: strings.TrimSpace(nationalID),
		BirthDate:  strings.TrimSpace(birthDate),
	}
	if msg := checkStruct(params); msg != "" {
		return nil, errors.InvalidDataf("patient %s", msg)
	}
	if _, err := time.Parse(BirthDateLayout, params.BirthDate); err != nil {
		return nil, errors.InvalidData("patient BirthDate must use the dd/mm/yyyy format")
	}

	return &Patient{
		fullName:   params.FullName,
		nationalID: params.NationalID,
		birthDate:  params.BirthDate,
	}, nil
}

// FullName returns the patient's full name.
func (p *Patient) FullName() string {
	return p.fullName
}

// NationalID returns the patient's DNI, the registry key.
func (p *Patient) NationalID() string {
	return p.nationalID
}

// BirthDate returns the birth date text as registered.
func (p *Patient) BirthDate() string {
	return p.birthDate
}

func (p *Patient) String() string {
	return fmt.Sprintf("Patient %s (DNI %s, born %s)", p.fullName, p.nationalID, p.birthDate)
}
