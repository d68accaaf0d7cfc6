package clinic

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jwalitptl/clinica/internal/model"
	"github.com/jwalitptl/clinica/internal/service/audit"
	"github.com/jwalitptl/clinica/pkg/errors"
	"github.com/jwalitptl/clinica/pkg/logger"
)

// Service owns every registry in the system: patients keyed by DNI, doctors
// keyed by license, one clinical history per patient and the system-wide
// appointment list in booking order. All mutation goes through it.
//
// A single mutex covers the four registries so that check-then-append
// sequences (duplicate DNI, duplicate slot) are atomic as a unit.
type Service struct {
	mu           sync.Mutex
	patients     map[string]*model.Patient
	doctors      map[string]*model.Doctor
	histories    map[string]*model.ClinicalHistory
	appointments []*model.Appointment

	auditor *audit.Service
	log     *logger.Logger
}

func NewService(auditor *audit.Service, log *logger.Logger) *Service {
	return &Service{
		patients:  make(map[string]*model.Patient),
		doctors:   make(map[string]*model.Doctor),
		histories: make(map[string]*model.ClinicalHistory),
		auditor:   auditor,
		log:       log.WithComponent("clinic"),
	}
}

// RegisterPatient adds a patient and creates their empty clinical history.
// Both land together or not at all.
func (s *Service) RegisterPatient(ctx context.Context, patient *model.Patient) error {
	if patient == nil {
		return errors.InvalidData("patient must not be nil")
	}

	history, err := model.NewClinicalHistory(patient)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dni := patient.NationalID()
	if _, ok := s.patients[dni]; ok {
		return errors.DuplicatePatient(dni)
	}
	s.patients[dni] = patient
	s.histories[dni] = history

	s.auditor.Log(ctx, "register", "patient", dni, patient.FullName())
	s.log.Info("patient registered", "national_id", dni)
	return nil
}

// RegisterDoctor adds a doctor to the registry.
func (s *Service) RegisterDoctor(ctx context.Context, doctor *model.Doctor) error {
	if doctor == nil {
		return errors.InvalidData("doctor must not be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	license := doctor.LicenseID()
	if _, ok := s.doctors[license]; ok {
		return errors.DuplicateDoctor(license)
	}
	s.doctors[license] = doctor

	s.auditor.Log(ctx, "register", "doctor", license, doctor.FullName())
	s.log.Info("doctor registered", "license_id", license)
	return nil
}

// DoctorByLicense looks up a registered doctor.
func (s *Service) DoctorByLicense(ctx context.Context, licenseID string) (*model.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doctor, ok := s.doctors[licenseID]
	if !ok {
		return nil, errors.DoctorNotFound(licenseID)
	}
	return doctor, nil
}

// AddSpecialty attaches a new specialty to a registered doctor.
func (s *Service) AddSpecialty(ctx context.Context, licenseID string, sp *model.Specialty) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doctor, ok := s.doctors[licenseID]
	if !ok {
		return errors.DoctorNotFound(licenseID)
	}
	if err := doctor.AddSpecialty(sp); err != nil {
		return err
	}

	s.auditor.Log(ctx, "add_specialty", "doctor", licenseID, sp.Name())
	s.log.Info("specialty added", "license_id", licenseID, "specialty", sp.Name())
	return nil
}

// ScheduleAppointment runs the booking pipeline: patient exists, doctor
// exists, slot free, doctor offers the requested specialty that weekday,
// timestamp not in the past. Each failure short-circuits the rest; nothing
// is appended unless every step passes.
func (s *Service) ScheduleAppointment(ctx context.Context, nationalID, licenseID, specialty string, timestamp time.Time) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patient, ok := s.patients[nationalID]
	if !ok {
		return nil, errors.PatientNotFound(nationalID)
	}
	doctor, ok := s.doctors[licenseID]
	if !ok {
		return nil, errors.DoctorNotFound(licenseID)
	}

	// Slot check is exact-timestamp equality, not interval overlap.
	for _, apt := range s.appointments {
		if apt.Doctor().LicenseID() == licenseID && apt.Timestamp().Equal(timestamp) {
			return nil, errors.SlotTaken(licenseID, timestamp)
		}
	}

	day := model.WeekdayOf(timestamp)
	offered, seesPatients := doctor.SpecialtyOn(day)
	if !seesPatients {
		return nil, errors.DoctorUnavailable("doctor does not see patients on " + day)
	}
	if !strings.EqualFold(offered, strings.TrimSpace(specialty)) {
		return nil, errors.DoctorUnavailable("doctor does not offer " + strings.TrimSpace(specialty) + " on " + day + "; offers " + offered)
	}

	apt, err := model.NewAppointment(patient, doctor, timestamp, specialty)
	if err != nil {
		return nil, err
	}

	s.appointments = append(s.appointments, apt)
	if err := s.histories[nationalID].AddAppointment(apt); err != nil {
		// Cannot happen for a freshly built appointment; undo the global
		// append so a failure never leaves partial state.
		s.appointments = s.appointments[:len(s.appointments)-1]
		return nil, err
	}

	s.auditor.Log(ctx, "schedule", "appointment", licenseID, apt.String())
	s.log.Info("appointment booked",
		"national_id", nationalID,
		"license_id", licenseID,
		"specialty", apt.Specialty(),
		"at", timestamp.Format(model.TimestampLayout))
	return apt, nil
}

// IssuePrescription validates and records a prescription in the patient's
// clinical history.
func (s *Service) IssuePrescription(ctx context.Context, nationalID, licenseID string, medications []string) (*model.Prescription, error) {
	if len(medications) == 0 {
		return nil, errors.PrescriptionInvalid("prescription must include at least one medication")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	patient, ok := s.patients[nationalID]
	if !ok {
		return nil, errors.PatientNotFound(nationalID)
	}
	doctor, ok := s.doctors[licenseID]
	if !ok {
		return nil, errors.DoctorNotFound(licenseID)
	}

	prescription, err := model.NewPrescription(patient, doctor, medications)
	if err != nil {
		return nil, err
	}
	if err := s.histories[nationalID].AddPrescription(prescription); err != nil {
		return nil, err
	}

	s.auditor.Log(ctx, "issue", "prescription", nationalID, prescription.String())
	s.log.Info("prescription issued", "national_id", nationalID, "license_id", licenseID)
	return prescription, nil
}

// ClinicalHistory returns the stored history for a patient. Its collection
// accessors already hand out defensive copies.
func (s *Service) ClinicalHistory(ctx context.Context, nationalID string) (*model.ClinicalHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.histories[nationalID]
	if !ok {
		return nil, errors.PatientNotFound(nationalID)
	}
	return history, nil
}

// Appointments returns a copy of every booked appointment in booking order.
func (s *Service) Appointments(ctx context.Context) []*model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

// Patients returns a copy of the patient registry.
func (s *Service) Patients(ctx context.Context) []*model.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out = append(out, p)
	}
	return out
}

// Doctors returns a copy of the doctor registry.
func (s *Service) Doctors(ctx context.Context) []*model.Doctor {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		out = append(out, d)
	}
	return out
}
