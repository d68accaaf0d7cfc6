package clinic_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinica/internal/model"
	"github.com/jwalitptl/clinica/internal/service/audit"
	"github.com/jwalitptl/clinica/internal/service/clinic"
	"github.com/jwalitptl/clinica/pkg/errors"
	"github.com/jwalitptl/clinica/pkg/logger"
)

func newService() (*clinic.Service, *audit.Service) {
	auditor := audit.NewService(0)
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return clinic.NewService(auditor, log), auditor
}

func registerPatient(t *testing.T, svc *clinic.Service, name, dni string) *model.Patient {
	t.Helper()
	p, err := model.NewPatient(name, dni, "15/03/1990")
	require.NoError(t, err)
	require.NoError(t, svc.RegisterPatient(context.Background(), p))
	return p
}

func registerDoctor(t *testing.T, svc *clinic.Service, name, license, specialty string, days ...string) *model.Doctor {
	t.Helper()
	d, err := model.NewDoctor(name, license)
	require.NoError(t, err)
	if specialty != "" {
		sp, err := model.NewSpecialty(specialty, days)
		require.NoError(t, err)
		require.NoError(t, d.AddSpecialty(sp))
	}
	require.NoError(t, svc.RegisterDoctor(context.Background(), d))
	return d
}

// futureOn returns the next occurrence of the given weekday at 10:00, at
// least two days out so the no-past rule never interferes.
func futureOn(t *testing.T, day string) time.Time {
	t.Helper()
	base := time.Now().AddDate(0, 0, 2)
	for i := 0; i < 7; i++ {
		candidate := time.Date(base.Year(), base.Month(), base.Day(), 10, 0, 0, 0, time.Local).AddDate(0, 0, i)
		if model.WeekdayOf(candidate) == day {
			return candidate
		}
	}
	t.Fatalf("no upcoming %s found", day)
	return time.Time{}
}

func TestRegisterPatient(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	registerPatient(t, svc, "Juan Pérez", "12345678")

	// A fresh registration always gets an empty history, atomically.
	history, err := svc.ClinicalHistory(ctx, "12345678")
	require.NoError(t, err)
	assert.Empty(t, history.Appointments())
	assert.Empty(t, history.Prescriptions())

	dup, err := model.NewPatient("Otro Nombre", "12345678", "01/01/2000")
	require.NoError(t, err)
	err = svc.RegisterPatient(ctx, dup)
	assert.Equal(t, errors.ErrDuplicatePatient, errors.CodeOf(err))
	assert.Len(t, svc.Patients(ctx), 1)

	err = svc.RegisterPatient(ctx, nil)
	assert.Equal(t, errors.ErrInvalidData, errors.CodeOf(err))
}

func TestRegisterDoctor(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	registerDoctor(t, svc, "Carlos Rodríguez", "MP001", "Pediatría", "lunes")

	dup, err := model.NewDoctor("Otra Persona", "MP001")
	require.NoError(t, err)
	err = svc.RegisterDoctor(ctx, dup)
	assert.Equal(t, errors.ErrDuplicateDoctor, errors.CodeOf(err))
	assert.Len(t, svc.Doctors(ctx), 1)

	err = svc.RegisterDoctor(ctx, nil)
	assert.Equal(t, errors.ErrInvalidData, errors.CodeOf(err))
}

func TestDoctorByLicense(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	registerDoctor(t, svc, "Ana López", "MP002", "Traumatología", "lunes")

	d, err := svc.DoctorByLicense(ctx, "MP002")
	require.NoError(t, err)
	assert.Equal(t, "Ana López", d.FullName())

	_, err = svc.DoctorByLicense(ctx, "MP999")
	assert.Equal(t, errors.ErrDoctorUnavailable, errors.CodeOf(err))
}

func TestAddSpecialty(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	registerDoctor(t, svc, "Ana López", "MP002", "Traumatología", "lunes")

	sp, err := model.NewSpecialty("Cardiología", []string{"martes"})
	require.NoError(t, err)
	require.NoError(t, svc.AddSpecialty(ctx, "MP002", sp))

	err = svc.AddSpecialty(ctx, "MP999", sp)
	assert.Equal(t, errors.ErrDoctorUnavailable, errors.CodeOf(err))

	again, err := model.NewSpecialty("cardiología", []string{"jueves"})
	require.NoError(t, err)
	err = svc.AddSpecialty(ctx, "MP002", again)
	assert.Equal(t, errors.ErrDuplicateSpecialty, errors.CodeOf(err))
}

func TestScheduleAppointmentExistenceChecks(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	when := futureOn(t, "lunes")

	_, err := svc.ScheduleAppointment(ctx, "99999999", "MP001", "Cardiología", when)
	assert.Equal(t, errors.ErrPatientNotFound, errors.CodeOf(err))

	registerPatient(t, svc, "Juan Pérez", "12345678")
	_, err = svc.ScheduleAppointment(ctx, "12345678", "MP001", "Cardiología", when)
	assert.Equal(t, errors.ErrDoctorUnavailable, errors.CodeOf(err))
}

func TestScheduleAppointmentSlotExclusivity(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	registerPatient(t, svc, "Juan Pérez", "12345678")
	registerPatient(t, svc, "María García", "87654321")
	registerDoctor(t, svc, "Carlos Rodríguez", "MP001", "Cardiología", "lunes", "miércoles")

	when := futureOn(t, "lunes")
	_, err := svc.ScheduleAppointment(ctx, "12345678", "MP001", "Cardiología", when)
	require.NoError(t, err)

	// Exact same doctor and timestamp is taken, even for another patient.
	_, err = svc.ScheduleAppointment(ctx, "87654321", "MP001", "Cardiología", when)
	assert.Equal(t, errors.ErrSlotTaken, errors.CodeOf(err))

	// One minute over is a different slot.
	_, err = svc.ScheduleAppointment(ctx, "87654321", "MP001", "Cardiología", when.Add(time.Minute))
	assert.NoError(t, err)
	assert.Len(t, svc.Appointments(ctx), 2)
}

func TestScheduleAppointmentAvailability(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	registerPatient(t, svc, "Juan Pérez", "12345678")
	registerDoctor(t, svc, "Carlos Rodríguez", "MP001", "Cardiología", "lunes", "miércoles")

	// Right specialty, right day.
	_, err := svc.ScheduleAppointment(ctx, "12345678", "MP001", "Cardiología", futureOn(t, "lunes"))
	assert.NoError(t, err)

	// Right specialty, wrong day.
	_, err = svc.ScheduleAppointment(ctx, "12345678", "MP001", "Cardiología", futureOn(t, "martes"))
	require.Equal(t, errors.ErrDoctorUnavailable, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "does not see patients on martes")

	// Wrong specialty on a day the doctor works.
	_, err = svc.ScheduleAppointment(ctx, "12345678", "MP001", "Pediatría", futureOn(t, "miércoles"))
	require.Equal(t, errors.ErrDoctorUnavailable, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "does not offer Pediatría")
	assert.Contains(t, err.Error(), "offers Cardiología")

	// Requested name matches ignoring case.
	_, err = svc.ScheduleAppointment(ctx, "12345678", "MP001", "  cardiología ", futureOn(t, "miércoles"))
	assert.NoError(t, err)
}

func TestScheduleAppointmentRejectsPastWithoutPartialState(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	registerPatient(t, svc, "Juan Pérez", "12345678")
	// Offered every day so only the past check can fail.
	registerDoctor(t, svc, "Carlos Rodríguez", "MP001", "Cardiología",
		"lunes", "martes", "miércoles", "jueves", "viernes", "sábado", "domingo")

	_, err := svc.ScheduleAppointment(ctx, "12345678", "MP001", "Cardiología", time.Now().Add(-24*time.Hour))
	require.Equal(t, errors.ErrInvalidData, errors.CodeOf(err))

	assert.Empty(t, svc.Appointments(ctx))
	history, err := svc.ClinicalHistory(ctx, "12345678")
	require.NoError(t, err)
	assert.Empty(t, history.Appointments())
}

func TestIssuePrescription(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	// The empty-list check runs before any existence check.
	_, err := svc.IssuePrescription(ctx, "99999999", "MP999", nil)
	assert.Equal(t, errors.ErrPrescriptionInvalid, errors.CodeOf(err))

	registerPatient(t, svc, "Juan Pérez", "12345678")
	registerDoctor(t, svc, "Carlos Rodríguez", "MP001", "Cardiología", "lunes")

	_, err = svc.IssuePrescription(ctx, "99999999", "MP001", []string{"Aspirin"})
	assert.Equal(t, errors.ErrPatientNotFound, errors.CodeOf(err))

	_, err = svc.IssuePrescription(ctx, "12345678", "MP999", []string{"Aspirin"})
	assert.Equal(t, errors.ErrDoctorUnavailable, errors.CodeOf(err))

	_, err = svc.IssuePrescription(ctx, "12345678", "MP001", []string{"  ", ""})
	assert.Equal(t, errors.ErrPrescriptionInvalid, errors.CodeOf(err))

	p, err := svc.IssuePrescription(ctx, "12345678", "MP001", []string{"Paracetamol 500mg", "Ibuprofeno 400mg"})
	require.NoError(t, err)
	assert.Len(t, p.Medications(), 2)

	history, err := svc.ClinicalHistory(ctx, "12345678")
	require.NoError(t, err)
	require.Len(t, history.Prescriptions(), 1)
	assert.Empty(t, history.Appointments())
}

func TestClinicalHistoryUnknownPatient(t *testing.T) {
	svc, _ := newService()
	_, err := svc.ClinicalHistory(context.Background(), "00000000")
	assert.Equal(t, errors.ErrPatientNotFound, errors.CodeOf(err))
}

func TestAppointmentsReturnsACopy(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	registerPatient(t, svc, "Juan Pérez", "12345678")
	registerDoctor(t, svc, "Carlos Rodríguez", "MP001", "Cardiología", "lunes")
	_, err := svc.ScheduleAppointment(ctx, "12345678", "MP001", "Cardiología", futureOn(t, "lunes"))
	require.NoError(t, err)

	got := svc.Appointments(ctx)
	got[0] = nil
	require.Len(t, svc.Appointments(ctx), 1)
	assert.NotNil(t, svc.Appointments(ctx)[0])
}

func TestEndToEndScenario(t *testing.T) {
	svc, auditor := newService()
	ctx := context.Background()

	registerPatient(t, svc, "Juan Pérez", "12345678")
	registerPatient(t, svc, "María García", "87654321")
	registerDoctor(t, svc, "Carlos Rodríguez", "MED001", "Cardiología", "lunes", "miércoles", "viernes")

	when := futureOn(t, "lunes")
	apt, err := svc.ScheduleAppointment(ctx, "12345678", "MED001", "Cardiología", when)
	require.NoError(t, err)
	assert.Equal(t, "MED001", apt.Doctor().LicenseID())

	all := svc.Appointments(ctx)
	require.Len(t, all, 1)
	history, err := svc.ClinicalHistory(ctx, "12345678")
	require.NoError(t, err)
	require.Len(t, history.Appointments(), 1)

	// Same slot for a different patient is rejected.
	_, err = svc.ScheduleAppointment(ctx, "87654321", "MED001", "Cardiología", when)
	assert.Equal(t, errors.ErrSlotTaken, errors.CodeOf(err))

	_, err = svc.IssuePrescription(ctx, "12345678", "MED001", []string{"Aspirin"})
	require.NoError(t, err)
	history, err = svc.ClinicalHistory(ctx, "12345678")
	require.NoError(t, err)
	require.Len(t, history.Prescriptions(), 1)

	_, err = svc.IssuePrescription(ctx, "12345678", "MED001", nil)
	assert.Equal(t, errors.ErrPrescriptionInvalid, errors.CodeOf(err))
	history, err = svc.ClinicalHistory(ctx, "12345678")
	require.NoError(t, err)
	assert.Len(t, history.Prescriptions(), 1)

	// Every successful mutation left an audit entry.
	entries := auditor.List(ctx)
	actions := make([]string, len(entries))
	for i, e := range entries {
		actions[i] = e.Action
	}
	assert.Equal(t, []string{"register", "register", "register", "schedule", "issue"}, actions)
}
