package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jwalitptl/clinica/internal/model"
	"github.com/jwalitptl/clinica/internal/service/clinic"
	"github.com/jwalitptl/clinica/pkg/logger"
)

// CLI drives the interactive menu. It collects raw strings, parses dates and
// comma-separated lists, and hands already-shaped values to the clinic
// service; the service re-validates everything.
type CLI struct {
	clinic *clinic.Service
	in     *bufio.Scanner
	out    io.Writer
	log    *logger.Logger
}

func New(svc *clinic.Service, in io.Reader, out io.Writer, log *logger.Logger) *CLI {
	return &CLI{
		clinic: svc,
		in:     bufio.NewScanner(in),
		out:    out,
		log:    log.WithComponent("cli"),
	}
}

const menu = `
==================================================
            CLINIC MANAGEMENT SYSTEM
==================================================
1) Register patient
2) Register doctor
3) Book appointment
4) Add specialty to doctor
5) Issue prescription
6) View clinical history
7) View all appointments
8) View all patients
9) View all doctors
0) Exit
==================================================`

// Run loops over the menu until the user exits or input runs out.
func (c *CLI) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(c.out, menu)
		choice, ok := c.prompt("Select an option: ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			c.registerPatient(ctx)
		case "2":
			c.registerDoctor(ctx)
		case "3":
			c.bookAppointment(ctx)
		case "4":
			c.addSpecialty(ctx)
		case "5":
			c.issuePrescription(ctx)
		case "6":
			c.viewHistory(ctx)
		case "7":
			c.listAppointments(ctx)
		case "8":
			c.listPatients(ctx)
		case "9":
			c.listDoctors(ctx)
		case "0":
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(c.out, "Invalid option, please pick one from the menu.")
		}
	}
}

// prompt prints a label and reads one trimmed line. ok is false once input
// is exhausted.
func (c *CLI) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// promptRequired re-reads nothing: like the original interface, a blank
// answer aborts the whole operation rather than looping.
func (c *CLI) promptRequired(label, what string) (string, bool) {
	value, ok := c.prompt(label)
	if !ok {
		return "", false
	}
	if value == "" {
		fmt.Fprintf(c.out, "%s must not be empty.\n", what)
		return "", false
	}
	return value, true
}

func (c *CLI) fail(err error) {
	c.log.Debug("operation rejected", "error", err.Error())
	fmt.Fprintf(c.out, "Error: %v\n", err)
}

func (c *CLI) registerPatient(ctx context.Context) {
	fmt.Fprintln(c.out, "\n--- REGISTER PATIENT ---")
	name, ok := c.promptRequired("Full name: ", "Name")
	if !ok {
		return
	}
	dni, ok := c.promptRequired("DNI: ", "DNI")
	if !ok {
		return
	}
	birth, ok := c.promptRequired("Birth date (dd/mm/yyyy): ", "Birth date")
	if !ok {
		return
	}
	if _, err := time.Parse(model.BirthDateLayout, birth); err != nil {
		fmt.Fprintln(c.out, "Invalid date format, use dd/mm/yyyy.")
		return
	}

	patient, err := model.NewPatient(name, dni, birth)
	if err != nil {
		c.fail(err)
		return
	}
	if err := c.clinic.RegisterPatient(ctx, patient); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Patient %s registered.\n", name)
}

func (c *CLI) registerDoctor(ctx context.Context) {
	fmt.Fprintln(c.out, "\n--- REGISTER DOCTOR ---")
	name, ok := c.promptRequired("Full name: ", "Name")
	if !ok {
		return
	}
	license, ok := c.promptRequired("License number: ", "License number")
	if !ok {
		return
	}

	doctor, err := model.NewDoctor(name, license)
	if err != nil {
		c.fail(err)
		return
	}

	fmt.Fprintln(c.out, "\nNow add the doctor's specialties:")
	for {
		spName, ok := c.prompt("Specialty name (or 'done' to finish): ")
		if !ok {
			return
		}
		if strings.EqualFold(spName, "done") {
			break
		}
		if spName == "" {
			fmt.Fprintln(c.out, "Specialty name must not be empty.")
			continue
		}

		sp, ok := c.readSpecialty(spName)
		if !ok {
			continue
		}
		if err := doctor.AddSpecialty(sp); err != nil {
			c.fail(err)
			continue
		}
		fmt.Fprintf(c.out, "Specialty %s added.\n", spName)
	}

	if err := c.clinic.RegisterDoctor(ctx, doctor); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Doctor %s registered.\n", name)
}

// readSpecialty prompts for the day list and builds the specialty value.
func (c *CLI) readSpecialty(name string) (*model.Specialty, bool) {
	fmt.Fprintln(c.out, "Days offered (comma separated):")
	fmt.Fprintf(c.out, "Example: %s, %s, %s\n", model.Weekdays[0], model.Weekdays[2], model.Weekdays[4])
	daysInput, ok := c.prompt("Days: ")
	if !ok || daysInput == "" {
		fmt.Fprintln(c.out, "At least one day is required.")
		return nil, false
	}

	sp, err := model.NewSpecialty(name, splitList(daysInput))
	if err != nil {
		c.fail(err)
		return nil, false
	}
	return sp, true
}

func (c *CLI) bookAppointment(ctx context.Context) {
	fmt.Fprintln(c.out, "\n--- BOOK APPOINTMENT ---")
	dni, ok := c.promptRequired("Patient DNI: ", "DNI")
	if !ok {
		return
	}
	license, ok := c.promptRequired("Doctor license number: ", "License number")
	if !ok {
		return
	}
	specialty, ok := c.promptRequired("Specialty: ", "Specialty")
	if !ok {
		return
	}
	dateStr, ok := c.promptRequired("Date (dd/mm/yyyy): ", "Date")
	if !ok {
		return
	}
	timeStr, ok := c.promptRequired("Time (HH:MM): ", "Time")
	if !ok {
		return
	}

	timestamp, err := time.ParseInLocation(model.TimestampLayout, dateStr+" "+timeStr, time.Local)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid date or time format, use dd/mm/yyyy and HH:MM.")
		return
	}

	if _, err := c.clinic.ScheduleAppointment(ctx, dni, license, specialty, timestamp); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "Appointment booked.")
}

func (c *CLI) addSpecialty(ctx context.Context) {
	fmt.Fprintln(c.out, "\n--- ADD SPECIALTY TO DOCTOR ---")
	license, ok := c.promptRequired("Doctor license number: ", "License number")
	if !ok {
		return
	}
	if _, err := c.clinic.DoctorByLicense(ctx, license); err != nil {
		c.fail(err)
		return
	}

	name, ok := c.promptRequired("New specialty name: ", "Specialty name")
	if !ok {
		return
	}
	sp, ok := c.readSpecialty(name)
	if !ok {
		return
	}
	if err := c.clinic.AddSpecialty(ctx, license, sp); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintf(c.out, "Specialty %s added to doctor %s.\n", name, license)
}

func (c *CLI) issuePrescription(ctx context.Context) {
	fmt.Fprintln(c.out, "\n--- ISSUE PRESCRIPTION ---")
	dni, ok := c.promptRequired("Patient DNI: ", "DNI")
	if !ok {
		return
	}
	license, ok := c.promptRequired("Doctor license number: ", "License number")
	if !ok {
		return
	}
	fmt.Fprintln(c.out, "Medications (comma separated):")
	medsInput, ok := c.promptRequired("Medications: ", "Medication list")
	if !ok {
		return
	}

	if _, err := c.clinic.IssuePrescription(ctx, dni, license, splitList(medsInput)); err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out, "Prescription issued.")
}

func (c *CLI) viewHistory(ctx context.Context) {
	fmt.Fprintln(c.out, "\n--- CLINICAL HISTORY ---")
	dni, ok := c.promptRequired("Patient DNI: ", "DNI")
	if !ok {
		return
	}

	history, err := c.clinic.ClinicalHistory(ctx, dni)
	if err != nil {
		c.fail(err)
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, history)
}

func (c *CLI) listAppointments(ctx context.Context) {
	fmt.Fprintln(c.out, "\n--- ALL APPOINTMENTS ---")
	appointments := c.clinic.Appointments(ctx)
	if len(appointments) == 0 {
		fmt.Fprintln(c.out, "No appointments booked.")
		return
	}
	for i, apt := range appointments {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, apt)
	}
}

func (c *CLI) listPatients(ctx context.Context) {
	fmt.Fprintln(c.out, "\n--- ALL PATIENTS ---")
	patients := c.clinic.Patients(ctx)
	if len(patients) == 0 {
		fmt.Fprintln(c.out, "No patients registered.")
		return
	}
	for i, p := range patients {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, p)
	}
}

func (c *CLI) listDoctors(ctx context.Context) {
	fmt.Fprintln(c.out, "\n--- ALL DOCTORS ---")
	doctors := c.clinic.Doctors(ctx)
	if len(doctors) == 0 {
		fmt.Fprintln(c.out, "No doctors registered.")
		return
	}
	for i, d := range doctors {
		fmt.Fprintf(c.out, "%d. %s\n", i+1, d)
	}
}

// splitList splits a comma-separated answer, trims each token and drops the
// blanks.
func splitList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
