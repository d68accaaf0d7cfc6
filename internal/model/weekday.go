package model

import (
	"strings"
	"time"

	"github.com/jwalitptl/clinica/pkg/errors"
)

// Canonical weekday tokens used across doctor schedules, Monday first. The
// clinic has always run on the Spanish day names and every schedule on file
// uses them, so they are the wire format here too.
var Weekdays = [7]string{
	"lunes",
	"martes",
	"miércoles",
	"jueves",
	"viernes",
	"sábado",
	"domingo",
}

// NormalizeWeekday trims and lowercases a raw day token and checks it against
// the canonical list.
func NormalizeWeekday(day string) (string, error) {
	norm := strings.ToLower(strings.TrimSpace(day))
	for _, d := range Weekdays {
		if d == norm {
			return norm, nil
		}
	}
	return "", errors.InvalidDataf("'%s' is not a valid weekday", strings.TrimSpace(day))
}

// WeekdayOf maps a timestamp to its canonical token (Monday=0 … Sunday=6).
func WeekdayOf(t time.Time) string {
	return Weekdays[(int(t.Weekday())+6)%7]
}
