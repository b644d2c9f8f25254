package main

import (
	"fmt"
	"strings"

	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/hours"
	"github.com/AIProjectsAxis/AI-Receiptionist-User-sub002/internal/model"
)

// fieldAssignment is a parsed "[day.]field=value" flag.
type fieldAssignment struct {
	Day   model.Day
	Field model.Field
	Value string
}

// parseUniformAssignment parses "field=value" for the shared weekday window.
func parseUniformAssignment(s string) (fieldAssignment, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return fieldAssignment{}, fmt.Errorf("invalid assignment %q: want field=value", s)
	}
	field, err := model.ParseField(key)
	if err != nil {
		return fieldAssignment{}, err
	}
	value, err = parseSelectorValue(value)
	if err != nil {
		return fieldAssignment{}, err
	}
	return fieldAssignment{Field: field, Value: value}, nil
}

// parseDayAssignment parses "day.field=value".
func parseDayAssignment(s string) (fieldAssignment, error) {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return fieldAssignment{}, fmt.Errorf("invalid assignment %q: want day.field=value", s)
	}
	dayName, fieldName, ok := strings.Cut(key, ".")
	if !ok {
		return fieldAssignment{}, fmt.Errorf("invalid assignment %q: want day.field=value", s)
	}
	day, err := model.ParseDay(dayName)
	if err != nil {
		return fieldAssignment{}, err
	}
	field, err := model.ParseField(fieldName)
	if err != nil {
		return fieldAssignment{}, err
	}
	value, err = parseSelectorValue(value)
	if err != nil {
		return fieldAssignment{}, err
	}
	return fieldAssignment{Day: day, Field: field, Value: value}, nil
}

func parseSelectorValue(v string) (string, error) {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, hours.Closed) {
		return hours.Closed, nil
	}
	if !hours.IsTimeOfDay(v) {
		return "", fmt.Errorf("invalid time %q: want %q or a half-hour HH:MM from 07:00 to 22:00", v, hours.Closed)
	}
	return v, nil
}

// parseToggle parses an on/off flag value; an empty value means unset.
func parseToggle(name, v string) (*bool, error) {
	var on bool
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "":
		return nil, nil
	case "true", "on", "yes":
		on = true
	case "false", "off", "no":
		on = false
	default:
		return nil, fmt.Errorf("invalid --%s %q: want true or false", name, v)
	}
	return &on, nil
}
