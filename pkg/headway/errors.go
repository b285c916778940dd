package headway

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedTime    = errors.New("malformed transit time")
	ErrNegativeInterval = errors.New("next arrival is earlier than current arrival")
	ErrUnknownWindow    = errors.New("time window has no adjustment factor")
	ErrHourOutOfRange   = errors.New("hour of day outside 0-23")
)

// MalformedTimeError is returned when a time string does not follow the HH:MM:SS contract.
type MalformedTimeError struct {
	Value  string
	Reason string
}

func (e *MalformedTimeError) Error() string {
	return fmt.Sprintf("malformed transit time %q: %s", e.Value, e.Reason)
}

func (e *MalformedTimeError) Is(target error) bool {
	return target == ErrMalformedTime
}

type UnknownWindowError struct {
	Window TimeWindow
}

func (e *UnknownWindowError) Error() string {
	return fmt.Sprintf("no adjustment factor for time window %q", e.Window.String())
}

func (e *UnknownWindowError) Is(target error) bool {
	return target == ErrUnknownWindow
}

// RecordError ties a rejected stop time back to the row it came from.
type RecordError struct {
	StopID string
	TripID string
	Err    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("stop %s trip %s: %v", e.StopID, e.TripID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
