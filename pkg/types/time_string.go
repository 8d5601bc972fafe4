package types

import (
	"errors"
	"fmt"
	"time"
)

const timeStringLayout = "15:04"

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString время суток в формате HH:MM (без даты и часового пояса)
// Используется для времени передачи и возврата снаряжения
type TimeString struct {
	value string
}

// NewTimeStringFromString парсит строку формата HH:MM
func NewTimeStringFromString(s string) (TimeString, error) {
	parsed, err := time.Parse(timeStringLayout, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString{value: parsed.Format(timeStringLayout)}, nil
}

// MustTimeString как NewTimeStringFromString, но паникует при ошибке (только для констант)
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// String возвращает время в формате HH:MM
func (t TimeString) String() string {
	return t.value
}

// Validate проверяет формат времени
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeStringLayout, t.value); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, t.value)
	}
	return nil
}
