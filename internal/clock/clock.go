// Package clock abstracts wall-clock access so time-dependent rules
// (cache TTLs, order date windows) can be tested with a fake.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

func NewSystemClock() Clock {
	return systemClock{}
}
