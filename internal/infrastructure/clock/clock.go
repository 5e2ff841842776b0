// Package clock provides the wall-clock implementation of port.Clock.
package clock

import "time"

// System reads the wall clock in UTC.
type System struct{}

// New returns a system clock.
func New() System { return System{} }

// Now returns the current UTC time.
func (System) Now() time.Time { return time.Now().UTC() }
