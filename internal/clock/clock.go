// Package clock abstracts the wall clock so time-dependent logic can be
// tested against fixed instants.
package clock

import "time"

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by time.Now
func System() Clock { return systemClock{} }

// Fixed returns a Clock that always reports t
func Fixed(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
