package service

import "time"

// SystemClock implements ports.Clock with the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ClockFunc adapts a function to ports.Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
