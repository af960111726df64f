package engine

import "errors"

var (
	// ErrInactive is returned by commands that need an active zone.
	ErrInactive = errors.New("not in Eureka")
	// ErrNoTracker is returned when tracker calls are disabled.
	ErrNoTracker = errors.New("tracker client disabled")
	// ErrTrackerExists is returned when a session is already configured.
	ErrTrackerExists = errors.New("tracker session already configured")
	// ErrNoMarkers is returned when no marker sink is attached.
	ErrNoMarkers = errors.New("no marker sink")
)
