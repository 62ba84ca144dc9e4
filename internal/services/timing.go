package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs how long op took since start. Use as
// defer TrackTime("Session.Refresh", time.Now()).
func TrackTime(op string, start time.Time) {
	log.WithFields(log.Fields{
		"op":         op,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Debug("timing")
}
