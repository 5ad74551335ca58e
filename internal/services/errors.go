package services

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMissingTrack    = errors.New("track is required")
	ErrInvalidDay      = errors.New("day is out of range for this track")
	ErrNothingSelected = errors.New("Please select at least one person to mark attendance.")
	ErrNothingScanned  = errors.New("no barcodes scanned yet")
)
