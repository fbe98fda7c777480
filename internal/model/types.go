// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	Timeout       time.Duration
	CheckInterval time.Duration
	PreviewLen    int
	SentencesPath string
	Seed          int64
}
