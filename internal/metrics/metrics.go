// Package metrics computes typing speed and accuracy for a practice session.
package metrics

import (
	"math"
	"strings"
	"time"
)

// Result holds the metrics derived at submission time.
type Result struct {
	WordsCount      int
	TypedWordsCount int
	Minutes         float64
	GrossWPM        float64
	// NetWPM has no consumer in the typing view; it is only printed in the exit summary.
	NetWPM      float64
	RawAccuracy float64
	Accuracy    float64
}

// CountWords returns the number of whitespace-delimited tokens in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// Compute derives WPM and accuracy for typed text against target.
// Non-finite intermediate values are reported as 0.
func Compute(target, typed string, elapsed time.Duration) Result {
	words := CountWords(target)
	typedWords := CountWords(typed)

	minutes := 0.0
	if elapsed > 0 {
		minutes = elapsed.Minutes()
	}
	gross := float64(typedWords) / minutes
	net := gross - float64(typedWords)/10.0
	raw := float64(typedWords) / float64(words) * 100

	return Result{
		WordsCount:      words,
		TypedWordsCount: typedWords,
		Minutes:         minutes,
		GrossWPM:        finite(gross),
		NetWPM:          finite(net),
		RawAccuracy:     finite(raw),
		Accuracy:        round2(clamp(finite(raw), 0, 100)),
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
