package analytics

import (
	"errors"

	"LipeCore/internal/domain/models"
	domsvc "LipeCore/internal/domain/service"
	"LipeCore/internal/services/features"
)

// ErrInsufficientHistory is returned when a statistics window is empty.
var ErrInsufficientHistory = errors.New("insufficient price history")

const (
	// SignalWindow is the number of trailing returns used for entropy and edge.
	SignalWindow = 90

	entropyFullScale     = 0.05 // stdev mapped to entropy 1.0
	compressionThreshold = 0.35
	stdevEpsilon         = 1e-9
)

// Entropy maps the population stdev of rets onto [0,1]. Empty input is maximally uncertain.
func Entropy(rets []float64) float64 {
	if len(rets) == 0 {
		return 1.0
	}
	vol := features.PStdev(rets)
	if vol == 0 {
		vol = stdevEpsilon
	}
	return features.Clamp(vol/entropyFullScale, 0, 1)
}

// Edge is mean/stdev of rets, 0 for empty input.
func Edge(rets []float64) float64 {
	if len(rets) == 0 {
		return 0
	}
	vol := features.PStdev(rets)
	if vol == 0 {
		vol = stdevEpsilon
	}
	return features.Mean(rets) / vol
}

// ClassifyRegime is a two-state label on entropy with no hysteresis.
func ClassifyRegime(entropy float64) string {
	if entropy < compressionThreshold {
		return models.RegimeCompressionExpansion
	}
	return models.RegimeChop
}

// WindowScorer scores the trailing window of a return series.
type WindowScorer struct {
	window int
}

func NewWindowScorer() *WindowScorer { return &WindowScorer{window: SignalWindow} }

func (s *WindowScorer) Score(returns []float64) models.Signals {
	w := features.Tail(returns, s.window)
	e := Entropy(w)
	return models.Signals{
		Entropy: e,
		Edge:    Edge(w),
		Regime:  ClassifyRegime(e),
	}
}

var _ domsvc.SignalScorer = (*WindowScorer)(nil)
