package models

// Regime labels produced by the entropy classifier.
const (
	RegimeCompressionExpansion = "Compression→Expansion"
	RegimeChop                 = "Chop"
)

// Signals are the scalar market readings derived from a return window.
type Signals struct {
	Entropy float64 // normalized volatility proxy in [0,1]
	Edge    float64 // mean/stdev of returns
	Regime  string
}
