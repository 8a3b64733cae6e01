package corrector

// Correction describes a parameter rewrite derived from a validation error.
type Correction struct {
	Original   map[string]any
	Corrected  map[string]any
	Applied    string
	Confidence float64
}
