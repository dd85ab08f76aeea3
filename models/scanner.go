package models

import "strings"

// ScanResult is the misinformation verdict for an uploaded flyer.
type ScanResult struct {
	ExtractedText string `json:"extracted_text"`
	Verdict       string `json:"verdict"`
	Reason        string `json:"reason"`
	Demo          bool   `json:"demo"`
}

// Suspicious matches the free-text verdict heuristically.
func (r ScanResult) Suspicious() bool {
	return strings.Contains(r.Verdict, "Suspicious")
}
