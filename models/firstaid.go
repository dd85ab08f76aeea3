package models

// ChecklistItem is one row of the first-aid checklist table.
type ChecklistItem struct {
	Action string `json:"action"`
	HowTo  string `json:"how_to"`
	Avoid  string `json:"avoid"`
}

// FirstAidGuidance is the rendered first-aid answer.
type FirstAidGuidance struct {
	Question  string          `json:"question"`
	Language  string          `json:"language"`
	Steps     []string        `json:"answer_steps"`
	Checklist []ChecklistItem `json:"checklist"`
	Demo      bool            `json:"demo"`
}
