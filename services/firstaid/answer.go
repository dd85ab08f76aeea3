package firstaid

import (
	"encoding/json"
	"fmt"
	"strings"

	"firstresponse/models"
)

// Answer is the first-aid payload in either of its two shapes: a free-text
// answer, or a list of steps. Exactly one is set after decoding.
type Answer struct {
	Text       string
	Steps      []string
	Structured bool
}

type guidancePayload struct {
	Question    string                 `json:"question"`
	Language    string                 `json:"language"`
	Answer      *string                `json:"answer"`
	AnswerSteps []string               `json:"answer_steps"`
	Checklist   []models.ChecklistItem `json:"checklist"`
}

// decodeGuidance reads a /first_aid body and resolves the answer shape.
// answer_steps wins when both are present.
func decodeGuidance(body []byte) (*models.FirstAidGuidance, error) {
	var p guidancePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to decode first aid response: %w", err)
	}

	var a Answer
	switch {
	case p.AnswerSteps != nil:
		a = Answer{Steps: p.AnswerSteps, Structured: true}
	case p.Answer != nil:
		a = Answer{Text: *p.Answer}
	}

	checklist := p.Checklist
	if checklist == nil {
		checklist = []models.ChecklistItem{}
	}
	return &models.FirstAidGuidance{
		Question:  p.Question,
		Language:  p.Language,
		Steps:     NormalizeSteps(a),
		Checklist: checklist,
	}, nil
}

// NormalizeSteps yields the ordered, non-blank step list for either shape.
// Feeding the result back in as Steps returns it unchanged.
func NormalizeSteps(a Answer) []string {
	var raw []string
	if a.Structured {
		raw = a.Steps
	} else {
		raw = strings.Split(a.Text, "\n")
	}

	steps := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSuffix(s, "\r")
		if strings.TrimSpace(s) == "" {
			continue
		}
		steps = append(steps, s)
	}
	return steps
}
