package models

// ResourceLevel classifies a supply against the group's needs.
type ResourceLevel string

const (
	LevelAdequate ResourceLevel = "Adequate"
	LevelCritical ResourceLevel = "Critical"
	LevelSurplus  ResourceLevel = "Surplus"
)

// Valid reports whether the level is one of the known values.
func (l ResourceLevel) Valid() bool {
	switch l {
	case LevelAdequate, LevelCritical, LevelSurplus:
		return true
	}
	return false
}

// RationingRequest is the body of POST /ration_all_explained.
type RationingRequest struct {
	WaterLiters    float64 `json:"water_liters"`
	FoodItems      string  `json:"food_items"`
	MedicinesUnits float64 `json:"medicines_units"`
	PeopleCount    int     `json:"people_count"`
	DaysCount      int     `json:"days_count"`
	Lang           string  `json:"lang,omitempty"`
}

// ResourceStatus is one resource row in the rationing result.
type ResourceStatus struct {
	Resource string        `json:"resource"`
	Status   ResourceLevel `json:"status"`
	Details  string        `json:"details"`
}

// RationingPlan is the rendered rationing analysis.
type RationingPlan struct {
	Explanation    []string         `json:"explanation"`
	ResourceStatus []ResourceStatus `json:"resource_status"`
	Demo           bool             `json:"demo"`
}
