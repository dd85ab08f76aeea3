package rationing

import (
	"fmt"

	"firstresponse/models"
)

const (
	minWaterPerPersonDay = 2.0
	minMedicinePerPerson = 10.0
)

// DemoPlan computes a plan locally from the form values. req must be valid.
func DemoPlan(req models.RationingRequest) *models.RationingPlan {
	people := float64(req.PeopleCount)
	days := float64(req.DaysCount)
	water := req.WaterLiters / people / days
	medicine := req.MedicinesUnits / people

	return &models.RationingPlan{
		Explanation: []string{
			fmt.Sprintf("Distributing resources for %d people over %d days", req.PeopleCount, req.DaysCount),
			fmt.Sprintf("Water allocation: %.1fL per person per day", water),
			"Food should be distributed in equal portions with priority to children and elderly",
			"Medicine units should be reserved for critical health situations",
			"Monitor consumption daily and adjust if necessary",
		},
		ResourceStatus: []models.ResourceStatus{
			{
				Resource: "Water",
				Status:   level(water >= minWaterPerPersonDay),
				Details:  fmt.Sprintf("%.1fL per person per day (minimum 2L recommended)", water),
			},
			{
				Resource: "Food",
				Status:   models.LevelCritical,
				Details:  "Needs careful rationing - prioritize high-calorie items",
			},
			{
				Resource: "Medicine",
				Status:   level(medicine >= minMedicinePerPerson),
				Details:  fmt.Sprintf("%.1f units per person", medicine),
			},
		},
		Demo: true,
	}
}

func level(adequate bool) models.ResourceLevel {
	if adequate {
		return models.LevelAdequate
	}
	return models.LevelCritical
}
