package rationing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firstresponse/models"
	"firstresponse/services/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var form = models.RationingRequest{
	WaterLiters:    100,
	FoodItems:      "rice, lentils",
	MedicinesUnits: 50,
	PeopleCount:    10,
	DaysCount:      5,
}

func stubAPI(t *testing.T, h http.HandlerFunc) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return upstream.NewClient(srv.URL, time.Second)
}

func unreachableAPI(t *testing.T) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()
	return upstream.NewClient(url, time.Second)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(form))

	noFood := form
	noFood.FoodItems = "  "
	assert.ErrorIs(t, Validate(noFood), ErrMissingFields)

	noPeople := form
	noPeople.PeopleCount = 0
	assert.ErrorIs(t, Validate(noPeople), ErrInvalidGroup)

	negative := form
	negative.WaterLiters = -1
	assert.ErrorIs(t, Validate(negative), ErrNegativeAmount)
}

func TestAnalyze_Success(t *testing.T) {
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		var got models.RationingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, 10, got.PeopleCount)
		assert.Equal(t, "rice, lentils", got.FoodItems)
		w.Write([]byte(`{"explanation":["a","b"],"resource_status":[{"resource":"Water","status":"Surplus","details":"x"}]}`))
	})

	plan, err := NewService(api, true).Analyze(context.Background(), "tok", form)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, plan.Explanation)
	assert.Equal(t, models.LevelSurplus, plan.ResourceStatus[0].Status)
	assert.False(t, plan.Demo)
}

func TestAnalyze_UnknownStatusRejected(t *testing.T) {
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"explanation":[],"resource_status":[{"resource":"Water","status":"Sufficient","details":"x"}]}`))
	})

	_, err := NewService(api, true).Analyze(context.Background(), "tok", form)
	require.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyze_NonOK(t *testing.T) {
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})
	_, err := NewService(api, true).Analyze(context.Background(), "tok", form)
	require.ErrorIs(t, err, ErrAnalysisFailed)
}

func TestAnalyze_UnreachableComputesDemo(t *testing.T) {
	plan, err := NewService(unreachableAPI(t), true).Analyze(context.Background(), "tok", form)
	require.NoError(t, err)
	assert.True(t, plan.Demo)
	require.Len(t, plan.Explanation, 5)
	assert.Equal(t, "Distributing resources for 10 people over 5 days", plan.Explanation[0])

	require.Len(t, plan.ResourceStatus, 3)
	water, food, medicine := plan.ResourceStatus[0], plan.ResourceStatus[1], plan.ResourceStatus[2]
	assert.Equal(t, models.LevelAdequate, water.Status)
	assert.Equal(t, "2.0L per person per day (minimum 2L recommended)", water.Details)
	assert.Equal(t, models.LevelCritical, food.Status)
	assert.Equal(t, models.LevelCritical, medicine.Status)
	assert.Equal(t, "5.0 units per person", medicine.Details)
}

func TestAnalyze_UnreachableWithoutFallback(t *testing.T) {
	_, err := NewService(unreachableAPI(t), false).Analyze(context.Background(), "tok", form)
	require.ErrorIs(t, err, upstream.ErrUnavailable)
}

func TestAnalyze_InvalidSkipsNetwork(t *testing.T) {
	called := false
	api := stubAPI(t, func(w http.ResponseWriter, r *http.Request) { called = true })
	bad := form
	bad.DaysCount = 0
	_, err := NewService(api, true).Analyze(context.Background(), "tok", bad)
	require.ErrorIs(t, err, ErrInvalidGroup)
	assert.False(t, called)
}
