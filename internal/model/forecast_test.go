package model

import (
	"testing"
	"time"
)

func TestForecastRecord_Localize(t *testing.T) {
	noon := time.Date(2024, 5, 31, 6, 30, 0, 0, time.UTC) // 12:00 in Kolkata
	r := &ForecastRecord{
		ObservedAt: noon,
		Hourly:     []ForecastEntry{{Time: noon}},
		Daily:      []ForecastEntry{{Time: noon}},
	}

	r.Localize("Asia/Kolkata")

	if r.Timezone != "Asia/Kolkata" {
		t.Errorf("Expected timezone Asia/Kolkata, got %s", r.Timezone)
	}
	if r.Hourly[0].Title != "12:00 PM" {
		t.Errorf("Expected hourly title 12:00 PM, got %s", r.Hourly[0].Title)
	}
	if r.Daily[0].Title != "Fri" {
		t.Errorf("Expected daily title Fri, got %s", r.Daily[0].Title)
	}
	if r.LocalTime != "Friday, 31 May 2024 | Local time: 12:00 PM" {
		t.Errorf("unexpected local time %q", r.LocalTime)
	}
}

func TestForecastRecord_LocalizeUnknownZone(t *testing.T) {
	r := &ForecastRecord{Hourly: []ForecastEntry{{Time: time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)}}}
	r.Localize("Not/AZone")
	if r.Timezone != "UTC" {
		t.Errorf("Expected UTC fallback, got %s", r.Timezone)
	}
	if r.Hourly[0].Title != "03:00 PM" {
		t.Errorf("Expected 03:00 PM, got %s", r.Hourly[0].Title)
	}
}

func TestIconURL(t *testing.T) {
	if IconURL("") != "" {
		t.Error("Expected empty URL for empty code")
	}
	if IconURL("01d") != "https://openweathermap.org/img/wn/01d@2x.png" {
		t.Errorf("unexpected icon URL %s", IconURL("01d"))
	}
}
