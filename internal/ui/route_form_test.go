package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/parcours/internal/model"
)

func TestRouteFormDefaults(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	form := NewRouteFormView(NewLocalization(), func() {})
	values := form.Values()

	if values.StartLocation != "" {
		t.Errorf("Start location should be empty, got %q", values.StartLocation)
	}
	if values.Distance != DefaultDistanceText {
		t.Errorf("Expected distance %s, got %s", DefaultDistanceText, values.Distance)
	}
	if values.TrainingType != string(model.DefaultTrainingType) {
		t.Errorf("Expected training type %s, got %s", model.DefaultTrainingType, values.TrainingType)
	}
	if values.ElevationPreference != string(model.DefaultElevationPreference) {
		t.Errorf("Expected elevation %s, got %s", model.DefaultElevationPreference, values.ElevationPreference)
	}
	if values.AvoidBusyRoads || values.PreferParks {
		t.Error("Checks should start unchecked")
	}
}

func TestRouteFormSelectionsMapToWireValues(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	form := NewRouteFormView(NewLocalization(), func() {})
	form.training.SetSelected("Fractionné")
	form.elevation.SetSelected("Montagneux")
	form.avoidBusy.SetChecked(true)
	form.distance.SetText("abc")

	values := form.Values()
	if values.TrainingType != "fractionne" {
		t.Errorf("Expected fractionne, got %s", values.TrainingType)
	}
	if values.ElevationPreference != "montagneux" {
		t.Errorf("Expected montagneux, got %s", values.ElevationPreference)
	}
	if !values.AvoidBusyRoads {
		t.Error("Avoid busy roads should be checked")
	}
	// no client-side validation, raw text is kept
	if values.Distance != "abc" {
		t.Errorf("Expected raw distance text, got %q", values.Distance)
	}
}

func TestRouteFormSubmitOnEnter(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	submitted := 0
	form := NewRouteFormView(NewLocalization(), func() { submitted++ })
	form.start.OnSubmitted("Tour Eiffel, Paris")
	form.distance.OnSubmitted("10")

	if submitted != 2 {
		t.Errorf("Expected 2 submissions, got %d", submitted)
	}
}

func TestStartEntryExamplePlaceholder(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	entry := NewStartEntry(StartLocationExamples)
	entry.pick = func(n int) int { return n - 1 }

	entry.FocusGained()
	if entry.PlaceHolder != "Parc des Buttes-Chaumont, Paris" {
		t.Errorf("Unexpected placeholder %q", entry.PlaceHolder)
	}

	entry.SetPlaceHolder("")
	entry.SetText("Bastille, Paris")
	entry.FocusGained()
	if entry.PlaceHolder != "" {
		t.Errorf("Placeholder should not change when text is present, got %q", entry.PlaceHolder)
	}
}
