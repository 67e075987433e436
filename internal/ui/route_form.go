package ui

import (
	"math/rand/v2"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/parcours/internal/model"
)

// StartEntry is the start location field. On focus, when empty, it suggests
// one of the example addresses as placeholder.
type StartEntry struct {
	widget.Entry
	examples []string
	pick     func(n int) int
}

// NewStartEntry creates a start location entry suggesting examples
func NewStartEntry(examples []string) *StartEntry {
	e := &StartEntry{examples: examples, pick: rand.IntN}
	e.ExtendBaseWidget(e)
	return e
}

// FocusGained swaps in a random example placeholder before taking focus
func (e *StartEntry) FocusGained() {
	if e.Text == "" && len(e.examples) > 0 {
		e.SetPlaceHolder(e.examples[e.pick(len(e.examples))])
	}
	e.Entry.FocusGained()
}

// RouteFormView holds the input widgets of the route form
type RouteFormView struct {
	localization *Localization

	start      *StartEntry
	distance   *widget.Entry
	training   *widget.Select
	elevation  *widget.Select
	avoidBusy  *widget.Check
	preferPark *widget.Check

	startLabel     *widget.Label
	distanceLabel  *widget.Label
	trainingLabel  *widget.Label
	elevationLabel *widget.Label

	// display label <-> wire value, rebuilt on language change
	trainingValues  map[string]string
	elevationValues map[string]string
}

// NewRouteFormView builds the form widgets with their default values
func NewRouteFormView(localization *Localization, onSubmit func()) *RouteFormView {
	f := &RouteFormView{localization: localization}

	f.start = NewStartEntry(StartLocationExamples)
	f.start.OnSubmitted = func(string) { onSubmit() }

	f.distance = widget.NewEntry()
	f.distance.SetText(DefaultDistanceText)
	f.distance.OnSubmitted = func(string) { onSubmit() }

	f.training = widget.NewSelect(nil, nil)
	f.elevation = widget.NewSelect(nil, nil)

	f.avoidBusy = widget.NewCheck("", nil)
	f.preferPark = widget.NewCheck("", nil)

	f.startLabel = widget.NewLabel("")
	f.distanceLabel = widget.NewLabel("")
	f.trainingLabel = widget.NewLabel("")
	f.elevationLabel = widget.NewLabel("")

	f.applyTexts(string(model.DefaultTrainingType), string(model.DefaultElevationPreference))
	return f
}

// Container lays the fields out vertically
func (f *RouteFormView) Container() fyne.CanvasObject {
	return container.NewVBox(
		f.startLabel, f.start,
		f.distanceLabel, f.distance,
		f.trainingLabel, f.training,
		f.elevationLabel, f.elevation,
		f.avoidBusy,
		f.preferPark,
	)
}

// Values returns the raw field values
func (f *RouteFormView) Values() model.RouteForm {
	return model.RouteForm{
		StartLocation:       f.start.Text,
		Distance:            f.distance.Text,
		TrainingType:        f.trainingValues[f.training.Selected],
		ElevationPreference: f.elevationValues[f.elevation.Selected],
		AvoidBusyRoads:      f.avoidBusy.Checked,
		PreferParks:         f.preferPark.Checked,
	}
}

// RefreshTexts relabels the form for the current language, keeping selections
func (f *RouteFormView) RefreshTexts() {
	training := f.trainingValues[f.training.Selected]
	elevation := f.elevationValues[f.elevation.Selected]
	f.applyTexts(training, elevation)
}

func (f *RouteFormView) applyTexts(training, elevation string) {
	l := f.localization

	f.startLabel.SetText(l.GetText(KeyStartLocation))
	f.distanceLabel.SetText(l.GetText(KeyDistance))
	f.trainingLabel.SetText(l.GetText(KeyTrainingType))
	f.elevationLabel.SetText(l.GetText(KeyElevation))
	f.avoidBusy.Text = l.GetText(KeyAvoidBusyRoads)
	f.avoidBusy.Refresh()
	f.preferPark.Text = l.GetText(KeyPreferParks)
	f.preferPark.Refresh()
	if f.start.Text == "" {
		f.start.SetPlaceHolder(l.GetText(KeyStartPlaceholder))
	}

	f.trainingValues = make(map[string]string)
	var trainingOptions []string
	for _, t := range model.TrainingTypes() {
		label := l.GetText(trainingKey(t))
		f.trainingValues[label] = string(t)
		trainingOptions = append(trainingOptions, label)
	}
	f.training.Options = trainingOptions
	f.training.SetSelected(l.GetText(trainingKey(model.TrainingType(training))))

	f.elevationValues = make(map[string]string)
	var elevationOptions []string
	for _, e := range model.ElevationPreferences() {
		label := l.GetText(elevationKey(e))
		f.elevationValues[label] = string(e)
		elevationOptions = append(elevationOptions, label)
	}
	f.elevation.Options = elevationOptions
	f.elevation.SetSelected(l.GetText(elevationKey(model.ElevationPreference(elevation))))
}

func trainingKey(t model.TrainingType) string {
	switch t {
	case model.TrainingFractionne:
		return KeyTrainingFractionne
	case model.TrainingTempo:
		return KeyTrainingTempo
	case model.TrainingRecuperation:
		return KeyTrainingRecuperation
	default:
		return KeyTrainingEndurance
	}
}

func elevationKey(e model.ElevationPreference) string {
	switch e {
	case model.ElevationVallonne:
		return KeyElevationHilly
	case model.ElevationMontagneux:
		return KeyElevationMountain
	default:
		return KeyElevationFlat
	}
}
