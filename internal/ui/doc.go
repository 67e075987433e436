package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires the route form to the controller, applies controller effects to the
// widgets and hosts the map. All UI strings are localized via Localization.
