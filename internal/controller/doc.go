package controller

// Package controller implements the route request state machine. It receives
// typed commands (Submit, ExportRequested), talks to the generation and export
// services, and reports every visible change as a typed effect handed to a
// Presenter. It knows nothing about the UI toolkit.
