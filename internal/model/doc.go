package model

// Package model defines domain data structures used across the app: route
// requests and responses, metrics, and the controller status enum. Structures
// are plain values so they can travel between the controller and the UI.
