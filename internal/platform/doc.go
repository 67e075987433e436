package platform

// Package platform contains OS/platform integration: filesystem helpers,
// the user's Downloads directory, and revealing or opening exported tracks.
