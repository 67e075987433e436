package generate

// Package generate is the client of the remote route generation service. It
// posts route requests as JSON, decodes the returned route, and converts
// service failures into typed errors carrying the service's detail message.
