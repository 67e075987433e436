package export

// Exporter defines the interface for the export service.
type Exporter interface {
	// Export writes the artifact to a new file and returns its path
	Export(artifact string) (string, error)

	// SetDirectory sets the directory exported files are written to
	SetDirectory(dir string)
}
