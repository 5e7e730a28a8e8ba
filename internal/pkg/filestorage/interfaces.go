package filestorage

// DocumentStorage reads and overwrites whole documents addressed by name.
type DocumentStorage interface {
	// ReadDocument returns the full content of a document. A missing document
	// yields an error satisfying errors.Is(err, fs.ErrNotExist).
	ReadDocument(name string) ([]byte, error)

	// WriteDocument replaces the document content, creating it if needed
	WriteDocument(name string, data []byte) error

	// GetFullPath returns the filesystem path backing a document
	GetFullPath(name string) string
}
