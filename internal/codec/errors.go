package codec

import "fmt"

// ImportError is returned when a list file cannot be read or its outer
// JSON cannot be parsed. Per-row problems (a bad date, a truncated
// cover payload) never produce an ImportError; they degrade to safe
// defaults instead.
type ImportError struct {
	// Path is the file the import was reading, when known.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *ImportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("import %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("import album list: %v", e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ExportError is returned when an album list could not be serialized
// or written to disk.
type ExportError struct {
	// Path is the destination file, when known.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *ExportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("export %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("export album list: %v", e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
