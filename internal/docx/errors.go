package docx

import "errors"

// Sentinel error kinds for docx packages.
var (
	ErrInvalidPackage = errors.New("invalid docx package")
	ErrMissingPart    = errors.New("docx part not found")
)
