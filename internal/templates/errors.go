package templates

import "errors"

// Sentinel error kinds for template lookup.
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateLocked   = errors.New("template is open in another application")
	ErrTemplateRead     = errors.New("read template failed")
)
