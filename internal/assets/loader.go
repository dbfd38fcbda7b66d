package assets

// AssetLoader defines the contract for loading HTML page templates.
type AssetLoader interface {
	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidTemplateName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
