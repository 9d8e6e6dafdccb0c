package asciiart

import "errors"

// Error taxonomy shared by the pipeline and its file collaborators.
// Wrap with fmt.Errorf("...: %w", ErrX) and test with errors.Is.
var (
	ErrInvalidDimension   = errors.New("invalid dimension")
	ErrDecode             = errors.New("cannot decode image")
	ErrEmptyPalette       = errors.New("empty palette")
	ErrMalformedTextBlock = errors.New("malformed text block")
	ErrMissingGlyph       = errors.New("glyph missing from font")
	ErrIO                 = errors.New("i/o failure")
)
