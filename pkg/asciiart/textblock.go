package asciiart

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LineTerminator separates rows and also follows the last row.
const LineTerminator = "\n"

// TextBlock is a grid of glyph rows. Rows built by MapGlyphs always share
// the same rune count.
type TextBlock struct {
	Rows []string
}

// ParseTextBlock reads the String form back: rows split on the terminator,
// with the trailing terminator stripped. Ragged rows are rejected.
func ParseTextBlock(s string) (TextBlock, error) {
	if s == "" {
		return TextBlock{}, nil
	}
	if !strings.HasSuffix(s, LineTerminator) {
		return TextBlock{}, fmt.Errorf("%w: missing trailing line terminator", ErrMalformedTextBlock)
	}
	tb := TextBlock{Rows: strings.Split(strings.TrimSuffix(s, LineTerminator), LineTerminator)}
	if err := tb.Validate(); err != nil {
		return TextBlock{}, err
	}
	return tb, nil
}

// Columns is the rune count of the first row, or zero for an empty block.
func (tb TextBlock) Columns() int {
	if len(tb.Rows) == 0 {
		return 0
	}
	return utf8.RuneCountInString(tb.Rows[0])
}

// Validate checks that every row has the same rune count.
func (tb TextBlock) Validate() error {
	want := tb.Columns()
	for i, row := range tb.Rows {
		if strings.Contains(row, LineTerminator) {
			return fmt.Errorf("%w: row %d contains a line terminator", ErrMalformedTextBlock, i)
		}
		if got := utf8.RuneCountInString(row); got != want {
			return fmt.Errorf("%w: row %d has %d glyphs, want %d", ErrMalformedTextBlock, i, got, want)
		}
	}
	return nil
}

// String joins the rows, each followed by LineTerminator.
func (tb TextBlock) String() string {
	var sb strings.Builder
	for _, row := range tb.Rows {
		sb.WriteString(row)
		sb.WriteString(LineTerminator)
	}
	return sb.String()
}
