package config

type Config struct {
	// App: Console behaviour of the CLI
	App AppConfig `mapstructure:"app"`

	// Render: Conversion parameters handed to the ASCII pipeline
	Render RenderConfig `mapstructure:"render"`

	// Input: Limits applied while reading the source image
	Input InputConfig `mapstructure:"input"`

	// Output: Where and what to write
	Output OutputConfig `mapstructure:"output"`
}

type AppConfig struct {
	// StartMessage: Print the banner before converting
	StartMessage bool `mapstructure:"start_message"`

	// Quiet: Only warnings and errors are logged
	Quiet bool `mapstructure:"quiet"`

	// Verbose: Log per-stage timings
	Verbose bool `mapstructure:"verbose"`
}

type RenderConfig struct {
	// Columns: Characters per row, also the resized pixel width (e.g., 100)
	Columns int `mapstructure:"columns"`

	// Palette: Glyphs from darkest to lightest (e.g., "@#%S?*+;:,.")
	Palette string `mapstructure:"palette"`

	// CellWidth / CellHeight: Pixel footprint of one glyph in the output (6x15)
	CellWidth  int `mapstructure:"cell_width"`
	CellHeight int `mapstructure:"cell_height"`

	// Font: "basic", "mono" or a path to a TTF/OTF file
	Font string `mapstructure:"font"`

	// Filter: Resampling filter (nearest, box, linear, catmullrom, lanczos, ...)
	Filter string `mapstructure:"filter"`
}

type InputConfig struct {
	// MaxFileSize: Largest accepted source file (e.g., "64MB")
	MaxFileSize string `mapstructure:"max_file_size"`
}

type OutputConfig struct {
	// Root: Directory holding the {base}_OUT folder; empty means next to the input
	Root string `mapstructure:"root"`

	// Text: Also write the ASCII text next to the image
	Text bool `mapstructure:"text"`

	// Print: Echo the ASCII text to stdout
	Print bool `mapstructure:"print"`
}
