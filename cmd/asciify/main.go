package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"asciify/internal/appinfo"
	"asciify/internal/config"
	"asciify/pkg/asciiart"
	"asciify/pkg/logger"
	"asciify/pkg/raster"
	"asciify/pkg/utils"
)

// Exit codes
const (
	exitFailure = 1
	exitConfig  = 2
	exitDecode  = 3
	exitIO      = 4
)

func main() {
	utils.LoadEnv()

	if err := newRootCmd().Execute(); err != nil {
		logger.LogError("%v", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "asciify [flags] <image>",
		Short:         "Turn an image into ASCII art and render it back to PNG",
		Long:          "asciify resizes an image to a character grid, maps brightness to glyphs\nand draws the glyphs into {base}_OUT/{base}_{w}x{h}_ascii.png.",
		Version:       appinfo.Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			appinfo.StartTime = timeNow()
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cfg, args[0], cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "Config file (default ./asciify.yaml if present)")
	f.IntP("columns", "c", asciiart.DefaultColumns, "Characters per row")
	f.StringP("out-root", "o", "", "Directory for the {base}_OUT folder (default: next to the input)")
	f.String("palette", asciiart.DefaultPaletteString, "Glyphs from darkest to lightest")
	f.Int("cell-width", asciiart.DefaultCellWidth, "Pixel width of one glyph cell")
	f.Int("cell-height", asciiart.DefaultCellHeight, "Pixel height of one glyph cell")
	f.String("font", raster.FaceBasic, `Glyph source: "basic", "mono" or a TTF/OTF path`)
	f.String("filter", asciiart.DefaultFilter, "Resampling filter (nearest, box, linear, catmullrom, mitchellnetravali, lanczos)")
	f.String("max-file-size", "64MB", "Largest accepted input file")
	f.Bool("text", false, "Also write the ASCII text as a .txt next to the image")
	f.Bool("print", false, "Print the ASCII text to stdout")
	f.BoolP("quiet", "q", false, "Only log warnings and errors")
	f.Bool("verbose", false, "Log per-stage timings")
	f.Bool("banner", true, "Print the start banner")

	bindFlags(v, cmd, map[string]string{
		"render.columns":      "columns",
		"render.palette":      "palette",
		"render.cell_width":   "cell-width",
		"render.cell_height":  "cell-height",
		"render.font":         "font",
		"render.filter":       "filter",
		"input.max_file_size": "max-file-size",
		"output.root":         "out-root",
		"output.text":         "text",
		"output.print":        "print",
		"app.quiet":           "quiet",
		"app.verbose":         "verbose",
		"app.start_message":   "banner",
	})

	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			logger.LogFatal("Failed to bind flag --%s: %v", name, err)
		}
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, asciiart.ErrDecode):
		return exitDecode
	case errors.Is(err, asciiart.ErrIO):
		return exitIO
	case errors.Is(err, asciiart.ErrInvalidDimension), errors.Is(err, asciiart.ErrEmptyPalette),
		errors.Is(err, asciiart.ErrMissingGlyph):
		return exitConfig
	}
	return exitFailure
}
