package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"asciify/internal/appinfo"
	"asciify/internal/config"
	"asciify/internal/imageio"
	"asciify/pkg/asciiart"
	"asciify/pkg/logger"
	"asciify/pkg/raster"
	"asciify/pkg/utils"
)

var timeNow = time.Now

type summary struct {
	Input     string
	Format    string
	Source    string
	Grid      string
	Raster    string
	Output    string
	TextFile  string
	Elapsed   time.Duration
	InputSize int64
}

func run(cfg *config.Config, input string, stdout io.Writer) error {
	logger.SetQuiet(cfg.App.Quiet)
	logger.SetVerbose(cfg.App.Verbose)

	if cfg.App.StartMessage && !cfg.App.Quiet {
		printBanner(stdout)
	}

	p, closeFace, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer closeFace()

	src, err := imageio.Open(input, cfg.MaxFileBytes())
	if err != nil {
		return err
	}
	b := src.Image.Bounds()
	logger.LogInfo("Loaded %s (%s, %dx%d, %s)", input, src.Format, b.Dx(), b.Dy(), utils.FormatBytes(src.Size))

	res, err := p.Convert(src.Image)
	if err != nil {
		return err
	}

	out := imageio.OutputPath(input, cfg.Output.Root, res.Width, res.Height)
	if err := imageio.WriteImage(out, res.Raster); err != nil {
		return err
	}
	logger.LogSuccess("Wrote %s", out)

	s := summary{
		Input:     input,
		Format:    src.Format,
		Source:    fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		Grid:      fmt.Sprintf("%d x %d", res.Width, res.Height),
		Raster:    fmt.Sprintf("%dx%d", res.Raster.Rect.Dx(), res.Raster.Rect.Dy()),
		Output:    out,
		InputSize: src.Size,
	}

	if cfg.Output.Text {
		s.TextFile = imageio.TextPath(out)
		if err := imageio.WriteText(s.TextFile, res.Text.String()); err != nil {
			return err
		}
		logger.LogSuccess("Wrote %s", s.TextFile)
	}

	if cfg.Output.Print {
		fmt.Fprint(stdout, res.Text.String())
	}

	s.Elapsed = appinfo.Elapsed()
	if !cfg.App.Quiet {
		printSummary(stdout, s)
	}
	return nil
}

func buildPipeline(cfg *config.Config) (*asciiart.Pipeline, func(), error) {
	cell := cfg.Cell()

	palette, err := asciiart.ParsePalette(cfg.Render.Palette)
	if err != nil {
		return nil, nil, err
	}
	filter, err := asciiart.ParseFilter(cfg.Render.Filter)
	if err != nil {
		return nil, nil, err
	}
	face, err := raster.LoadFace(cfg.Render.Font, cell.Width, cell.Height)
	if err != nil {
		return nil, nil, err
	}
	closeFace := func() { face.Close() }

	p, err := asciiart.New(
		asciiart.WithPalette(palette),
		asciiart.WithCell(cell),
		asciiart.WithColumns(cfg.Render.Columns),
		asciiart.WithFilter(filter),
		asciiart.WithFace(face),
		asciiart.WithLogger(logger.Std{}),
	)
	if err != nil {
		closeFace()
		return nil, nil, err
	}
	logger.LogDebug("Pipeline: %d columns, cell %dx%d, font %s, filter %s, palette %q",
		cfg.Render.Columns, cell.Width, cell.Height, cfg.Render.Font, cfg.Render.Filter, palette.String())
	return p, closeFace, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printSummary(w io.Writer, s summary) {
	if !isTerminal(w) {
		logger.LogInfo("Done in %v: %s grid -> %s (%s)", s.Elapsed, s.Grid, s.Output, s.Raster)
		return
	}

	data := pterm.TableData{
		{"Input", pterm.FgCyan.Sprint(s.Input)},
		{"Format", fmt.Sprintf("%s, %s, %s", s.Format, s.Source, utils.FormatBytes(s.InputSize))},
		{"Grid", s.Grid},
		{"Raster", s.Raster},
		{"Output", pterm.FgGreen.Sprint(s.Output)},
	}
	if s.TextFile != "" {
		data = append(data, []string{"Text", pterm.FgGreen.Sprint(s.TextFile)})
	}
	data = append(data, []string{"Elapsed", s.Elapsed.String()})

	pterm.Println()
	if err := pterm.DefaultTable.WithBoxed().WithData(data).WithWriter(w).Render(); err != nil {
		logger.LogWarn("Could not render summary: %v", err)
	}
	pterm.Println()
}
