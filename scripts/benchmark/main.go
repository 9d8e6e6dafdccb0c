// Command benchmark measures conversion throughput on synthetic images.
//
//	go run ./scripts/benchmark --images 200 --size 1280x720 --workers 8
package main

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"asciify/internal/imageio"
	"asciify/pkg/asciiart"
	"asciify/pkg/raster"
)

type benchConfig struct {
	Images  int
	Width   int
	Height  int
	Workers int
	Columns int
	Font    string
	Filter  string
}

type stats struct {
	Success   uint64
	Failed    uint64
	Latencies []time.Duration
	Errors    map[string]int
	mu        sync.Mutex
}

func (s *stats) record(d time.Duration, err error) {
	s.mu.Lock()
	s.Latencies = append(s.Latencies, d)
	if err != nil {
		s.Errors[err.Error()]++
	}
	s.mu.Unlock()

	if err != nil {
		atomic.AddUint64(&s.Failed, 1)
	} else {
		atomic.AddUint64(&s.Success, 1)
	}
}

func (c benchConfig) validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("--workers must be at least 1, got %d", c.Workers)
	case c.Images < 1:
		return fmt.Errorf("--images must be at least 1, got %d", c.Images)
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("--size must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}

func main() {
	var cfg benchConfig
	var size string

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Measure decode + convert throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := fmt.Sscanf(size, "%dx%d", &cfg.Width, &cfg.Height); err != nil {
				return fmt.Errorf("invalid --size %q: %w", size, err)
			}
			if err := cfg.validate(); err != nil {
				return err
			}
			return runBenchmark(cfg)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&cfg.Images, "images", "n", 100, "Number of images to convert")
	f.StringVar(&size, "size", "800x600", "Synthetic image size")
	f.IntVarP(&cfg.Workers, "workers", "w", runtime.NumCPU(), "Concurrent conversions")
	f.IntVarP(&cfg.Columns, "columns", "c", asciiart.DefaultColumns, "Characters per row")
	f.StringVar(&cfg.Font, "font", raster.FaceBasic, `"basic", "mono" or a font path`)
	f.StringVar(&cfg.Filter, "filter", asciiart.DefaultFilter, "Resampling filter")

	if err := cmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func runBenchmark(cfg benchConfig) error {
	pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("ASCII", pterm.NewStyle(pterm.FgCyan)),
		pterm.NewLettersFromStringWithStyle("BENCH", pterm.NewStyle(pterm.FgMagenta)),
	).Render()

	filter, err := asciiart.ParseFilter(cfg.Filter)
	if err != nil {
		return err
	}
	cell := asciiart.DefaultCell
	face, err := raster.LoadFace(cfg.Font, cell.Width, cell.Height)
	if err != nil {
		return err
	}
	defer face.Close()

	// One pipeline is shared by every worker.
	p, err := asciiart.New(
		asciiart.WithColumns(cfg.Columns),
		asciiart.WithFilter(filter),
		asciiart.WithFace(face),
	)
	if err != nil {
		return err
	}

	input, err := createDummyImage(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	pterm.Info.Printf("Images: %d | Size: %dx%d (%d bytes JPEG) | Workers: %d | Columns: %d\n",
		cfg.Images, cfg.Width, cfg.Height, len(input), cfg.Workers, cfg.Columns)

	bar, err := pterm.DefaultProgressbar.WithTotal(cfg.Images).WithTitle("Converting").WithRemoveWhenDone(true).Start()
	if err != nil {
		return fmt.Errorf("start progress bar: %w", err)
	}

	s := &stats{
		Latencies: make([]time.Duration, 0, cfg.Images),
		Errors:    make(map[string]int),
	}

	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	start := time.Now()

	for i := 0; i < cfg.Images; i++ {
		g.Go(func() error {
			t0 := time.Now()
			err := convert(p, input)
			s.record(time.Since(t0), err)
			bar.Increment()
			return nil
		})
	}

	g.Wait()
	printReport(s, time.Since(start), cfg.Images)
	return nil
}

func convert(p *asciiart.Pipeline, data []byte) error {
	src, err := imageio.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	_, err = p.Convert(src.Image)
	return err
}

func createDummyImage(w, h int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	// Horizontal gradient with noise so every palette bucket gets used.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			v := uint8(x*255/w) ^ uint8(rand.Intn(32))
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 255
		}
	}
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func printReport(s *stats, total time.Duration, count int) {
	if len(s.Latencies) == 0 {
		return
	}

	sort.Slice(s.Latencies, func(i, j int) bool { return s.Latencies[i] < s.Latencies[j] })
	n := len(s.Latencies)

	data := [][]string{
		{"Metric", "Value"},
		{"Throughput", fmt.Sprintf("%.2f img/sec", float64(count)/total.Seconds())},
		{"Success Rate", fmt.Sprintf("%.2f%%", float64(atomic.LoadUint64(&s.Success))/float64(count)*100)},
		{"P50 Latency", s.Latencies[n/2].String()},
		{"P95 Latency", s.Latencies[int(float64(n)*0.95)].String()},
		{"P99 Latency", s.Latencies[int(float64(n)*0.99)].String()},
		{"Total", total.Round(time.Millisecond).String()},
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()

	if atomic.LoadUint64(&s.Failed) > 0 {
		pterm.Warning.Println("Failures:")
		for msg, cnt := range s.Errors {
			fmt.Printf("%4d  %s\n", cnt, msg)
		}
	}
}
