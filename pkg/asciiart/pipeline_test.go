package asciiart

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/disintegration/imaging"

	"asciify/pkg/raster"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / (w - 1))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func TestNewDefaults(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatal(err)
	}
	o := p.Options()
	if o.Palette.String() != DefaultPaletteString || o.Cell != DefaultCell || o.Columns != DefaultColumns {
		t.Errorf("defaults = %+v", o)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(WithPalette(Palette{})); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("empty palette: err = %v", err)
	}
	if _, err := New(WithColumns(0)); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("zero columns: err = %v", err)
	}
	if _, err := New(WithCell(Cell{Width: 6, Height: -1})); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("bad cell: err = %v", err)
	}
}

func TestNewRejectsGlyphsMissingFromFace(t *testing.T) {
	cases := []string{"█░", "@#é.", "▓"}
	for _, pal := range cases {
		p, err := ParsePalette(pal)
		if err != nil {
			t.Fatal(err)
		}
		_, err = New(WithPalette(p))
		if !errors.Is(err, ErrMissingGlyph) {
			t.Errorf("%q with bitmap face: err = %v, want ErrMissingGlyph", pal, err)
		}
	}

	// Only the offending runes are reported.
	_, err := New(WithPalette(Palette("@█.")))
	if err == nil || !strings.Contains(err.Error(), `"█"`) || strings.Contains(err.Error(), "@") {
		t.Errorf("err = %v, want only the block rune listed", err)
	}
}

func TestNewAcceptsBlockPaletteWithMono(t *testing.T) {
	face, err := raster.LoadFace(raster.FaceMono, DefaultCell.Width, DefaultCell.Height)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	p, err := New(WithPalette(Palette("█▓▒░ ")), WithFace(face))
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Convert(gradient(60, 40))
	if err != nil {
		t.Fatal(err)
	}
	if res.Raster == nil {
		t.Fatal("no raster")
	}
}

func TestConvertShape(t *testing.T) {
	p, err := New(WithColumns(80))
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Convert(gradient(640, 480))
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 80 || res.Height != 25 {
		t.Fatalf("grid = %dx%d, want 80x25", res.Width, res.Height)
	}
	if len(res.Text.Rows) != 25 || res.Text.Columns() != 80 {
		t.Errorf("text = %dx%d", res.Text.Columns(), len(res.Text.Rows))
	}
	if res.Raster.Bounds() != image.Rect(0, 0, 480, 375) {
		t.Errorf("raster = %v", res.Raster.Bounds())
	}
	// Dark on the left, light on the right.
	row := []rune(res.Text.Rows[0])
	if row[0] != '@' || row[len(row)-1] != '.' {
		t.Errorf("row 0 = %q", res.Text.Rows[0])
	}
}

func TestConvertIdempotent(t *testing.T) {
	p, err := New(WithColumns(120), WithFilter(imaging.Lanczos))
	if err != nil {
		t.Fatal(err)
	}
	src := gradient(300, 200)
	a, err := p.Convert(src)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Convert(src)
	if err != nil {
		t.Fatal(err)
	}
	if a.Width != b.Width || a.Height != b.Height {
		t.Errorf("dimensions differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	if a.Text.String() != b.Text.String() {
		t.Error("text blocks differ between runs")
	}
	if !reflect.DeepEqual(a.Raster.Pix, b.Raster.Pix) {
		t.Error("rasters differ between runs")
	}
}

func TestConvertConcurrent(t *testing.T) {
	p, err := New(WithColumns(60))
	if err != nil {
		t.Fatal(err)
	}
	src := gradient(240, 160)
	want, err := p.Convert(src)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Convert(src)
			if err != nil {
				errs <- err
				return
			}
			if !reflect.DeepEqual(got.Raster.Pix, want.Raster.Pix) {
				errs <- errors.New("raster differs from sequential run")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestConvertSolidImages(t *testing.T) {
	p, err := New(WithColumns(10))
	if err != nil {
		t.Fatal(err)
	}
	white, err := p.Convert(solid(100, 100, color.White))
	if err != nil {
		t.Fatal(err)
	}
	black, err := p.Convert(solid(100, 100, color.Black))
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range white.Text.Rows {
		if strings.Trim(row, ".") != "" {
			t.Fatalf("white row = %q", row)
		}
	}
	for _, row := range black.Text.Rows {
		if strings.Trim(row, "@") != "" {
			t.Fatalf("black row = %q", row)
		}
	}
}

func TestConvertZeroHeight(t *testing.T) {
	p, err := New(WithColumns(2))
	if err != nil {
		t.Fatal(err)
	}
	tb, w, h, err := p.Text(solid(2, 2, color.White))
	if err != nil {
		t.Fatal(err)
	}
	if w != 2 || h != 0 || len(tb.Rows) != 0 {
		t.Errorf("Text = %dx%d %q", w, h, tb.String())
	}
	if _, err := p.Convert(solid(2, 2, color.White)); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("Convert err = %v, want ErrInvalidDimension", err)
	}
}

func TestConvertIndependentPipelines(t *testing.T) {
	a, err := New(WithColumns(40), WithPalette(Palette("#.")))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(WithColumns(40), WithCell(Cell{Width: 8, Height: 16}))
	if err != nil {
		t.Fatal(err)
	}
	src := gradient(200, 200)
	ra, err := a.Convert(src)
	if err != nil {
		t.Fatal(err)
	}
	rb, err := b.Convert(src)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Trim(ra.Text.String(), "#.\n") != "" {
		t.Error("pipeline a used glyphs outside its palette")
	}
	// 40 * 1 * 0.5 * 1.0666... = 21.3
	if rb.Height != 21 {
		t.Errorf("pipeline b height = %d, want 21", rb.Height)
	}
	if rb.Raster.Bounds() != image.Rect(0, 0, 320, 336) {
		t.Errorf("pipeline b raster = %v", rb.Raster.Bounds())
	}
}

func TestConvertLogsStages(t *testing.T) {
	l := &recordingLogger{}
	p, err := New(WithColumns(20), WithLogger(l))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Convert(gradient(100, 100)); err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(l.lines, "\n")
	for _, stage := range []string{"resize:", "luminance:", "glyphs:", "raster:"} {
		if !strings.Contains(joined, stage) {
			t.Errorf("missing %q in log:\n%s", stage, joined)
		}
	}
}
