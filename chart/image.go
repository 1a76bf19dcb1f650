package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat reads an image format name. Anything but svg renders as PNG.
func ParseFormat(name string) Format {
	if Format(strings.ToLower(name)) == SVG {
		return SVG
	}
	return PNG
}

func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

var ErrDestroyed = errors.New("chart destroyed")

// ImageCanvas renders charts to images. A canvas without a size has no
// drawing context.
type ImageCanvas struct {
	Width  int
	Height int
	Format Format
}

func (c ImageCanvas) NewChart(config Config) (Handle, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, ErrNoContext
	}
	return &Image{width: c.Width, height: c.Height, format: ParseFormat(string(c.Format)), config: config}, nil
}

// Image is a chart rendered on demand with go-chart.
type Image struct {
	width     int
	height    int
	format    Format
	config    Config
	destroyed bool
	updates   int
	lock      sync.Mutex
}

func (img *Image) Update(data Data, mode string) error {
	img.lock.Lock()
	defer img.lock.Unlock()
	if img.destroyed {
		return ErrDestroyed
	}
	img.config.Data = data
	img.updates++
	return nil
}

func (img *Image) Destroy() error {
	img.lock.Lock()
	defer img.lock.Unlock()
	img.destroyed = true
	return nil
}

func (img *Image) Updates() int {
	img.lock.Lock()
	defer img.lock.Unlock()
	return img.updates
}

func toDrawing(c Color) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

func lineColor(label string) drawing.Color {
	for _, l := range Lines {
		if l.Label == label {
			return toDrawing(l.Color)
		}
	}
	return gochart.ColorAlternateGray
}

func (img *Image) chart() gochart.Chart {
	data := img.config.Data
	options := img.config.Options

	xs := make([]float64, len(data.Labels))
	ticks := make([]gochart.Tick, len(data.Labels))
	for i, label := range data.Labels {
		xs[i] = float64(i)
		ticks[i] = gochart.Tick{Value: float64(i), Label: label}
	}

	series := make([]gochart.Series, 0, len(data.Datasets))
	for _, ds := range data.Datasets {
		col := lineColor(ds.Label)
		series = append(series, gochart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs,
			YValues: ds.Data,
			Style: gochart.Style{
				StrokeColor: col,
				StrokeWidth: float64(ds.BorderWidth),
				DotColor:    col,
				DotWidth:    float64(ds.PointRadius),
			},
		})
	}

	yRange := &gochart.ContinuousRange{Min: YMin, Max: YMax}
	if options.Scales.Y.Min != nil && options.Scales.Y.Max != nil {
		yRange = &gochart.ContinuousRange{Min: *options.Scales.Y.Min, Max: *options.Scales.Y.Max}
	}

	ch := gochart.Chart{
		Title:      options.Plugins.Title.Text,
		TitleStyle: gochart.Style{FontSize: float64(options.Plugins.Title.Font.Size)},
		Width:      img.width,
		Height:     img.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 70, Left: 20, Right: 20, Bottom: 90}},
		XAxis: gochart.XAxis{
			Name:      options.Scales.X.Title.Text,
			Ticks:     ticks,
			TickStyle: gochart.Style{TextRotationDegrees: float64(options.Scales.X.Ticks.MaxRotation)},
		},
		YAxis: gochart.YAxis{
			Name:  options.Scales.Y.Title.Text,
			Range: yRange,
		},
		Series: series,
	}
	ch.Elements = []gochart.Renderable{gochart.LegendThin(&ch)}
	return ch
}

// Render writes the current chart to w.
func (img *Image) Render(w io.Writer) error {
	img.lock.Lock()
	defer img.lock.Unlock()
	if img.destroyed {
		return ErrDestroyed
	}
	if len(img.config.Data.Labels) < 2 {
		return fmt.Errorf("render chart: %d ports, need at least 2", len(img.config.Data.Labels))
	}

	provider := gochart.PNG
	if img.format == SVG {
		provider = gochart.SVG
	}
	ch := img.chart()
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// CanvasFunc adapts a function to the Canvas interface.
type CanvasFunc func(config Config) (Handle, error)

func (f CanvasFunc) NewChart(config Config) (Handle, error) {
	return f(config)
}

// WriteImage mounts a chart on canvas, writes it to w and releases it.
func WriteImage(w io.Writer, canvas ImageCanvas, data func() Data) error {
	var img *Image
	r := NewRenderer(CanvasFunc(func(config Config) (Handle, error) {
		h, err := canvas.NewChart(config)
		if err == nil {
			img = h.(*Image)
		}
		return h, err
	}), data)

	if err := r.Mount(); err != nil {
		return err
	}
	defer r.Unmount()

	if img == nil {
		return ErrNoContext
	}
	return img.Render(w)
}
