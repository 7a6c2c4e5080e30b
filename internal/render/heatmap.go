// Package render draws the comparison maps and forcing plots: PNG
// heatmaps with colorbars, go-chart time-series images, and asciigraph
// terminal previews.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/ctessum/sparse"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	cellSize   = 8
	panelGap   = 10
	marginPx   = 12
	titleH     = 18
	colorbarH  = 14
	tickLabelH = 16
)

// A Panel is one labeled field in a heatmap figure.
type Panel struct {
	Label string
	Data  *sparse.DenseArray
}

// Heatmap renders one or more equally shaped 2-D fields side by side
// with a shared colorbar.
type Heatmap struct {
	Title string
	Cmap  Colormap
	Norm  Norm
}

// Render draws the figure as a PNG. Row 0 of each field is drawn at the
// bottom, matching the y-up map convention.
func (h Heatmap) Render(w io.Writer, panels ...Panel) error {
	if len(panels) == 0 {
		return fmt.Errorf("render: no panels")
	}
	my, mx := panels[0].Data.Shape[0], panels[0].Data.Shape[1]
	for _, p := range panels {
		if p.Data.Shape[0] != my || p.Data.Shape[1] != mx {
			return fmt.Errorf("render: panel %q shape disagrees", p.Label)
		}
	}

	pw := mx * cellSize
	ph := my * cellSize
	width := 2*marginPx + len(panels)*pw + (len(panels)-1)*panelGap
	height := 2*marginPx + titleH + ph + tickLabelH + panelGap + colorbarH + tickLabelH

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	drawLabel(img, marginPx, marginPx+12, h.Title)

	top := marginPx + titleH
	for pi, p := range panels {
		x0 := marginPx + pi*(pw+panelGap)
		for j := 0; j < my; j++ {
			for i := 0; i < mx; i++ {
				c := h.Cmap(h.Norm.Apply(p.Data.Get(j, i)))
				y0 := top + (my-1-j)*cellSize
				for dy := 0; dy < cellSize; dy++ {
					for dx := 0; dx < cellSize; dx++ {
						img.Set(x0+i*cellSize+dx, y0+dy, c)
					}
				}
			}
		}
		drawLabel(img, x0, top+ph+12, p.Label)
	}

	h.drawColorbar(img, marginPx, top+ph+tickLabelH+panelGap, width-2*marginPx)

	return png.Encode(w, img)
}

// RenderFile renders to a file path.
func (h Heatmap) RenderFile(path string, panels ...Panel) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := h.Render(f, panels...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (h Heatmap) drawColorbar(img *image.RGBA, x0, y0, width int) {
	for dx := 0; dx < width; dx++ {
		c := h.Cmap(float64(dx) / float64(width-1))
		for dy := 0; dy < colorbarH; dy++ {
			img.Set(x0+dx, y0+dy, c)
		}
	}

	ticks := h.Norm.Ticks(5)
	for i, v := range ticks {
		label := formatTick(v)
		x := x0 + i*(width-1)/(len(ticks)-1)
		if i == len(ticks)-1 {
			x -= 7 * len(label)
		} else if i > 0 {
			x -= 7 * len(label) / 2
		}
		drawLabel(img, x, y0+colorbarH+12, label)
	}
}

func formatTick(v float64) string {
	av := v
	if av < 0 {
		av = -av
	}
	if av >= 1e4 || (av > 0 && av < 1e-2) {
		return fmt.Sprintf("%.1e", v)
	}
	return fmt.Sprintf("%.3g", v)
}

func drawLabel(img *image.RGBA, x, y int, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.Black,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
