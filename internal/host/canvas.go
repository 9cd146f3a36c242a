package host

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/microsims/internal/sketch"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	face          = text.NewGoXFace(sketch.Face)
)

func init() {
	whiteImage.Fill(color.White)
}

// Canvas draws onto an ebiten image with antialiased vector primitives.
type Canvas struct {
	dst *ebiten.Image
}

func (c *Canvas) Fill(col color.Color) { c.dst.Fill(col) }

func (c *Canvas) FillRect(r sketch.Rect, col color.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	vector.DrawFilledRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col, true)
}

func (c *Canvas) StrokeRect(r sketch.Rect, width float64, col color.Color) {
	vector.StrokeRect(c.dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), float32(width), col, true)
}

func (c *Canvas) FillCircle(cx, cy, radius float64, col color.Color) {
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(radius), col, true)
}

func (c *Canvas) StrokeCircle(cx, cy, radius, width float64, col color.Color) {
	vector.StrokeCircle(c.dst, float32(cx), float32(cy), float32(radius), float32(width), col, true)
}

func diamondPath(r sketch.Rect) *vector.Path {
	cx, cy := r.Center()
	var p vector.Path
	p.MoveTo(float32(cx), float32(r.Y))
	p.LineTo(float32(r.Right()), float32(cy))
	p.LineTo(float32(cx), float32(r.Bottom()))
	p.LineTo(float32(r.X), float32(cy))
	p.Close()
	return &p
}

func (c *Canvas) FillDiamond(r sketch.Rect, col color.Color) {
	vs, is := diamondPath(r).AppendVerticesAndIndicesForFilling(nil, nil)
	c.drawTriangles(vs, is, col)
}

func (c *Canvas) StrokeDiamond(r sketch.Rect, width float64, col color.Color) {
	op := &vector.StrokeOptions{Width: float32(width), LineJoin: vector.LineJoinMiter}
	vs, is := diamondPath(r).AppendVerticesAndIndicesForStroke(nil, nil, op)
	c.drawTriangles(vs, is, col)
}

func (c *Canvas) drawTriangles(vs []ebiten.Vertex, is []uint16, col color.Color) {
	r, g, b, a := col.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	c.dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (c *Canvas) Line(x0, y0, x1, y1, width float64, col color.Color) {
	vector.StrokeLine(c.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), col, true)
}

func (c *Canvas) Text(s string, x, y float64, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.dst, s, face, op)
}
