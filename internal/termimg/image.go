// Package termimg renders album art into the terminal using the kitty
// graphics protocol.
package termimg

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/dolmen-go/kittyimg"
	"github.com/nfnt/resize"
)

// Image is an encoded terminal image plus the grid space it occupies.
type Image struct {
	Cols int
	Rows int
	Data string
}

// Empty reports whether there is anything to draw.
func (i Image) Empty() bool { return i.Data == "" }

func cropToSquare(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	size := min(h, w)
	x0 := b.Min.X + (w-size)/2
	y0 := b.Min.Y + (h-size)/2
	rect := image.Rect(x0, y0, x0+size, y0+size)
	sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		return img
	}
	return sub.SubImage(rect)
}

// Encode center-crops data to a square, scales it to sizePx and encodes it
// for the terminal. Empty or undecodable input yields a zero Image; callers
// draw a placeholder instead.
func Encode(data []byte, sizePx int) (Image, error) {
	if len(data) == 0 {
		return Image{}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, err
	}
	square := cropToSquare(img)
	if sizePx > 0 {
		square = resize.Resize(uint(sizePx), uint(sizePx), square, resize.Lanczos3)
	}

	var buf bytes.Buffer
	kittyimg.Fprint(&buf, square)

	timg := Image{Data: buf.String()}
	timg.fitToCells(square.Bounds().Dx(), square.Bounds().Dy())
	return timg, nil
}

// fitToCells converts pixel dimensions to terminal grid cells using the
// platform cell geometry; with no geometry available it guesses a common
// 8x16 cell.
func (i *Image) fitToCells(pxW, pxH int) {
	cellW, cellH := cellSize()
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}
	i.Cols = (pxW + cellW - 1) / cellW
	i.Rows = (pxH + cellH - 1) / cellH
}
