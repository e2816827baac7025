// Package ppu implements the character cell video chip. It renders the
// 64x32 text framebuffer held in bus memory into an RGBA image using a
// 7x9 bitmap charset and a fixed 16 color palette. The chip has no
// state of its own beyond the output image; every Render() is a full
// repaint from bus memory so the host only needs to call it when the
// framebuffer region is dirty.
package ppu

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/phosphor65/phosphor/memory"
)

const (
	// Columns and Rows define the text grid.
	Columns = 64
	Rows    = 32

	// CharWidth and CharHeight define the glyph cell in pixels.
	CharWidth  = 7
	CharHeight = 9

	// Width and Height are the rendered image dimensions.
	Width  = Columns * CharWidth
	Height = Rows * CharHeight

	kFBUF_START = uint16(0x6010)
)

// Each framebuffer cell is a 16 bit word: low byte character code
// (high bit ignored), bits 8-11 foreground color, bits 12-15
// background color.
var palette = [16]color.NRGBA{
	{0x00, 0x00, 0x00, 0xFF},
	{0x00, 0x00, 0x80, 0xFF},
	{0x00, 0x80, 0x00, 0xFF},
	{0x00, 0x80, 0x80, 0xFF},
	{0x80, 0x00, 0x00, 0xFF},
	{0x80, 0x00, 0x80, 0xFF},
	{0x80, 0x80, 0x00, 0xFF},
	{0x80, 0x80, 0x80, 0xFF},
	{0x40, 0x40, 0x40, 0xFF},
	{0x00, 0x00, 0xFF, 0xFF},
	{0x00, 0xFF, 0x00, 0xFF},
	{0x00, 0xFF, 0xFF, 0xFF},
	{0xFF, 0x00, 0x00, 0xFF},
	{0xFF, 0x00, 0xFF, 0xFF},
	{0xFF, 0xFF, 0x00, 0xFF},
	{0xFF, 0xFF, 0xFF, 0xFF},
}

// FrameFunc receives the completed image after a render.
type FrameFunc func(*image.NRGBA)

// Chip implements the video renderer.
type Chip struct {
	ram       memory.Bank
	chars     [][CharHeight]uint8
	picture   *image.NRGBA
	frameDone FrameFunc
}

// ChipDef defines the pieces needed to set up the video chip.
type ChipDef struct {
	// Ram is the bus the framebuffer words are read through.
	Ram memory.Bank
	// Charset is the raw glyph bitmap data, 9 bytes per glyph, one byte
	// per row with the low bit as the leftmost pixel. 128 glyphs fill
	// the addressable range; shorter sets render missing glyphs blank.
	Charset []uint8
	// FrameDone is an optional callback invoked with the completed
	// image at the end of every Render.
	FrameDone FrameFunc
}

// Init returns a video chip ready to render.
func Init(def *ChipDef) (*Chip, error) {
	if def == nil || def.Ram == nil {
		return nil, fmt.Errorf("ram must be non-nil")
	}
	p := &Chip{
		ram:       def.Ram,
		picture:   image.NewNRGBA(image.Rect(0, 0, Width, Height)),
		frameDone: def.FrameDone,
	}
	// Chop the charset into per glyph rows. A trailing partial glyph is
	// padded with blank lines.
	for off := 0; off < len(def.Charset); off += CharHeight {
		var glyph [CharHeight]uint8
		copy(glyph[:], def.Charset[off:])
		p.chars = append(p.chars, glyph)
	}
	return p, nil
}

// Picture returns the chip's output image. The same backing image is
// reused across renders.
func (p *Chip) Picture() *image.NRGBA {
	return p.picture
}

func (p *Chip) drawChar(x, y int, chr uint8, fg, bg color.NRGBA) {
	idx := int(chr & 0x7F)
	if idx >= len(p.chars) {
		// Outside the loaded charset, paint the cell background only.
		cell := image.Rect(x*CharWidth, y*CharHeight, (x+1)*CharWidth, (y+1)*CharHeight)
		draw.Draw(p.picture, cell, &image.Uniform{bg}, image.Point{}, draw.Src)
		return
	}
	glyph := p.chars[idx]
	lx := x * CharWidth
	ly := y * CharHeight
	for cy := 0; cy < CharHeight; cy++ {
		line := glyph[cy]
		for cx := 0; cx < CharWidth; cx++ {
			c := bg
			if line&(1<<cx) != 0 {
				c = fg
			}
			p.picture.SetNRGBA(lx+cx, ly+cy, c)
		}
	}
}

// Render repaints the whole picture from the framebuffer region and
// invokes FrameDone if one was installed.
func (p *Chip) Render() {
	for y := 0; y < Rows; y++ {
		for x := 0; x < Columns; x++ {
			data := p.ram.ReadAddr(kFBUF_START + uint16(x*2) + uint16(y*Columns*2))
			p.drawChar(x, y, uint8(data), palette[(data>>8)&0xF], palette[data>>12])
		}
	}
	if p.frameDone != nil {
		p.frameDone(p.picture)
	}
}
