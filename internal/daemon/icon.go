package daemon

import (
	"bytes"
	"encoding/binary"
)

const iconSize = 16

// weekIcon renders a 16x16 calendar glyph as an ICO file: a blue header
// bar over a white page with a dark border.
func weekIcon() []byte {
	const (
		headerSize  = 6
		entrySize   = 16
		bmpInfoSize = 40
		pixelBytes  = iconSize * iconSize * 4
		maskBytes   = iconSize * 4 // 1 bpp rows padded to 32 bits
	)
	imageSize := bmpInfoSize + pixelBytes + maskBytes

	var buf bytes.Buffer
	le := binary.LittleEndian

	// ICONDIR
	binary.Write(&buf, le, uint16(0)) // reserved
	binary.Write(&buf, le, uint16(1)) // type: icon
	binary.Write(&buf, le, uint16(1)) // image count

	// ICONDIRENTRY
	buf.WriteByte(iconSize)
	buf.WriteByte(iconSize)
	buf.WriteByte(0) // palette
	buf.WriteByte(0) // reserved
	binary.Write(&buf, le, uint16(1))  // planes
	binary.Write(&buf, le, uint16(32)) // bits per pixel
	binary.Write(&buf, le, uint32(imageSize))
	binary.Write(&buf, le, uint32(headerSize+entrySize))

	// BITMAPINFOHEADER, height doubled for the AND mask
	binary.Write(&buf, le, uint32(bmpInfoSize))
	binary.Write(&buf, le, int32(iconSize))
	binary.Write(&buf, le, int32(iconSize*2))
	binary.Write(&buf, le, uint16(1))
	binary.Write(&buf, le, uint16(32))
	binary.Write(&buf, le, uint32(0)) // BI_RGB
	binary.Write(&buf, le, uint32(pixelBytes+maskBytes))
	binary.Write(&buf, le, [4]uint32{})

	// Pixels, bottom row first, BGRA
	for y := iconSize - 1; y >= 0; y-- {
		for x := 0; x < iconSize; x++ {
			buf.Write(iconPixel(x, y))
		}
	}

	// AND mask: fully opaque
	buf.Write(make([]byte, maskBytes))

	return buf.Bytes()
}

func iconPixel(x, y int) []byte {
	switch {
	case x == 0 || y == 0 || x == iconSize-1 || y == iconSize-1:
		return []byte{0x40, 0x40, 0x40, 0xff}
	case y < 5:
		return []byte{0xd0, 0x70, 0x20, 0xff}
	default:
		return []byte{0xff, 0xff, 0xff, 0xff}
	}
}
