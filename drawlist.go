package grid

import "sync"

// Vertex is one corner of a drawn quad.
type Vertex struct {
	Pos      [2]float32
	TexCoord [2]float32
	Color    uint32
}

// DrawCmd is a batch of indices sharing a clip rectangle and texture.
type DrawCmd struct {
	ElemCount    uint32
	ClipRect     [4]float32 // x1, y1, x2, y2
	TextureID    uint32
	VertexOffset uint32
	IndexOffset  uint32
}

// maxCmdVertices keeps per-command vertex indices inside uint16.
const maxCmdVertices = 1<<16 - 4

// drawListPool reuses DrawList buffers between frames. A grid redraws every
// materialized cell each frame, so buffers grow once and then stay.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 4096),
			IdxBuffer: make([]uint16, 0, 6144),
			CmdBuffer: make([]DrawCmd, 0, 16),
			clipStack: make([][4]float32, 0, 8),
		}
	},
}

// AcquireDrawList gets a cleared DrawList from the pool.
// Call ReleaseDrawList when done to return it.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList returns a DrawList to the pool for reuse.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// DrawList accumulates quads for one frame, split into commands whenever the
// clip rectangle or texture changes.
type DrawList struct {
	CmdBuffer []DrawCmd
	VtxBuffer []Vertex
	IdxBuffer []uint16

	clipStack    [][4]float32
	currentClip  [4]float32
	textureID    uint32
	cmdOffset    uint32 // Vertex offset of the open command
	idxCmdOffset uint32 // Index offset of the open command
}

// Clear resets the DrawList, keeping its capacity.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.currentClip = [4]float32{-1e9, -1e9, 1e9, 1e9}
	dl.textureID = 0
	dl.cmdOffset = 0
	dl.idxCmdOffset = 0
}

// PushClipRect restricts subsequent primitives to the rectangle, intersected
// with the current clip.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	dl.clipStack = append(dl.clipStack, dl.currentClip)
	c := dl.currentClip
	dl.currentClip = [4]float32{maxf(x1, c[0]), maxf(y1, c[1]), min(x2, c[2]), min(y2, c[3])}
	dl.splitDraw()
}

// PopClipRect restores the previous clip rectangle.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n > 0 {
		dl.currentClip = dl.clipStack[n-1]
		dl.clipStack = dl.clipStack[:n-1]
		dl.splitDraw()
	}
}

// ClipRect returns the current clip rectangle.
func (dl *DrawList) ClipRect() [4]float32 { return dl.currentClip }

// SetTexture sets the texture for subsequent primitives. 0 is untextured.
func (dl *DrawList) SetTexture(textureID uint32) {
	if dl.textureID != textureID {
		dl.textureID = textureID
		dl.splitDraw()
	}
}

func (dl *DrawList) splitDraw() {
	if len(dl.CmdBuffer) > 0 {
		last := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		last.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.currentClip,
		TextureID:    dl.textureID,
		VertexOffset: uint32(len(dl.VtxBuffer)),
		IndexOffset:  uint32(len(dl.IdxBuffer)),
	})
	dl.cmdOffset = uint32(len(dl.VtxBuffer))
	dl.idxCmdOffset = uint32(len(dl.IdxBuffer))
}

// addQuad appends four vertices and the two triangles joining them.
func (dl *DrawList) addQuad(v0, v1, v2, v3 Vertex) {
	if len(dl.CmdBuffer) == 0 || uint32(len(dl.VtxBuffer))-dl.cmdOffset >= maxCmdVertices {
		dl.splitDraw()
	}
	idx := uint16(uint32(len(dl.VtxBuffer)) - dl.cmdOffset)
	dl.VtxBuffer = append(dl.VtxBuffer, v0, v1, v2, v3)
	dl.IdxBuffer = append(dl.IdxBuffer, idx, idx+1, idx+2, idx, idx+2, idx+3)
}

// AddRect draws a filled rectangle. Fully transparent colors are skipped.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if color&0xFF000000 == 0 || w <= 0 || h <= 0 {
		return
	}
	dl.addQuad(
		Vertex{Pos: [2]float32{x, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y}, Color: color},
		Vertex{Pos: [2]float32{x + w, y + h}, Color: color},
		Vertex{Pos: [2]float32{x, y + h}, Color: color},
	)
}

// AddRectOutline draws a rectangle border inside the given bounds.
func (dl *DrawList) AddRectOutline(x, y, w, h float32, color uint32, thickness float32) {
	if color&0xFF000000 == 0 {
		return
	}
	dl.AddRect(x, y, w, thickness, color)
	dl.AddRect(x, y+h-thickness, w, thickness, color)
	dl.AddRect(x, y+thickness, thickness, h-2*thickness, color)
	dl.AddRect(x+w-thickness, y+thickness, thickness, h-2*thickness, color)
}

// AddHLine draws a horizontal rule.
func (dl *DrawList) AddHLine(x, y, w float32, color uint32) {
	dl.AddRect(x, y, w, 1, color)
}

// AddVLine draws a vertical rule.
func (dl *DrawList) AddVLine(x, y, h float32, color uint32) {
	dl.AddRect(x, y, 1, h, color)
}

// AddText draws ASCII text from the renderer's 16x6 bitmap font atlas of
// 8x8 glyphs. The current texture must be the font atlas.
func (dl *DrawList) AddText(x, y float32, text string, color uint32, charWidth, charHeight float32) {
	if color&0xFF000000 == 0 || len(text) == 0 {
		return
	}
	i := 0
	for _, r := range text {
		ch := asciiFallback(r)
		idx := int(ch - 32)
		col := float32(idx % 16)
		row := float32(idx / 16)
		u0, v0 := col*8/128, row*8/48
		u1, v1 := (col+1)*8/128, (row+1)*8/48

		px := x + float32(i)*charWidth
		dl.addQuad(
			Vertex{Pos: [2]float32{px, y}, TexCoord: [2]float32{u0, v0}, Color: color},
			Vertex{Pos: [2]float32{px + charWidth, y}, TexCoord: [2]float32{u1, v0}, Color: color},
			Vertex{Pos: [2]float32{px + charWidth, y + charHeight}, TexCoord: [2]float32{u1, v1}, Color: color},
			Vertex{Pos: [2]float32{px, y + charHeight}, TexCoord: [2]float32{u0, v1}, Color: color},
		)
		i++
	}
}

// asciiFallback maps runes outside the bitmap font to printable ASCII.
func asciiFallback(r rune) rune {
	if r >= 32 && r < 127 {
		return r
	}
	switch r {
	case '✓', '✔':
		return '+'
	case '✗', '✘':
		return 'x'
	case '—', '–':
		return '-'
	case '★', '☆':
		return '*'
	}
	return '?'
}

// Finalize closes the open command and drops empty ones.
// Must be called after all primitives are added.
func (dl *DrawList) Finalize() {
	if len(dl.CmdBuffer) > 0 {
		last := &dl.CmdBuffer[len(dl.CmdBuffer)-1]
		last.ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxCmdOffset
	}
	filtered := dl.CmdBuffer[:0]
	for _, cmd := range dl.CmdBuffer {
		if cmd.ElemCount > 0 {
			filtered = append(filtered, cmd)
		}
	}
	dl.CmdBuffer = filtered
}
