package raster

import "math"

// Canvas accumulates signed coverage for one glyph's bitmap. The
// accumulator is sized w*h+3: the scanline loop always writes two
// adjacent cells (the pixel a crossing falls in, plus the one to its
// right to carry the fractional remainder), and the padding keeps that
// trailing write in bounds even for a crossing in the last column.
type Canvas struct {
	w, h int
	acc  []float32
}

// NewCanvas allocates a coverage accumulator for a glyph whose pixel
// bounding box is w by h.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{w: w, h: h, acc: make([]float32, w*h+3)}
}

// Draw scans every line of a flattened outline into the accumulator,
// after scaling each endpoint by scale (font units to pixels).
func (c *Canvas) Draw(lines []Line, scale float32) {
	for _, l := range lines {
		c.scanLine(l, scale)
	}
}

func (c *Canvas) add(index int, height, midX float32) {
	if index < 0 || index+1 >= len(c.acc) {
		return
	}
	frac := midX - float32(math.Floor(float64(midX)))
	c.acc[index] += height * (1 - frac)
	c.acc[index+1] += height * frac
}

// scanLine walks one edge's grid crossings and deposits a signed coverage
// contribution at each one: height is the vertical extent of the step (its
// sign carries winding direction), and midX is split between the crossed
// pixel and its right neighbor by its fractional part.
func (c *Canvas) scanLine(l Line, scale float32) {
	x0, y0 := l.X0*scale, l.Y0*scale
	x1, y1 := l.X1*scale, l.Y1*scale
	dx, dy := x1-x0, y1-y0
	if dy == 0 {
		return
	}

	sx := float32(1)
	if dx < 0 {
		sx = -1
	}
	sy := float32(1)
	if dy < 0 {
		sy = -1
	}

	var tdx float32
	if dx == 0 {
		tdx = 1 << 20
	} else {
		tdx = 1 / dx
	}
	tdy := 1 / dy
	tdxAbs := float32(math.Abs(float64(tdx)))
	tdyAbs := float32(math.Abs(float64(tdy)))

	firstX := nudge(x0+l.xFirstAdj, l.xStartCeil)
	firstY := nudge(y0+l.yFirstAdj, l.yStartCeil)
	tmx := tdx * (firstX - x0)
	tmy := tdy * (firstY - y0)

	startX := nudge(x0, l.xStartCeil)
	startY := nudge(y0, l.yStartCeil)
	index := int(startX) + int(startY)*c.w
	xIndexInc := int(sx)
	yIndexInc := c.w
	if sy < 0 {
		yIndexInc = -c.w
	}

	x, y := firstX, firstY
	xPrev, yPrev := x0, y0
	for tmx < 1 || tmy < 1 {
		prevIndex := index
		var xNext, yNext float32
		if tmx < tmy {
			yNext = tmx*dy + y0
			xNext = x
			tmx += tdxAbs
			x += sx
			index += xIndexInc
		} else {
			yNext = y
			xNext = tmy*dx + x0
			tmy += tdyAbs
			y += sy
			index += yIndexInc
		}
		c.add(prevIndex, yPrev-yNext, (xPrev+xNext)/2)
		xPrev, yPrev = xNext, yNext
	}

	endX := nudge(x1, l.xEndCeil)
	endY := nudge(y1, l.yEndCeil)
	index = int(endX) + int(endY)*c.w
	c.add(index, yPrev-y1, (xPrev+x1)/2)
}

// Bitmap finalizes the accumulator into an 8-bit grayscale coverage
// bitmap, row-major, w*h bytes. It is a single running prefix sum over the
// whole flat buffer, not one reset per row: a closed contour deposits
// matching positive/negative deltas across however many rows it spans, so
// the sum is already back near zero at the start of the next row without
// an explicit break — the same property that lets this loop vectorize
// (the three-element accumulator padding exists for that reason, even
// though this implementation keeps the scalar form).
func (c *Canvas) Bitmap() []byte {
	n := c.w * c.h
	out := make([]byte, n)
	var acc float32
	for i := 0; i < n; i++ {
		acc += c.acc[i]
		v := acc
		if v < 0 {
			v = -v
		}
		v *= 255.9
		if v > 255 {
			v = 255
		}
		out[i] = byte(v)
	}
	return out
}
