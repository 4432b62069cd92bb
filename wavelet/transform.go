package wavelet

import (
	"fmt"

	"github.com/cocosip/go-wavelet-codec/raster"
)

// Subband is one coefficient array of a decomposition, row-major.
type Subband struct {
	Rows int
	Cols int
	Data []float64
}

// NewSubband creates a zero-filled subband.
func NewSubband(rows, cols int) *Subband {
	return &Subband{Rows: rows, Cols: cols, Data: make([]float64, rows*cols)}
}

// At returns the coefficient at (y, x).
func (s *Subband) At(y, x int) float64 {
	return s.Data[y*s.Cols+x]
}

// Triple holds the three detail subbands of one decomposition level.
type Triple struct {
	H *Subband // horizontal detail
	V *Subband // vertical detail
	D *Subband // diagonal detail
}

// Bands returns the detail subbands in their fixed traversal order.
func (t Triple) Bands() [3]*Subband {
	return [3]*Subband{t.H, t.V, t.D}
}

// Pyramid is the result of an L-level 2D decomposition: one approximation
// subband plus L detail triples ordered coarsest (level L) to finest
// (level 1). The traversal order approximation, then each triple's H, V, D,
// is the implicit key that pairs the flat byte stream with its shape list.
type Pyramid struct {
	Approx  *Subband
	Details []Triple
}

// Levels returns the number of detail levels.
func (p *Pyramid) Levels() int {
	return len(p.Details)
}

// symAt reads x with half-sample symmetric extension at both boundaries.
func symAt(x []float64, j int) float64 {
	n := len(x)
	for j < 0 || j >= n {
		if j < 0 {
			j = -j - 1
		}
		if j >= n {
			j = 2*n - 1 - j
		}
	}
	return x[j]
}

// downConv convolves x with filt under symmetric extension and keeps every
// second sample, producing floor((n+f-1)/2) coefficients.
func downConv(x, filt []float64) []float64 {
	n := len(x)
	f := len(filt)
	out := make([]float64, (n+f-1)/2)
	for i := range out {
		pos := 2*i + 1
		var acc float64
		for k := 0; k < f; k++ {
			acc += filt[k] * symAt(x, pos-k)
		}
		out[i] = acc
	}
	return out
}

// upConv merges an approximation/detail pair back into a signal of length
// 2n-f+2, the valid center of the full upsampling convolution.
func upConv(lo, hi, recLo, recHi []float64) []float64 {
	n := len(lo)
	f := len(recLo)
	outLen := 2*n - f + 2
	if outLen < 0 {
		outLen = 0
	}
	out := make([]float64, outLen)
	for i := 0; i < n; i++ {
		base := 2*i - (f - 2)
		for k := 0; k < f; k++ {
			j := base + k
			if j >= 0 && j < len(out) {
				out[j] += lo[i]*recLo[k] + hi[i]*recHi[k]
			}
		}
	}
	return out
}

// dwt2 performs one decomposition level: rows first, then columns.
func dwt2(src *Subband, w *Wavelet) (cA, cH, cV, cD *Subband) {
	f := w.FilterLen()
	cw := (src.Cols + f - 1) / 2
	ch := (src.Rows + f - 1) / 2

	// Row pass over the x axis.
	rowLo := NewSubband(src.Rows, cw)
	rowHi := NewSubband(src.Rows, cw)
	for y := 0; y < src.Rows; y++ {
		row := src.Data[y*src.Cols : (y+1)*src.Cols]
		copy(rowLo.Data[y*cw:(y+1)*cw], downConv(row, w.DecLo))
		copy(rowHi.Data[y*cw:(y+1)*cw], downConv(row, w.DecHi))
	}

	// Column pass over the y axis.
	cA = NewSubband(ch, cw)
	cH = NewSubband(ch, cw)
	cV = NewSubband(ch, cw)
	cD = NewSubband(ch, cw)
	col := make([]float64, src.Rows)
	for x := 0; x < cw; x++ {
		for y := 0; y < src.Rows; y++ {
			col[y] = rowLo.At(y, x)
		}
		writeCol(cA, x, downConv(col, w.DecLo))
		writeCol(cH, x, downConv(col, w.DecHi))

		for y := 0; y < src.Rows; y++ {
			col[y] = rowHi.At(y, x)
		}
		writeCol(cV, x, downConv(col, w.DecLo))
		writeCol(cD, x, downConv(col, w.DecHi))
	}
	return cA, cH, cV, cD
}

func writeCol(dst *Subband, x int, col []float64) {
	for y, v := range col {
		dst.Data[y*dst.Cols+x] = v
	}
}

// idwt2 reverses one decomposition level: columns first, then rows.
func idwt2(cA *Subband, t Triple, w *Wavelet) (*Subband, error) {
	f := w.FilterLen()
	rows := 2*cA.Rows - f + 2
	cw := cA.Cols
	if rows < 1 || 2*cw-f+2 < 1 {
		return nil, fmt.Errorf("wavelet: subband %dx%d too small for filter length %d", cA.Rows, cA.Cols, f)
	}

	// Column pass.
	rowLo := NewSubband(rows, cw)
	rowHi := NewSubband(rows, cw)
	lo := make([]float64, cA.Rows)
	hi := make([]float64, cA.Rows)
	for x := 0; x < cw; x++ {
		for y := 0; y < cA.Rows; y++ {
			lo[y] = cA.At(y, x)
			hi[y] = t.H.At(y, x)
		}
		writeCol(rowLo, x, upConv(lo, hi, w.RecLo, w.RecHi))

		for y := 0; y < cA.Rows; y++ {
			lo[y] = t.V.At(y, x)
			hi[y] = t.D.At(y, x)
		}
		writeCol(rowHi, x, upConv(lo, hi, w.RecLo, w.RecHi))
	}

	// Row pass.
	cols := 2*cw - f + 2
	out := NewSubband(rows, cols)
	for y := 0; y < rows; y++ {
		rec := upConv(rowLo.Data[y*cw:(y+1)*cw], rowHi.Data[y*cw:(y+1)*cw], w.RecLo, w.RecHi)
		copy(out.Data[y*cols:(y+1)*cols], rec)
	}
	return out, nil
}

// Forward performs an L-level 2D decomposition of the raster. The input is
// never mutated. Level must be at least 1 and no deeper than MaxLevel for the
// wavelet and the raster's shorter dimension; violations are errors, not
// clamps.
func Forward(r *raster.Raster, w *Wavelet, level int) (*Pyramid, error) {
	if r.Empty() {
		return nil, fmt.Errorf("wavelet: input raster is empty")
	}
	if level < 1 {
		return nil, fmt.Errorf("wavelet: decomposition level must be positive, got %d", level)
	}
	minDim := r.Height
	if r.Width < minDim {
		minDim = r.Width
	}
	if max := MaxLevel(minDim, w.FilterLen()); level > max {
		return nil, fmt.Errorf("wavelet: level %d exceeds maximum %d for %s on a %dx%d raster",
			level, max, w.Name, r.Height, r.Width)
	}

	cur := &Subband{Rows: r.Height, Cols: r.Width, Data: append([]float64(nil), r.Pix...)}
	p := &Pyramid{Details: make([]Triple, level)}
	for l := 0; l < level; l++ {
		cA, cH, cV, cD := dwt2(cur, w)
		// Details are stored coarsest-first; level l of the loop is the
		// (level-l)-th coarsest.
		p.Details[level-1-l] = Triple{H: cH, V: cV, D: cD}
		cur = cA
	}
	p.Approx = cur
	return p, nil
}

// Inverse reconstructs a raster-shaped subband from a pyramid. The level
// count is implicit in the pyramid structure. The result may overshoot the
// originally decomposed shape by one sample per odd dimension; the caller
// crops using the shape it recorded at decomposition time.
func Inverse(p *Pyramid, w *Wavelet) (*Subband, error) {
	if p == nil || p.Approx == nil || len(p.Details) == 0 {
		return nil, fmt.Errorf("wavelet: pyramid has no detail levels")
	}
	a := p.Approx
	for _, t := range p.Details {
		if t.H == nil || t.V == nil || t.D == nil {
			return nil, fmt.Errorf("wavelet: detail triple is incomplete")
		}
		// Reconstruction of the previous level can be one sample larger than
		// the detail subbands recorded for this level; trim to match.
		if a.Rows > t.H.Rows || a.Cols > t.H.Cols {
			a = cropSubband(a, t.H.Rows, t.H.Cols)
		}
		if a.Rows != t.H.Rows || a.Cols != t.H.Cols {
			return nil, fmt.Errorf("wavelet: approximation %dx%d does not match detail %dx%d",
				a.Rows, a.Cols, t.H.Rows, t.H.Cols)
		}
		rec, err := idwt2(a, t, w)
		if err != nil {
			return nil, err
		}
		a = rec
	}
	return a, nil
}

func cropSubband(s *Subband, rows, cols int) *Subband {
	if rows > s.Rows {
		rows = s.Rows
	}
	if cols > s.Cols {
		cols = s.Cols
	}
	out := NewSubband(rows, cols)
	for y := 0; y < rows; y++ {
		copy(out.Data[y*cols:(y+1)*cols], s.Data[y*s.Cols:y*s.Cols+cols])
	}
	return out
}
