package dwt

import (
	"encoding/binary"
	"fmt"

	"github.com/cocosip/go-wavelet-codec/codec"
)

// quantPyramid mirrors wavelet.Pyramid in the quantized integer domain:
// one approximation band plus detail triples ordered coarsest-first.
type quantPyramid struct {
	Approx  *quantBand
	Details [][3]*quantBand
	Type    QuantType
}

// bands returns all subbands in the fixed traversal order: approximation,
// then each level's H, V, D from coarsest to finest. Encode and decode must
// walk this exact order; it is what makes the unprefixed byte stream
// reconstructable from the shape list alone.
func (p *quantPyramid) bands() []*quantBand {
	out := make([]*quantBand, 0, 1+3*len(p.Details))
	out = append(out, p.Approx)
	for _, t := range p.Details {
		out = append(out, t[0], t[1], t[2])
	}
	return out
}

// serialize flattens the pyramid to raw little-endian element bytes in
// row-major order, with no padding or length prefixes between subbands, and
// returns the parallel shape list that delimits them.
func serialize(p *quantPyramid) (data []byte, shapes [][2]int) {
	bands := p.bands()
	shapes = make([][2]int, len(bands))
	total := 0
	for i, b := range bands {
		shapes[i] = [2]int{b.Rows, b.Cols}
		total += len(b.Data)
	}

	width := p.Type.Size()
	data = make([]byte, 0, total*width)
	for _, b := range bands {
		for _, v := range b.Data {
			switch p.Type {
			case Int8:
				data = append(data, byte(int8(v)))
			case Int16:
				data = binary.LittleEndian.AppendUint16(data, uint16(int16(v)))
			case Int32:
				data = binary.LittleEndian.AppendUint32(data, uint32(v))
			}
		}
	}
	return data, shapes
}

// deserialize walks the same traversal order, consuming rows*cols*width bytes
// per subband. A stream shorter than the shape list demands fails with
// ErrInsufficientData; bytes left over after the walk fail with
// ErrTrailingData, since either condition means encoder and decoder disagree
// about layout.
func deserialize(data []byte, shapes [][2]int, typ QuantType) (*quantPyramid, error) {
	if len(shapes) < 4 || (len(shapes)-1)%3 != 0 {
		return nil, fmt.Errorf("%w: shape list has %d entries, want 1+3L", codec.ErrInvalidParameter, len(shapes))
	}
	levels := (len(shapes) - 1) / 3
	width := typ.Size()

	pos := 0
	readBand := func(shape [2]int) (*quantBand, error) {
		rows, cols := shape[0], shape[1]
		if rows <= 0 || cols <= 0 {
			return nil, fmt.Errorf("%w: subband shape %dx%d", codec.ErrInvalidParameter, rows, cols)
		}
		need := rows * cols * width
		if pos+need > len(data) {
			return nil, fmt.Errorf("%w: subband %dx%d needs %d bytes, %d available",
				codec.ErrInsufficientData, rows, cols, need, len(data)-pos)
		}
		b := &quantBand{Rows: rows, Cols: cols, Data: make([]int32, rows*cols)}
		for i := range b.Data {
			off := pos + i*width
			switch typ {
			case Int8:
				b.Data[i] = int32(int8(data[off]))
			case Int16:
				b.Data[i] = int32(int16(binary.LittleEndian.Uint16(data[off:])))
			case Int32:
				b.Data[i] = int32(binary.LittleEndian.Uint32(data[off:]))
			}
		}
		pos += need
		return b, nil
	}

	p := &quantPyramid{Type: typ, Details: make([][3]*quantBand, levels)}
	var err error
	if p.Approx, err = readBand(shapes[0]); err != nil {
		return nil, err
	}
	for l := 0; l < levels; l++ {
		for s := 0; s < 3; s++ {
			if p.Details[l][s], err = readBand(shapes[1+3*l+s]); err != nil {
				return nil, err
			}
		}
	}
	if pos != len(data) {
		return nil, fmt.Errorf("%w: %d bytes beyond the %d the shape list accounts for",
			codec.ErrTrailingData, len(data)-pos, pos)
	}
	return p, nil
}
