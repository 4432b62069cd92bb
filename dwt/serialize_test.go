package dwt

import (
	"errors"
	"testing"

	"github.com/cocosip/go-wavelet-codec/codec"
)

func testPyramid(typ QuantType) *quantPyramid {
	seq := func(rows, cols int, start int32) *quantBand {
		b := &quantBand{Rows: rows, Cols: cols, Data: make([]int32, rows*cols)}
		for i := range b.Data {
			b.Data[i] = start + int32(i)
		}
		return b
	}
	return &quantPyramid{
		Type:   typ,
		Approx: seq(2, 3, 100),
		Details: [][3]*quantBand{
			{seq(2, 3, -5), seq(2, 3, 10), seq(2, 3, 0)},
			{seq(4, 5, -50), seq(4, 5, 7), seq(4, 5, 30)},
		},
	}
}

func TestSerializeByteAccounting(t *testing.T) {
	for _, typ := range []QuantType{Int8, Int16, Int32} {
		p := testPyramid(typ)
		data, shapes := serialize(p)

		wantShapes := [][2]int{{2, 3}, {2, 3}, {2, 3}, {2, 3}, {4, 5}, {4, 5}, {4, 5}}
		if len(shapes) != len(wantShapes) {
			t.Fatalf("%s: got %d shapes, want %d", typ, len(shapes), len(wantShapes))
		}
		total := 0
		for i, s := range shapes {
			if s != wantShapes[i] {
				t.Errorf("%s: shape[%d] = %v, want %v", typ, i, s, wantShapes[i])
			}
			total += s[0] * s[1] * typ.Size()
		}
		if len(data) != total {
			t.Errorf("%s: serialized %d bytes, shape list accounts for %d", typ, len(data), total)
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	for _, typ := range []QuantType{Int8, Int16, Int32} {
		p := testPyramid(typ)
		data, shapes := serialize(p)

		got, err := deserialize(data, shapes, typ)
		if err != nil {
			t.Fatalf("%s: deserialize: %v", typ, err)
		}
		want := p.bands()
		for i, b := range got.bands() {
			if b.Rows != want[i].Rows || b.Cols != want[i].Cols {
				t.Fatalf("%s: band %d shape %dx%d, want %dx%d", typ, i, b.Rows, b.Cols, want[i].Rows, want[i].Cols)
			}
			for j, v := range b.Data {
				if v != want[i].Data[j] {
					t.Fatalf("%s: band %d element %d = %d, want %d", typ, i, j, v, want[i].Data[j])
				}
			}
		}
	}
}

// Negative values must survive the trip at every width; Int8 values near the
// boundary are the interesting case.
func TestSerializeSignExtension(t *testing.T) {
	p := &quantPyramid{
		Type:   Int8,
		Approx: &quantBand{Rows: 1, Cols: 4, Data: []int32{-128, -1, 0, 127}},
		Details: [][3]*quantBand{{
			{Rows: 1, Cols: 1, Data: []int32{-2}},
			{Rows: 1, Cols: 1, Data: []int32{3}},
			{Rows: 1, Cols: 1, Data: []int32{-128}},
		}},
	}
	data, shapes := serialize(p)
	got, err := deserialize(data, shapes, Int8)
	if err != nil {
		t.Fatal(err)
	}
	if got.Approx.Data[0] != -128 || got.Approx.Data[1] != -1 || got.Details[0][2].Data[0] != -128 {
		t.Errorf("sign extension broken: %v %v", got.Approx.Data, got.Details[0][2].Data)
	}
}

func TestDeserializeTruncated(t *testing.T) {
	p := testPyramid(Int16)
	data, shapes := serialize(p)

	_, err := deserialize(data[:len(data)-1], shapes, Int16)
	if !errors.Is(err, codec.ErrInsufficientData) {
		t.Errorf("truncated stream: error = %v, want ErrInsufficientData", err)
	}

	_, err = deserialize(nil, shapes, Int16)
	if !errors.Is(err, codec.ErrInsufficientData) {
		t.Errorf("empty stream: error = %v, want ErrInsufficientData", err)
	}
}

func TestDeserializeTrailing(t *testing.T) {
	p := testPyramid(Int16)
	data, shapes := serialize(p)

	_, err := deserialize(append(data, 0xAA), shapes, Int16)
	if !errors.Is(err, codec.ErrTrailingData) {
		t.Errorf("trailing bytes: error = %v, want ErrTrailingData", err)
	}
}

func TestDeserializeBadShapeList(t *testing.T) {
	tests := []struct {
		name   string
		shapes [][2]int
	}{
		{"empty", nil},
		{"no triples", [][2]int{{2, 2}}},
		{"partial triple", [][2]int{{2, 2}, {2, 2}, {2, 2}}},
		{"zero shape", [][2]int{{2, 2}, {0, 2}, {2, 2}, {2, 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := deserialize(nil, tt.shapes, Int16); !errors.Is(err, codec.ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}
