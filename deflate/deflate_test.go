package deflate

import (
	"errors"
	"testing"

	"github.com/cocosip/go-wavelet-codec/codec"
	"github.com/cocosip/go-wavelet-codec/raster"
)

func testRaster(t *testing.T, h, w int) *raster.Raster {
	t.Helper()
	r := raster.New(h, w, raster.Uint8)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.Set(y, x, float64((x*x+y*13)%256))
		}
	}
	return r
}

func TestCompressRasterValidation(t *testing.T) {
	r := testRaster(t, 8, 8)
	tests := []struct {
		name  string
		run   func() error
	}{
		{"empty raster", func() error { _, _, err := CompressRaster(&raster.Raster{}, 5); return err }},
		{"level zero", func() error { _, _, err := CompressRaster(r, 0); return err }},
		{"level ten", func() error { _, _, err := CompressRaster(r, 10); return err }},
		{"level negative", func() error { _, _, err := CompressRaster(r, -1); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, codec.ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestRoundTripLossless(t *testing.T) {
	r := testRaster(t, 24, 17)

	for _, level := range []int{1, 5, 9} {
		size, stream, err := CompressRaster(r, level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if size != len(stream) || size == 0 {
			t.Errorf("level %d: size = %d, len(stream) = %d", level, size, len(stream))
		}

		rec, err := DecompressRaster(stream)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if rec.Height != r.Height || rec.Width != r.Width {
			t.Fatalf("level %d: got %dx%d, want %dx%d", level, rec.Height, rec.Width, r.Height, r.Width)
		}
		for i := range r.Pix {
			if rec.Pix[i] != r.Pix[i] {
				t.Fatalf("level %d: sample %d = %v, want %v", level, i, rec.Pix[i], r.Pix[i])
			}
		}
	}
}

func TestRoundTripClipsOutOfRange(t *testing.T) {
	r := raster.New(8, 8, raster.Float32)
	for i := range r.Pix {
		r.Pix[i] = 128
	}
	r.Set(0, 0, -40)
	r.Set(0, 1, 300)

	_, stream, err := CompressRaster(r, 6)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := DecompressRaster(stream)
	if err != nil {
		t.Fatal(err)
	}
	if rec.At(0, 0) != 0 || rec.At(0, 1) != 255 {
		t.Errorf("out-of-range samples came back as %v and %v, want 0 and 255", rec.At(0, 0), rec.At(0, 1))
	}
}

func TestDecompressCorruptStream(t *testing.T) {
	if _, err := DecompressRaster([]byte{0x00, 0x01, 0x02, 0x03}); err == nil {
		t.Error("decompressing garbage should fail")
	}
}

func TestStrategy(t *testing.T) {
	r := testRaster(t, 16, 16)
	s := NewStrategy(6)

	if s.Name() != "Deflate (PNG, level=6)" {
		t.Errorf("Name = %q", s.Name())
	}

	res, err := s.Compress(r)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Metadata) != 0 {
		t.Errorf("baseline result carries %d metadata bytes, want none", len(res.Metadata))
	}

	rec, err := s.Reconstruct(res)
	if err != nil {
		t.Fatal(err)
	}
	for i := range r.Pix {
		if rec.Pix[i] != r.Pix[i] {
			t.Fatalf("sample %d = %v, want %v", i, rec.Pix[i], r.Pix[i])
		}
	}
}

func TestFactory(t *testing.T) {
	factory, err := codec.Get("deflate")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := factory(codec.Params{"level": 3}); err != nil {
		t.Errorf("level 3: %v", err)
	}
	if _, err := factory(codec.Params{"level": 0}); !errors.Is(err, codec.ErrInvalidParameter) {
		t.Errorf("level 0: error = %v, want ErrInvalidParameter", err)
	}
	if _, err := factory(codec.Params{}); !errors.Is(err, codec.ErrInvalidParameter) {
		t.Errorf("no level: error = %v, want ErrInvalidParameter", err)
	}
}
