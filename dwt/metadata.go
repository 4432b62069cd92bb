package dwt

import (
	"encoding/json"
	"fmt"

	"github.com/cocosip/go-wavelet-codec/codec"
	"github.com/cocosip/go-wavelet-codec/raster"
)

// Metadata is the record produced once per encode and consumed, never
// mutated, by decode. It is the only thing besides the compressed stream a
// decoder needs, and it round-trips through JSON so the two can cross process
// boundaries independently.
type Metadata struct {
	// Wavelet is the identifier accepted by the transform registry.
	Wavelet string `json:"wavelet"`

	// Level is the number of detail levels present in the stream.
	Level int `json:"level"`

	// QuantizationStep is the positive divisor used by the quantizer.
	QuantizationStep float64 `json:"quantization_step"`

	// OriginalShape is the raster shape before decomposition, height first.
	OriginalShape [2]int `json:"original_shape"`

	// OriginalType is the element type the reconstruction is cast to.
	OriginalType raster.ElemType `json:"original_element_type"`

	// SubbandShapes delimits the flat byte stream, in traversal order:
	// approximation, then each level's H, V, D triple, coarsest level first.
	SubbandShapes [][2]int `json:"subband_shapes"`

	// QuantizedType determines the per-element byte width during deserialize.
	QuantizedType QuantType `json:"quantized_element_type"`
}

// Validate checks the record for decode. A zero-valued required field is a
// distinct missing-field failure naming the field; there is never a default
// to substitute. Present-but-inconsistent values are invalid parameters.
func (m *Metadata) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: metadata record", codec.ErrMissingField)
	}
	if m.Wavelet == "" {
		return fmt.Errorf("%w: wavelet", codec.ErrMissingField)
	}
	if m.Level == 0 {
		return fmt.Errorf("%w: level", codec.ErrMissingField)
	}
	if m.Level < 0 {
		return fmt.Errorf("%w: level %d", codec.ErrInvalidParameter, m.Level)
	}
	if m.QuantizationStep == 0 {
		return fmt.Errorf("%w: quantization_step", codec.ErrMissingField)
	}
	if m.QuantizationStep < 0 {
		return fmt.Errorf("%w: quantization_step %v", codec.ErrInvalidParameter, m.QuantizationStep)
	}
	if m.OriginalShape[0] == 0 || m.OriginalShape[1] == 0 {
		return fmt.Errorf("%w: original_shape", codec.ErrMissingField)
	}
	if m.OriginalShape[0] < 0 || m.OriginalShape[1] < 0 {
		return fmt.Errorf("%w: original_shape %v", codec.ErrInvalidParameter, m.OriginalShape)
	}
	if m.OriginalType == "" {
		return fmt.Errorf("%w: original_element_type", codec.ErrMissingField)
	}
	if !m.OriginalType.Valid() {
		return fmt.Errorf("%w: original_element_type %q", codec.ErrInvalidParameter, m.OriginalType)
	}
	if len(m.SubbandShapes) == 0 {
		return fmt.Errorf("%w: subband_shapes", codec.ErrMissingField)
	}
	if len(m.SubbandShapes) != 1+3*m.Level {
		return fmt.Errorf("%w: %d subband shapes for level %d, want %d",
			codec.ErrInvalidParameter, len(m.SubbandShapes), m.Level, 1+3*m.Level)
	}
	if m.QuantizedType == "" {
		return fmt.Errorf("%w: quantized_element_type", codec.ErrMissingField)
	}
	if !m.QuantizedType.Valid() {
		return fmt.Errorf("%w: quantized_element_type %q", codec.ErrInvalidParameter, m.QuantizedType)
	}
	return nil
}

// SerializedBytes returns the exact decompressed stream length the shape list
// accounts for.
func (m *Metadata) SerializedBytes() int {
	width := m.QuantizedType.Size()
	total := 0
	for _, s := range m.SubbandShapes {
		total += s[0] * s[1] * width
	}
	return total
}

// JSON marshals the record for transport next to the compressed stream.
func (m *Metadata) JSON() ([]byte, error) {
	out, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return out, nil
}

// ParseMetadata unmarshals a record previously produced by JSON and validates
// it, so absent document fields surface as missing-field failures.
func ParseMetadata(data []byte) (*Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
