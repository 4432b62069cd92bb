package dwt

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// entropyCompress applies Deflate to the serialized coefficient stream.
// It is the only stage that reduces the stream below its raw byte count;
// quantization and serialization only reshape and discretize.
func entropyCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, fmt.Errorf("entropy encode: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("entropy encode: %w", err)
	}
	return buf.Bytes(), nil
}

// entropyDecompress reverses entropyCompress byte-for-byte.
func entropyDecompress(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("entropy decode: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("entropy decode: %w", err)
	}
	return out, nil
}
