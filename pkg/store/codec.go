package store

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Matrix file layout: a 4-byte magic, uint32 row and column counts, then
// rows*cols little-endian float32 values in row-major order.
const matrixMagic = "PEM1"

const matrixHeaderSize = 4 + 4 + 4

// WriteMatrix serializes a row-major float32 matrix to path, creating parent
// directories as needed and overwriting any existing file. All rows must
// share the same width.
func WriteMatrix(path string, m [][]float32) error {
	cols := 0
	if len(m) > 0 {
		cols = len(m[0])
	}

	buf := make([]byte, matrixHeaderSize, matrixHeaderSize+len(m)*cols*4)
	copy(buf, matrixMagic)
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(m)))
	binary.LittleEndian.PutUint32(buf[8:], uint32(cols))

	for i, row := range m {
		if len(row) != cols {
			return fmt.Errorf("row %d has width %d, want %d", i, len(row), cols)
		}
		for _, f := range row {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating embeddings directory: %w", err)
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("writing embeddings file: %w", err)
	}

	return nil
}

// ReadMatrix deserializes a matrix written by WriteMatrix. Truncated or
// foreign files are rejected before any rows are returned.
func ReadMatrix(path string) ([][]float32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading embeddings file: %w", err)
	}

	if len(data) < matrixHeaderSize || string(data[:4]) != matrixMagic {
		return nil, fmt.Errorf("%s: not an embeddings file", path)
	}

	rows := int(binary.LittleEndian.Uint32(data[4:]))
	cols := int(binary.LittleEndian.Uint32(data[8:]))

	want := matrixHeaderSize + rows*cols*4
	if len(data) != want {
		return nil, fmt.Errorf("%s: embeddings file has %d bytes, want %d", path, len(data), want)
	}

	m := make([][]float32, rows)
	off := matrixHeaderSize
	for i := range m {
		row := make([]float32, cols)
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}
		m[i] = row
	}

	return m, nil
}
