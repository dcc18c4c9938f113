// Package jsonio handles reading instrumentation dumps and writing report
// artifacts. Dumps are plain JSON documents, optionally lz4-compressed.
package jsonio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pierrec/lz4/v4"
)

// ErrNotFound is returned when an input file does not exist.
var ErrNotFound = errors.New("input file not found")

// ErrMalformedInput is returned when an input file is not valid JSON.
var ErrMalformedInput = errors.New("malformed JSON input")

// ErrSchema is returned when a valid JSON document does not have the
// nested shape a consumer requires.
var ErrSchema = errors.New("unexpected document shape")

// lz4Extension marks inputs that are lz4-compressed before decoding.
const lz4Extension = ".lz4"

// ReadDocument reads path and returns its raw JSON bytes. Files ending in
// ".lz4" are decompressed transparently. The content is validated to be
// well-formed JSON; structural expectations are left to the decoders.
func ReadDocument(path string) ([]byte, error) {
	data, readErr := readRaw(path)
	if readErr != nil {
		return nil, readErr
	}

	if !jsoniter.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedInput, path)
	}

	return data, nil
}

func readRaw(path string) ([]byte, error) {
	file, openErr := os.Open(filepath.Clean(path))
	if openErr != nil {
		if os.IsNotExist(openErr) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}

		return nil, fmt.Errorf("open %s: %w", path, openErr)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, lz4Extension) {
		reader = lz4.NewReader(file)
	}

	data, readErr := io.ReadAll(reader)
	if readErr != nil {
		return nil, fmt.Errorf("read %s: %w", path, readErr)
	}

	return data, nil
}
