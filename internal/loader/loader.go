// Package loader handles program image loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/machine"
)

// MaxProgramSize is the number of bytes that fit between the program start
// address and the end of memory.
const MaxProgramSize = machine.MemorySize - machine.ProgramStart

// ErrEmptyProgram is returned for program images without any content.
var ErrEmptyProgram = errors.New("program image is empty")

// Loader handles loading program images from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the raw program image from the given file. Program images have
// no header. Images larger than MaxProgramSize are returned in full, the
// interpreter drops the bytes that do not fit into memory.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads the raw program image from the reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading program image: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyProgram
	}
	return data, nil
}
