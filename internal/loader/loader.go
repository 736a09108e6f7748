package loader

import (
	"fmt"

	"github.com/vvka-141/slurp/internal/codec"
	"github.com/vvka-141/slurp/internal/files/filesystem"
	"github.com/vvka-141/slurp/pkg/slurp"
)

// Loader reads JSON array documents through a filesystem provider.
type Loader struct {
	fs filesystem.FileSystemProvider
}

// NewLoader creates a Loader. A nil provider means the OS filesystem.
func NewLoader(fs filesystem.FileSystemProvider) *Loader {
	if fs == nil {
		fs = filesystem.NewOSFileSystem()
	}
	return &Loader{fs: fs}
}

// Load returns the elements of the JSON array stored at path, in document
// order. An empty array yields an empty, non-nil slice and no error.
// Every error wraps slurp.ErrInput.
func (l *Loader) Load(path string) ([]slurp.Item, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnreadable, path)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	return Parse(data)
}

// Parse decodes a JSON array document held in memory.
func Parse(data []byte) ([]slurp.Item, error) {
	root, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	arr, ok := root.([]any)
	if !ok {
		return nil, fmt.Errorf("%w, got %s", ErrNotArray, describe(root))
	}
	if arr == nil {
		arr = []any{}
	}
	return arr, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		return "number"
	}
}
