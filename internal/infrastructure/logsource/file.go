package logsource

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/phonecompany/telebill/internal/domain/errors"
)

// FileSource loads raw call logs from the local filesystem. The whole file is
// read as UTF-8 and trimmed of outer whitespace; charset handling and path
// resolution stay here so the billing core never touches the filesystem.
type FileSource struct{}

// NewFileSource creates a filesystem-backed log source
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Read returns the trimmed contents of the call log at path
func (s *FileSource) Read(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.ErrInvalidFilePath
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewInternalError(fmt.Sprintf("reading call log %s", path)).WithCause(err)
	}

	return strings.TrimSpace(string(data)), nil
}
