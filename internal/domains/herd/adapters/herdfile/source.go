// Package herdfile reads herd definitions from XML or YAML documents.
package herdfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/domain"
	"github.com/Apurer/go-gin-yakshop/internal/domains/herd/ports"
)

// Format names a herd document encoding.
type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
)

var _ ports.HerdSource = (*Source)(nil)

// Source loads a herd definition from a file on disk.
type Source struct {
	Path   string
	Format Format
}

// NewSource guesses the format from the file extension; anything that is not
// .yaml or .yml is read as XML.
func NewSource(path string) *Source {
	return &Source{Path: path, Format: FormatFromPath(path)}
}

// FormatFromPath maps a file name to the format it is decoded with.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatXML
	}
}

// Load reads and decodes the herd file.
func (s *Source) Load(ctx context.Context) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || strings.TrimSpace(s.Path) == "" {
		return nil, fmt.Errorf("%w: no path configured", ports.ErrHerdNotFound)
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ports.ErrHerdNotFound, s.Path)
		}
		return nil, fmt.Errorf("read herd file %s: %w", s.Path, err)
	}
	return Decode(bytes.NewReader(raw), s.Format)
}

// Decode parses a herd document in the given format.
func Decode(r io.Reader, format Format) ([]domain.Entry, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(r)
	case FormatXML, "":
		return decodeXML(r)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ports.ErrHerdParse, format)
	}
}

func parseError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ports.ErrHerdParse, fmt.Sprintf(format, args...))
}
