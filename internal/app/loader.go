package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/document"
	"github.com/specialistvlad/gridplan/internal/hcl"
)

// LoaderFor picks the declaration loader for path: HCL for .hcl files and
// directories, the document loader for .json, .yaml and .yml.
func LoaderFor(path string) (config.Loader, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return hcl.NewLoader(), nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".json", ".yaml", ".yml":
		return document.NewLoader(), nil
	default:
		return nil, fmt.Errorf("%w: cannot pick a loader for %q", document.ErrUnsupportedFormat, path)
	}
}
