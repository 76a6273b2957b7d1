package base

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// WriteResult renders v as indented JSON to the UI, or to path on c.Fs when
// path is set.
func (c *Command) WriteResult(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}

	if path == "" {
		c.UI.Output(string(data))
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := c.Fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}
	if err := afero.WriteFile(c.Fs, path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	c.Log.Debug("wrote result", "path", path, "bytes", len(data))
	return nil
}
