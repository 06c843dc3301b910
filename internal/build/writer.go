package build

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeArtifact writes one artifact under the output directory, creating
// parent directories as needed.
func writeArtifact(outDir, relPath, content string) error {
	full := filepath.Join(outDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(relPath), err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", relPath, err)
	}
	return nil
}
