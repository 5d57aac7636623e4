// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/arturict/any2pdf/pkg/types"
)

// manifestFile is the run record written next to the produced PDFs.
const manifestFile = "manifest.yaml"

// WriteManifest records the run outcome as YAML in the output directory.
func WriteManifest(outputDir, sourceDir string, result Result) error {
	m := types.Manifest{
		GeneratedAt: time.Now().UTC(),
		SourceDir:   sourceDir,
		Summary:     result.Summary,
		Documents:   result.Entries,
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(outputDir, manifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", manifestFile, err)
	}
	return nil
}
