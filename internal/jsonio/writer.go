package jsonio

import (
	"encoding/json"
	"fmt"
	"os"
)

const (
	tmpExtension = ".tmp"
	filePerm     = 0o600
)

// artifactIndent is the indentation used for report artifacts.
const artifactIndent = "  "

// WriteArtifact marshals v as indented JSON and publishes it at path via a
// temporary file and rename, so a failed run never leaves a partial report.
func WriteArtifact(path string, v any) error {
	data, marshalErr := json.MarshalIndent(v, "", artifactIndent)
	if marshalErr != nil {
		return fmt.Errorf("marshal artifact: %w", marshalErr)
	}

	tmpPath := path + tmpExtension

	writeErr := os.WriteFile(tmpPath, data, filePerm)
	if writeErr != nil {
		return fmt.Errorf("write artifact: %w", writeErr)
	}

	renameErr := os.Rename(tmpPath, path)
	if renameErr != nil {
		os.Remove(tmpPath)

		return fmt.Errorf("publish artifact: %w", renameErr)
	}

	return nil
}
