// ABOUTME: YAML rendering of a backup document for human review.
// ABOUTME: Restore only accepts JSON; YAML is an export-only view.
package backup

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ExportYAML renders the backup as YAML. Unlike ExportJSON it does not
// update the last-backup metadata.
func (c *Codec) ExportYAML(ctx context.Context) ([]byte, error) {
	doc, err := c.Export(ctx)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return data, nil
}
