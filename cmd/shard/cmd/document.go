package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/shard/pkg/config"
	"github.com/go-drift/shard/pkg/shadow"
	"github.com/go-drift/shard/pkg/shard"
	"github.com/hashicorp/go-hclog"
)

// readDocument parses path as YAML when its extension says so and as JSON
// otherwise.
func readDocument(path string) (*shard.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var doc *shard.Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		doc, err = shard.ParseYAML(data)
	default:
		doc, err = shard.ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// engineConfig resolves shard.yaml from the document's directory.
func engineConfig(path string, images bool) (*shadow.Config, hclog.Logger, error) {
	resolved, err := config.Resolve(filepath.Dir(path))
	if err != nil {
		return nil, nil, err
	}
	if !images {
		resolved.ImagesDisabled = true
	}
	logger := resolved.Logger()
	resolved.InstallErrorHandler(logger)
	cfg, err := resolved.ShadowConfig(logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
