package cmd

import (
	"fmt"

	"github.com/go-drift/shard/pkg/shadow"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Check documents without laying them out",
		Long: `Parse each document and build its shadow tree, reporting schema errors
and unknown kinds. Nothing is laid out and no images are fetched.

Usage:
  shard validate card.json
  shard validate docs/*.yaml`,
		Usage: "shard validate <file>...",
		Run:   runValidate,
	})
}

func runValidate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("at least one document path is required\n\nUsage: shard validate <file>...")
	}
	failed := 0
	for _, path := range args {
		if err := validateFile(path); err != nil {
			fmt.Fprintf(stdout, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(stdout, "ok   %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
	}
	return nil
}

func validateFile(path string) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	if err := doc.Err(); err != nil {
		return err
	}
	cfg, _, err := engineConfig(path, false)
	if err != nil {
		return err
	}
	_, _, err = shadow.Build(cfg, doc.Root)
	return err
}
