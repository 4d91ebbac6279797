package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/shard/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "kinds",
		Short: "List the node kinds documents may use",
		Long: `Print every node kind registered with the engine, one per line.`,
		Usage: "shard kinds",
		Run:   runKinds,
	})
}

func runKinds(args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	resolved, err := config.Resolve(dir)
	if err != nil {
		return err
	}
	resolved.ImagesDisabled = true
	cfg, err := resolved.ShadowConfig(resolved.Logger())
	if err != nil {
		return err
	}
	for _, kind := range cfg.Kinds() {
		fmt.Fprintln(stdout, kind)
	}
	return nil
}
