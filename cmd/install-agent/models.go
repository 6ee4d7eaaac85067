package main

import (
	"fmt"

	"github.com/bluebird3624/install-agent/internal/storage"
	"github.com/spf13/cobra"
)

func getModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models available on the Ollama server",
		RunE:  runModels,
	}
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg := storage.GetConfig()

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	if err := provider.Ping(cmd.Context()); err != nil {
		return fmt.Errorf("Ollama server not reachable at %s: %w", cfg.AI.BaseURL, err)
	}

	models, err := provider.ListModels(cmd.Context())
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Printf("No models installed. Pull one with: ollama pull %s\n", cfg.AI.Model)
		return nil
	}

	for _, name := range models {
		marker := "  "
		if name == cfg.AI.Model {
			// Configured default
			marker = "* "
		}
		fmt.Println(marker + name)
	}
	return nil
}
