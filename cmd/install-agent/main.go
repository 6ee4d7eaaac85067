package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/bluebird3624/install-agent/internal/ai"
	"github.com/bluebird3624/install-agent/internal/ai/ollama"
	"github.com/bluebird3624/install-agent/internal/conversation"
	"github.com/bluebird3624/install-agent/internal/core"
	"github.com/bluebird3624/install-agent/internal/core/security"
	"github.com/bluebird3624/install-agent/internal/logging"
	"github.com/bluebird3624/install-agent/internal/storage"
	"github.com/bluebird3624/install-agent/internal/terminal"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	boldStyle   = lipgloss.NewStyle().Bold(true)
)

var (
	flagModel     string
	flagURL       string
	flagTimeout   int
	flagAITimeout int
	flagLogLevel  string
	flagNoConfirm bool
)

var rootCmd = &cobra.Command{
	Use:   "install-agent",
	Short: "Professional IT assistant with Ollama integration",
	Long: "install-agent - An interactive IT assistant that turns natural-language\n" +
		"requests into shell commands via a local Ollama model, with safety\n" +
		"classification and consent prompts before anything runs",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := storage.InitConfig()
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, cfg)

		logFile, err := cfg.LogFilePath()
		if err != nil {
			return err
		}
		return logging.Setup(cfg.Log.Level, logFile)
	},
	RunE: runSession,
}

// applyFlagOverrides lets explicitly set flags beat the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *storage.Config) {
	if cmd.Flags().Changed("model") {
		cfg.AI.Model = flagModel
	}
	if cmd.Flags().Changed("url") {
		cfg.AI.BaseURL = flagURL
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Executor.Timeout = flagTimeout
	}
	if cmd.Flags().Changed("ai-timeout") {
		cfg.AI.Timeout = flagAITimeout
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if cmd.Flags().Changed("no-confirm") {
		cfg.Security.RequireConfirmation = !flagNoConfirm
	}
}

// buildProvider constructs the configured model backend.
func buildProvider(cfg *storage.Config) (ai.Provider, error) {
	switch cfg.AI.Provider {
	case "ollama":
		return ollama.NewClient(cfg.AI.BaseURL, cfg.AI.Model, time.Duration(cfg.AI.Timeout)*time.Second), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.AI.Provider)
	}
}

// initialize prints the banner and checks that Ollama is reachable.
func initialize(ctx context.Context, provider ai.Provider, model string) bool {
	fmt.Println(bannerStyle.Render("IT Assistant v1.2 - Professional System Administration"))
	fmt.Printf("Platform: %s %s\n", runtime.GOOS, runtime.GOARCH)

	fmt.Print("Testing Ollama connection... ")
	if err := provider.Ping(ctx); err != nil {
		fmt.Println(failStyle.Render("✗ Failed"))
		fmt.Println("Please ensure Ollama is running and accessible.")
		logrus.Errorf("Ollama connection failed: %v", err)
		return false
	}
	fmt.Println(okStyle.Render("✓ Connected"))

	models, err := provider.ListModels(ctx)
	if err == nil && len(models) > 0 {
		fmt.Printf("Available models: %s\n", strings.Join(models, ", "))
		found := false
		for _, name := range models {
			if name == model {
				found = true
				break
			}
		}
		if !found {
			fmt.Println(warnStyle.Render(fmt.Sprintf("Warning: Default model '%s' not found", model)))
		}
	}

	fmt.Printf("Using model: %s\n", boldStyle.Render(model))
	fmt.Println("Type 'help' for commands, 'quit' to exit")
	return true
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg := storage.GetConfig()
	ctx := cmd.Context()

	provider, err := buildProvider(cfg)
	if err != nil {
		return err
	}

	if !initialize(ctx, provider, cfg.AI.Model) {
		return nil
	}

	promptPath, err := storage.SystemPromptPath()
	if err != nil {
		return err
	}
	systemPrompt, err := conversation.EnsureSystemPrompt(promptPath)
	if err != nil {
		return err
	}

	rulesPath, err := cfg.RulesFilePath()
	if err != nil {
		return err
	}
	rules, err := security.EnsureRuleFile(rulesPath)
	if err != nil {
		return err
	}

	convDir, err := storage.ConversationsDir()
	if err != nil {
		return err
	}

	history := conversation.NewHistory(systemPrompt, cfg.Chat.HistoryLimit)
	store := conversation.NewStore(convDir)
	plain := !cfg.Chat.RenderMarkdown || !isTerminal(os.Stdout)

	engine := core.NewEngine(core.EngineConfig{
		Provider:   provider,
		Gate:       terminal.NewGate(cfg.Security.RequireConfirmation),
		Runner:     core.NewExecutor(time.Duration(cfg.Executor.Timeout) * time.Second),
		Classifier: security.NewClassifier(rules),
		History:    history,
		Renderer:   conversation.NewRenderer(80, plain),
		MaxRetries: cfg.AI.MaxRetries,
	})
	repl := terminal.NewREPL(history, store)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n%s ", boldStyle.Render("You:"))
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		handled, err := repl.HandleCommand(input)
		if err != nil {
			if errors.Is(err, terminal.ErrUserExit) {
				break
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if handled {
			continue
		}

		engine.ProcessTurn(ctx, input)
	}

	fmt.Printf("\n%s\n", bannerStyle.Render("Thank you for using IT Assistant!"))
	fmt.Print("Save conversation history? (y/n): ")
	if scanner.Scan() && strings.ToLower(strings.TrimSpace(scanner.Text())) == "y" {
		path, err := store.Save(history)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save conversation: %v\n", err)
		} else {
			fmt.Printf("Conversation saved to %s\n", path)
		}
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "phi", "Ollama model to use")
	rootCmd.PersistentFlags().StringVarP(&flagURL, "url", "u", "http://localhost:11434", "Ollama server URL")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.Flags().IntVarP(&flagTimeout, "timeout", "t", 30, "Command execution timeout in seconds")
	rootCmd.Flags().IntVar(&flagAITimeout, "ai-timeout", 180, "AI response timeout in seconds")
	rootCmd.Flags().BoolVar(&flagNoConfirm, "no-confirm", false, "Skip confirmation for privileged commands")

	rootCmd.AddCommand(getModelsCommand(), getHistoryCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
