package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/bluebird3624/install-agent/internal/ai"
	"github.com/bluebird3624/install-agent/internal/conversation"
	"github.com/bluebird3624/install-agent/internal/core/parser"
	"github.com/bluebird3624/install-agent/internal/core/security"
	"github.com/bluebird3624/install-agent/internal/terminal"
)

// ConsentGate asks the user to approve a privileged command.
type ConsentGate interface {
	RequestConsent(command, purpose, risks string) terminal.Decision
}

// Runner executes one shell command and reports how it went.
type Runner interface {
	Execute(ctx context.Context, command string) *Outcome
}

// Shown to the user when a privileged command asks for consent.
const (
	privilegedPurpose = "Install or modify system packages"
	privilegedRisks   = "May modify system configuration or install new software"
)

var (
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	foundStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	execStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	okStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Engine drives one user turn end to end: generate a response, pull
// commands out of it, classify each one, negotiate consent, execute,
// and feed failures back to the model for a corrective response.
type Engine struct {
	provider   ai.Provider
	gate       ConsentGate
	runner     Runner
	extractor  *parser.Extractor
	classifier *security.Classifier
	history    *conversation.History
	renderer   *conversation.Renderer
	maxRetries int
	out        io.Writer
}

// EngineConfig carries the engine's collaborators.
type EngineConfig struct {
	Provider   ai.Provider
	Gate       ConsentGate
	Runner     Runner
	Classifier *security.Classifier
	History    *conversation.History
	Renderer   *conversation.Renderer
	// MaxRetries caps how many times a failing turn may go back to the
	// model for a fix.
	MaxRetries int
	Out        io.Writer
}

// NewEngine creates an engine.
func NewEngine(cfg EngineConfig) *Engine {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = conversation.NewRenderer(0, true)
	}
	return &Engine{
		provider:   cfg.Provider,
		gate:       cfg.Gate,
		runner:     cfg.Runner,
		extractor:  parser.NewExtractor(),
		classifier: cfg.Classifier,
		history:    cfg.History,
		renderer:   renderer,
		maxRetries: cfg.MaxRetries,
		out:        out,
	}
}

// ProcessTurn handles one user input from generation through execution
// and recovery. It returns the last response shown to the user.
func (e *Engine) ProcessTurn(ctx context.Context, input string) string {
	fmt.Fprintf(e.out, "\n%s Analyzing your request...\n", assistantStyle.Render("Assistant:"))

	response := e.generateResponse(ctx, input)

	fmt.Fprintf(e.out, "\n%s\n%s\n", assistantStyle.Render("Assistant:"), e.renderer.Render(response))

	return e.handleExecution(ctx, response)
}

// generateResponse produces the assistant's answer. Plain installation
// requests are answered locally without the model; a model failure gets
// the static fallback so the turn still produces something useful.
func (e *Engine) generateResponse(ctx context.Context, input string) string {
	e.history.Add("user", input)

	if pkg, ok := MatchInstallRequest(input); ok {
		response := InstallCommands(pkg)
		e.history.Add("assistant", response)
		return response
	}

	response, err := e.provider.Chat(ctx, e.history.ChatMessages())
	if err != nil || response == "" {
		logrus.Warnf("Model backend unavailable: %v", err)
		fallback := FallbackResponse(input)
		e.history.Add("assistant", fallback)
		return fallback
	}

	e.history.Add("assistant", response)
	return response
}

// handleExecution runs the extract, classify, gate, execute cycle on a
// response, feeding the first failure back to the model and starting
// over on the corrected response. The loop stops when a response yields
// no actionable failure, the retry cap is hit, or the model becomes
// unreachable; the last response received always wins.
func (e *Engine) handleExecution(ctx context.Context, response string) string {
	for depth := 0; ; depth++ {
		candidates := e.extractor.Extract(response)
		if len(candidates) == 0 {
			if e.extractor.NeedsUserInput(response) {
				logrus.Debug("Response is asking the user for more information")
			}
			return response
		}

		feedback := ""
		for _, candidate := range candidates {
			command := candidate.Text
			fmt.Fprintf(e.out, "\n%s %s\n", foundStyle.Render("Found command to execute:"), command)

			classification := e.classifier.Classify(command)
			if classification.Forbidden() {
				fmt.Fprintf(e.out, "%s Command blocked for security: %s\n", failStyle.Render("✗"), classification.Reason)
				logrus.Warnf("Blocked forbidden command %q (rule %s)", command, classification.Rule)
				continue
			}

			if classification.Privileged() {
				decision := e.gate.RequestConsent(command, privilegedPurpose, privilegedRisks)
				logrus.Infof("Consent for %q: %s", command, decision)
				if !decision.Granted() {
					fmt.Fprintf(e.out, "%s Permission denied by user\n", warnStyle.Render("⊘"))
					continue
				}
			}

			fmt.Fprintf(e.out, "%s %s\n", execStyle.Render("Executing:"), command)
			outcome := e.runner.Execute(ctx, command)
			feedback = e.reportOutcome(command, outcome)
			if feedback != "" {
				// The model will answer this failure with a fresh
				// response; remaining candidates belong to the old one.
				break
			}
		}

		if feedback == "" {
			return response
		}

		if depth >= e.maxRetries {
			fmt.Fprintf(e.out, "\n%s\n", warnStyle.Render("Retry limit reached; not asking the AI again."))
			return response
		}

		fmt.Fprintf(e.out, "\n%s\n", warnStyle.Render("Command failed. Asking AI for solution..."))
		e.history.Add("user", feedback)

		fix, err := e.provider.Chat(ctx, e.history.ChatMessages())
		if err != nil || fix == "" {
			logrus.Warnf("Model backend unavailable during recovery: %v", err)
			fmt.Fprintf(e.out, "%s\n", warnStyle.Render("AI unavailable; stopping automatic recovery."))
			return response
		}

		fmt.Fprintf(e.out, "\n%s\n%s\n", assistantStyle.Render("AI Analysis:"), e.renderer.Render(fix))
		e.history.Add("assistant", fix)
		response = fix
	}
}

// reportOutcome prints the result of one execution and returns the
// follow-up text for the model, or "" when nothing should go back.
func (e *Engine) reportOutcome(command string, outcome *Outcome) string {
	switch outcome.Status {
	case StatusSpawnError:
		// An environment problem, not a command problem; asking the
		// model for a different command would not help.
		fmt.Fprintf(e.out, "%s %v\n", failStyle.Render("✗"), outcome.Err)
		logrus.Errorf("Spawn failure for %q: %v", command, outcome.Err)
		return ""

	case StatusTimedOut:
		fmt.Fprintf(e.out, "%s %v\n", failStyle.Render("✗"), outcome.Err)
		e.printOutput(outcome)
		errText := outcome.Stderr
		if strings.TrimSpace(errText) == "" {
			errText = outcome.Err.Error()
		}
		return failureFeedback(command, errText)

	default:
		if outcome.Succeeded() {
			fmt.Fprintf(e.out, "%s Command completed successfully\n", okStyle.Render("✓"))
			e.printOutput(outcome)
			return ""
		}

		fmt.Fprintf(e.out, "%s Command failed with code %d\n", failStyle.Render("✗"), outcome.ExitCode)
		e.printOutput(outcome)
		if strings.TrimSpace(outcome.Stderr) != "" {
			return failureFeedback(command, outcome.Stderr)
		}
		return ""
	}
}

func (e *Engine) printOutput(outcome *Outcome) {
	if outcome.Stdout != "" {
		fmt.Fprintf(e.out, "%s\n%s\n", okStyle.Render("Output:"), outcome.Stdout)
	}
	if outcome.Stderr != "" {
		fmt.Fprintf(e.out, "%s\n%s\n", warnStyle.Render("Errors:"), outcome.Stderr)
	}
}

func failureFeedback(command, stderr string) string {
	return fmt.Sprintf("The command '%s' failed with this error:\n%s\nPlease analyze this error and provide a solution or alternative approach.", command, stderr)
}
