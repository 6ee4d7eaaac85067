package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bluebird3624/install-agent/internal/conversation"
)

// ErrUserExit signals that the user asked to leave the session.
var ErrUserExit = errors.New("user requested exit")

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)

// REPL handles the special commands of the interactive session. The
// main input loop lives in the command layer; anything that is not a
// special command is passed on to the assistant.
type REPL struct {
	history *conversation.History
	store   *conversation.Store
	out     io.Writer
}

// NewREPL creates a REPL writing to stdout.
func NewREPL(history *conversation.History, store *conversation.Store) *REPL {
	return NewREPLWithOutput(history, store, nil)
}

// NewREPLWithOutput creates a REPL with the provided output (for testing).
func NewREPLWithOutput(history *conversation.History, store *conversation.Store, output io.Writer) *REPL {
	if output == nil {
		output = os.Stdout
	}
	return &REPL{history: history, store: store, out: output}
}

// HandleCommand checks the input for a special command and runs it.
// It reports whether the input was handled here; quit and its aliases
// return ErrUserExit.
func (r *REPL) HandleCommand(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "quit", "exit", "q":
		return true, ErrUserExit

	case "help":
		r.DisplayHelp()
		return true, nil

	case "save":
		r.saveHistory()
		return true, nil

	case "clear":
		fmt.Fprint(r.out, "\033[H\033[2J")
		return true, nil

	default:
		return false, nil
	}
}

func (r *REPL) saveHistory() {
	path, err := r.store.Save(r.history)
	if err != nil {
		fmt.Fprintf(r.out, "Failed to save conversation: %v\n", err)
		return
	}
	fmt.Fprintf(r.out, "✓ Conversation saved to %s\n", path)
}

// DisplayHelp prints the built-in help text.
func (r *REPL) DisplayHelp() {
	fmt.Fprintf(r.out, "\n%s\n\n", headerStyle.Render("IT Assistant Commands:"))

	fmt.Fprintf(r.out, "%s\n", labelStyle.Render("Special Commands:"))
	fmt.Fprintln(r.out, "  help     - Show this help message")
	fmt.Fprintln(r.out, "  quit     - Exit the assistant")
	fmt.Fprintln(r.out, "  save     - Save conversation history")
	fmt.Fprintln(r.out, "  clear    - Clear screen")

	fmt.Fprintf(r.out, "\n%s\n", labelStyle.Render("Usage:"))
	fmt.Fprintln(r.out, "  Simply type your IT-related questions or requests in natural language.")
	fmt.Fprintln(r.out, "  The assistant will analyze your request and provide solutions with executable commands.")

	fmt.Fprintf(r.out, "\n%s\n", labelStyle.Render("Examples:"))
	fmt.Fprintln(r.out, "  - \"Check disk space\"")
	fmt.Fprintln(r.out, "  - \"Install htop\"")
	fmt.Fprintln(r.out, "  - \"Install nginx\"")
	fmt.Fprintln(r.out, "  - \"My nginx server won't start\"")
	fmt.Fprintln(r.out, "  - \"Install Docker on Ubuntu\"")
	fmt.Fprintln(r.out, "  - \"Show running processes using high CPU\"")
	fmt.Fprintln(r.out, "  - \"Configure firewall to block port 22\"")

	fmt.Fprintf(r.out, "\n%s\n", labelStyle.Render("Security:"))
	fmt.Fprintln(r.out, "  - Commands requiring privileges will ask for confirmation")
	fmt.Fprintln(r.out, "  - Dangerous commands are blocked automatically")
	fmt.Fprintln(r.out, "  - All interactions are logged for security")
	fmt.Fprintln(r.out)
}
