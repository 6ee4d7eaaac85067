package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Decision is the outcome of a consent request.
type Decision int

const (
	// Denied means the user refused, or input ended before an answer.
	Denied Decision = iota
	// Approved means the user explicitly said yes.
	Approved
	// AutoApproved means confirmation is disabled and no human was asked.
	AutoApproved
)

// String returns the decision name for logs.
func (d Decision) String() string {
	switch d {
	case Approved:
		return "approved"
	case AutoApproved:
		return "auto-approved"
	default:
		return "denied"
	}
}

// Granted reports whether the command may run.
func (d Decision) Granted() bool {
	return d == Approved || d == AutoApproved
}

var (
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	explainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	autoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

// Explanations shown for the explain answer, keyed by the first word of
// the command.
var explanations = map[string]string{
	"sudo":      "Executes command with administrator privileges",
	"systemctl": "Controls system services (start, stop, restart, enable, disable)",
	"apt":       "Package manager for Debian/Ubuntu systems",
	"yum":       "Package manager for Red Hat based systems",
	"dnf":       "Package manager for newer Red Hat based systems",
	"pacman":    "Package manager for Arch Linux",
	"zypper":    "Package manager for openSUSE",
	"mount":     "Attaches filesystem to directory tree",
	"iptables":  "Configures firewall rules",
	"choco":     "Package manager for Windows",
	"brew":      "Package manager for macOS",
}

// Gate asks the user to approve privileged commands. When confirmation
// is disabled it approves everything without asking, but reports that
// path as AutoApproved so callers can show it was never reviewed.
type Gate struct {
	in      io.Reader
	out     io.Writer
	confirm bool
}

// NewGate returns a Gate reading from stdin and writing to stdout.
func NewGate(requireConfirmation bool) *Gate {
	return NewGateWithIO(requireConfirmation, nil, nil)
}

// NewGateWithIO returns a Gate with provided IO (for testing).
func NewGateWithIO(requireConfirmation bool, input io.Reader, output io.Writer) *Gate {
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stdout
	}
	return &Gate{in: input, out: output, confirm: requireConfirmation}
}

// RequestConsent asks the user whether a privileged command may run.
// The loop accepts yes, no, or explain and repeats until it gets one of
// them; explain prints what the command does and asks again. End of
// input counts as a refusal.
func (g *Gate) RequestConsent(command, purpose, risks string) Decision {
	if !g.confirm {
		fmt.Fprintf(g.out, "\n%s %s\n", autoStyle.Render("⚡ Auto-approved (confirmation disabled):"), command)
		return AutoApproved
	}

	fmt.Fprintf(g.out, "\n%s\n", warnStyle.Render("⚠️  PRIVILEGE ESCALATION REQUIRED"))
	fmt.Fprintf(g.out, "%s %s\n", labelStyle.Render("Command:"), command)

	if purpose != "" {
		fmt.Fprintf(g.out, "%s %s\n", labelStyle.Render("Purpose:"), purpose)
	}
	if risks != "" {
		fmt.Fprintf(g.out, "%s %s\n", labelStyle.Render("Risks:"), risks)
	}

	scanner := bufio.NewScanner(g.in)
	for {
		fmt.Fprintf(g.out, "\n%s ", promptStyle.Render("Proceed? (yes/no/explain):"))
		if !scanner.Scan() {
			break
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "yes", "y":
			return Approved
		case "no", "n":
			return Denied
		case "explain", "e":
			g.explain(command)
		default:
			fmt.Fprintln(g.out, "Please respond with 'yes', 'no', or 'explain'")
		}
	}

	return Denied
}

func (g *Gate) explain(command string) {
	var word string
	if fields := strings.Fields(command); len(fields) > 0 {
		word = fields[0]
	}

	explanation, ok := explanations[word]
	if !ok {
		explanation = "No detailed explanation available"
	}

	fmt.Fprintf(g.out, "\n%s %s\n", explainStyle.Render("Command Explanation:"), explanation)
}
