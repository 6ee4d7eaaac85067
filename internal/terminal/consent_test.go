package terminal

import (
	"strings"
	"testing"
)

func TestGate_YesApproves(t *testing.T) {
	input := strings.NewReader("y\n")
	output := &strings.Builder{}

	gate := NewGateWithIO(true, input, output)
	decision := gate.RequestConsent("sudo apt install curl", "Install or modify system packages", "May modify system configuration")

	if decision != Approved {
		t.Errorf("RequestConsent() = %v, want %v", decision, Approved)
	}

	outputStr := output.String()
	if !strings.Contains(outputStr, "PRIVILEGE ESCALATION REQUIRED") {
		t.Error("Expected escalation banner in output")
	}
	if !strings.Contains(outputStr, "sudo apt install curl") {
		t.Error("Expected command in output")
	}
	if !strings.Contains(outputStr, "Purpose:") || !strings.Contains(outputStr, "Risks:") {
		t.Error("Expected purpose and risks in output")
	}
}

func TestGate_NoDenies(t *testing.T) {
	input := strings.NewReader("no\n")
	output := &strings.Builder{}

	gate := NewGateWithIO(true, input, output)
	decision := gate.RequestConsent("sudo reboot", "", "")

	if decision != Denied {
		t.Errorf("RequestConsent() = %v, want %v", decision, Denied)
	}
}

func TestGate_ExplainThenDecide(t *testing.T) {
	input := strings.NewReader("explain\nno\n")
	output := &strings.Builder{}

	gate := NewGateWithIO(true, input, output)
	decision := gate.RequestConsent("sudo apt update", "", "")

	if decision != Denied {
		t.Errorf("RequestConsent() = %v, want %v", decision, Denied)
	}

	outputStr := output.String()
	if !strings.Contains(outputStr, "Command Explanation:") {
		t.Error("Expected explanation header in output")
	}
	if !strings.Contains(outputStr, "administrator privileges") {
		t.Error("Expected sudo explanation in output")
	}
}

func TestGate_ExplainUnknownCommand(t *testing.T) {
	input := strings.NewReader("e\ny\n")
	output := &strings.Builder{}

	gate := NewGateWithIO(true, input, output)
	decision := gate.RequestConsent("frobnicate --all", "", "")

	if decision != Approved {
		t.Errorf("RequestConsent() = %v, want %v", decision, Approved)
	}
	if !strings.Contains(output.String(), "No detailed explanation available") {
		t.Error("Expected fallback explanation in output")
	}
}

func TestGate_InvalidThenValid(t *testing.T) {
	input := strings.NewReader("maybe\nyes\n")
	output := &strings.Builder{}

	gate := NewGateWithIO(true, input, output)
	decision := gate.RequestConsent("systemctl restart nginx", "", "")

	if decision != Approved {
		t.Errorf("RequestConsent() = %v, want %v after invalid input", decision, Approved)
	}
	if !strings.Contains(output.String(), "Please respond with 'yes', 'no', or 'explain'") {
		t.Error("Expected re-prompt message in output")
	}
}

func TestGate_EndOfInputDenies(t *testing.T) {
	input := strings.NewReader("")
	output := &strings.Builder{}

	gate := NewGateWithIO(true, input, output)
	decision := gate.RequestConsent("sudo ls", "", "")

	if decision != Denied {
		t.Errorf("RequestConsent() = %v, want %v on closed input", decision, Denied)
	}
}

func TestGate_AutoApprove(t *testing.T) {
	input := strings.NewReader("")
	output := &strings.Builder{}

	gate := NewGateWithIO(false, input, output)
	decision := gate.RequestConsent("apt install curl", "", "")

	if decision != AutoApproved {
		t.Errorf("RequestConsent() = %v, want %v", decision, AutoApproved)
	}

	outputStr := output.String()
	if !strings.Contains(outputStr, "Auto-approved") {
		t.Error("Expected auto-approve notice in output")
	}
	if strings.Contains(outputStr, "Proceed?") {
		t.Error("Auto-approve must not prompt the user")
	}
}

func TestGate_CaseInsensitive(t *testing.T) {
	tests := []struct {
		input    string
		expected Decision
	}{
		{"YES\n", Approved},
		{"Yes\n", Approved},
		{"Y\n", Approved},
		{"NO\n", Denied},
		{"N\n", Denied},
	}

	for _, tt := range tests {
		input := strings.NewReader(tt.input)
		output := &strings.Builder{}

		gate := NewGateWithIO(true, input, output)
		decision := gate.RequestConsent("sudo ls", "", "")
		if decision != tt.expected {
			t.Errorf("Input %q: RequestConsent() = %v, want %v", tt.input, decision, tt.expected)
		}
	}
}

func TestDecision_String(t *testing.T) {
	tests := []struct {
		decision Decision
		name     string
		granted  bool
	}{
		{Denied, "denied", false},
		{Approved, "approved", true},
		{AutoApproved, "auto-approved", true},
	}

	for _, tt := range tests {
		if got := tt.decision.String(); got != tt.name {
			t.Errorf("Decision(%d).String() = %q, want %q", tt.decision, got, tt.name)
		}
		if got := tt.decision.Granted(); got != tt.granted {
			t.Errorf("Decision(%d).Granted() = %v, want %v", tt.decision, got, tt.granted)
		}
	}
}
