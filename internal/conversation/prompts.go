package conversation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSystemPrompt frames every request sent to the model.
const DefaultSystemPrompt = `You are an expert IT professional assistant. Your role is to help users with any technical requests while maintaining the highest standards of professionalism, security, and problem-solving expertise.

When providing solutions:
1. Analyze the request carefully and determine if it's actionable
2. Ask for specific information if needed
3. Provide step-by-step solutions with clear explanations
4. For executable commands, wrap them in ` + "```bash or ```shell" + ` code blocks
5. Explain what each command does and why it's needed
6. Mention any risks or side effects
7. Provide verification steps after execution

Always prioritize system stability and security. Be thorough, professional, and educational in your responses.`

// EnsureSystemPrompt returns the system prompt from the given file,
// writing the default there first if no file exists yet. Editing the
// file changes the assistant's persona without a rebuild.
func EnsureSystemPrompt(path string) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", fmt.Errorf("failed to create prompts directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(DefaultSystemPrompt), 0644); err != nil {
			return "", fmt.Errorf("failed to create default prompt: %w", err)
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt: %w", err)
	}

	prompt := strings.TrimSpace(string(content))
	if prompt == "" {
		return DefaultSystemPrompt, nil
	}
	return prompt, nil
}
