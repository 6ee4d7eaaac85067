package core

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"
)

// installRequest matches "install <pkg>" or "setup <pkg>" at the start
// of the input.
var installRequest = regexp.MustCompile(`^(?:install|setup)\s+([a-zA-Z0-9\-_]+)\b`)

// MatchInstallRequest reports whether the input is a plain installation
// request and returns the package name if so.
func MatchInstallRequest(input string) (string, bool) {
	match := installRequest.FindStringSubmatch(strings.ToLower(input))
	if match == nil {
		return "", false
	}
	return match[1], true
}

// InstallCommands returns installation instructions for the package on
// the current platform.
func InstallCommands(pkg string) string {
	return installCommandsFor(runtime.GOOS, readOSRelease(), pkg)
}

func readOSRelease() string {
	data, err := os.ReadFile("/etc/os-release")
	if err != nil {
		return ""
	}
	return strings.ToLower(string(data))
}

// installCommandsFor picks the package manager from the OS name and, on
// Linux, the lowercased contents of /etc/os-release. An empty osRelease
// means the file could not be read.
func installCommandsFor(goos, osRelease, pkg string) string {
	switch goos {
	case "linux":
		switch {
		case strings.Contains(osRelease, "debian") || strings.Contains(osRelease, "ubuntu"):
			return fmt.Sprintf("To install %s on Debian/Ubuntu-based systems:\n\n"+
				"```bash\nsudo apt update\nsudo apt install %s\n```\n"+
				"These commands update the package lists and install %s.", pkg, pkg, pkg)

		case strings.Contains(osRelease, "centos") || strings.Contains(osRelease, "fedora") || strings.Contains(osRelease, "rhel"):
			return fmt.Sprintf("To install %s on Red Hat-based systems:\n\n"+
				"```bash\nsudo dnf install %s\n```\n"+
				"This command installs %s using the DNF package manager.", pkg, pkg, pkg)

		case strings.Contains(osRelease, "arch"):
			return fmt.Sprintf("To install %s on Arch Linux:\n\n"+
				"```bash\nsudo pacman -S %s\n```\n"+
				"This command installs %s using the pacman package manager.", pkg, pkg, pkg)

		case osRelease == "":
			return fmt.Sprintf("To install %s on Linux (generic):\n\n"+
				"```bash\nsudo yum install %s\n```\n"+
				"This command attempts to install %s using the YUM package manager. "+
				"If this fails, check your distribution's package manager.", pkg, pkg, pkg)

		default:
			return fmt.Sprintf("To install %s on other Linux distributions:\n\n"+
				"```bash\nsudo yum install %s\n```\n"+
				"This command attempts to install %s using the YUM package manager. "+
				"If this fails, check your distribution's package manager.", pkg, pkg, pkg)
		}

	case "darwin":
		return fmt.Sprintf("To install %s on macOS, you need Homebrew installed. "+
			"If you don't have Homebrew, install it first:\n\n"+
			"```bash\n/bin/bash -c \"$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)\"\n```\n"+
			"Then install %s:\n\n"+
			"```bash\nbrew install %s\n```\n"+
			"These commands install Homebrew (if needed) and then %s.", pkg, pkg, pkg, pkg)

	case "windows":
		return fmt.Sprintf("To install %s on Windows, you need Chocolatey installed. "+
			"If you don't have Chocolatey, install it first (requires PowerShell as Administrator):\n\n"+
			"```powershell\nSet-ExecutionPolicy Bypass -Scope Process -Force; "+
			"[System.Net.ServicePointManager]::SecurityProtocol = [System.Net.ServicePointManager]::SecurityProtocol -bor 3072; "+
			"iex ((New-Object System.Net.WebClient).DownloadString('https://community.chocolatey.org/install.ps1'))\n```\n"+
			"Then install %s:\n\n"+
			"```powershell\nchoco install %s\n```\n"+
			"These commands install Chocolatey (if needed) and then %s.", pkg, pkg, pkg, pkg)

	default:
		return fmt.Sprintf("Unsupported operating system for installing %s. "+
			"Please specify the installation method for your system or consult the package documentation.", pkg)
	}
}

// FallbackResponse produces a canned answer when the model cannot be
// reached, routed by keywords in the request.
func FallbackResponse(input string) string {
	lowered := strings.ToLower(input)

	if pkg, ok := MatchInstallRequest(input); ok {
		return InstallCommands(pkg)
	}

	switch {
	case containsAny(lowered, "disk", "space", "storage"):
		return "AI unavailable. Here are basic disk space commands:\n\n" +
			"```bash\ndf -h\n```\n" +
			"Shows disk usage in human-readable format.\n\n" +
			"```bash\ndu -sh /*\n```\n" +
			"Shows directory sizes in root."

	case containsAny(lowered, "process", "cpu", "memory"):
		return "AI unavailable. Here are process monitoring commands:\n\n" +
			"```bash\ntop\n```\n" +
			"Shows running processes and resource usage.\n\n" +
			"```bash\nps aux | head -20\n```\n" +
			"Lists running processes."

	case containsAny(lowered, "network", "connection", "port"):
		return "AI unavailable. Here are network diagnostic commands:\n\n" +
			"```bash\nnetstat -tulpn\n```\n" +
			"Shows listening ports.\n\n" +
			"```bash\nping -c 4 8.8.8.8\n```\n" +
			"Tests internet connectivity."

	default:
		return fmt.Sprintf("AI model is currently unavailable (timeout). \n\n"+
			"You asked: \"%s\"\n\n"+
			"Please try:\n"+
			"1. Using a smaller/faster model (llama2 7B instead of 13B/70B)\n"+
			"2. Restarting Ollama: 'ollama serve'\n"+
			"3. Checking system resources with 'htop'\n"+
			"4. Reducing prompt complexity\n\n"+
			"Type your request again when ready.", input)
	}
}

func containsAny(s string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
