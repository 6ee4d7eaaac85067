// Package security classifies shell commands before execution.
//
// Classification is a pure function over two replaceable rule tables:
//
//   - Forbidden patterns (regular expressions, first match wins)
//   - Privileged tokens (substring scan of the lowered command)
//
// A forbidden match always takes precedence over privilege detection,
// and privilege detection deliberately over-flags: a privileged tool
// name appearing anywhere in the command line triggers it. Rule tables
// live in a YAML file so deployments can tighten or relax them without
// rebuilding.
package security
