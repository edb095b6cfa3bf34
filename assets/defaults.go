package assets

import (
	_ "embed"
)

// DefaultGuardrailYAML contains the embedded default workspace guard rules.
// byteagent init writes it to security.rules_file when that file is missing.
//
//go:embed defaults/guardrail.yaml
var DefaultGuardrailYAML []byte
