package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/byte-agent-go/assets"
)

func TestGuardrailDefaults(t *testing.T) {
	guardrail, err := NewGuardrail("", nil)
	if err != nil {
		t.Fatalf("NewGuardrail error: %v", err)
	}

	tests := []struct {
		target  string
		allowed bool
		reason  string
	}{
		{"notes.txt", true, ""},
		{"Projects/report.pdf", true, ""},
		{".git", false, ReasonProtected},
		{"repo/.git/config", false, ReasonProtected},
		{".env", false, ReasonProtected},
		{"../outside.txt", false, ReasonEscapes},
		{"a/../../b", false, ReasonEscapes},
		{"/etc/passwd", false, ReasonEscapes},
	}
	for _, tt := range tests {
		result, err := guardrail.Evaluate(tt.target)
		if err != nil {
			t.Fatalf("Evaluate(%q) error: %v", tt.target, err)
		}
		if result.Allowed != tt.allowed || result.Reason != tt.reason {
			t.Fatalf("Evaluate(%q) = %+v", tt.target, result)
		}
	}
}

func TestGuardrailRulesFile(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	rules := `rules:
  protected:
    - "*.key"
  path_patterns:
    - pattern: "^Taxes/"
      message: "Taxes folder is read-only"
`
	if err := os.WriteFile(rulesPath, []byte(rules), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	guardrail, err := NewGuardrail(rulesPath, []string{"secrets"})
	if err != nil {
		t.Fatalf("NewGuardrail error: %v", err)
	}
	if guardrail.PatternCount() != 1 || len(guardrail.Protected()) != 2 {
		t.Fatalf("unexpected rules: %v, %d patterns", guardrail.Protected(), guardrail.PatternCount())
	}

	for target, reason := range map[string]string{
		"secrets/a.txt":  ReasonProtected,
		"id_rsa.key":     ReasonProtected,
		"Taxes/2024.pdf": "Taxes folder is read-only",
	} {
		result, _ := guardrail.Evaluate(target)
		if result.Allowed || result.Reason != reason {
			t.Fatalf("Evaluate(%q) = %+v", target, result)
		}
	}
	if result, _ := guardrail.Evaluate(".git"); !result.Allowed {
		t.Fatalf("explicit protected list should replace the defaults")
	}
}

func TestGuardrailRejectsBadRules(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(rulesPath, []byte("rules:\n  path_patterns:\n    - pattern: \"([\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if _, err := NewGuardrail(rulesPath, nil); err == nil {
		t.Fatalf("expected error for invalid regex")
	}
	if _, err := NewGuardrail(filepath.Join(t.TempDir(), "missing.yaml"), nil); err != nil {
		t.Fatalf("missing rules file should not fail: %v", err)
	}
}

func TestEmbeddedDefaultRules(t *testing.T) {
	rulesPath := filepath.Join(t.TempDir(), "guardrail.yaml")
	if err := os.WriteFile(rulesPath, assets.DefaultGuardrailYAML, 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	g, err := NewGuardrail(rulesPath, nil)
	if err != nil {
		t.Fatalf("NewGuardrail: %v", err)
	}
	if g.PatternCount() != 2 {
		t.Fatalf("pattern count = %d", g.PatternCount())
	}

	cases := map[string]string{
		"keys/id_rsa":      "Refusing to modify SSH key",
		"certs/server.pem": "Refusing to modify key material",
		"home/.gnupg/x":    ReasonProtected,
		"notes/readme.md":  "",
	}
	for target, reason := range cases {
		decision, err := g.Evaluate(target)
		if err != nil {
			t.Fatalf("Evaluate(%s): %v", target, err)
		}
		if reason == "" {
			if !decision.Allowed {
				t.Fatalf("%s should be allowed, got %+v", target, decision)
			}
			continue
		}
		if decision.Allowed || decision.Reason != reason {
			t.Fatalf("%s: got %+v, want reason %q", target, decision, reason)
		}
	}
}
