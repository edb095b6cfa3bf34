// Package security implements the workspace guard consulted before any
// mutating command touches a path.
package security

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/byte-agent-go/internal/domain"
	"github.com/doeshing/byte-agent-go/internal/pkg/homedir"
	"github.com/doeshing/byte-agent-go/internal/ports"
)

// Refusal reasons rendered by the dispatcher as "[ERROR] <reason>: <target>".
const (
	ReasonProtected = "Refusing to modify protected path"
	ReasonEscapes   = "Path escapes workspace"
)

// DefaultProtected names entries no command may modify.
var DefaultProtected = []string{".git", ".ssh", ".env"}

// Guardrail implements the SecurityService port.
type Guardrail struct {
	names    []string
	patterns []compiledPattern
}

type compiledPattern struct {
	re   *regexp.Regexp
	rule PathPattern
}

// PathPattern is a regex rule matched against the cleaned, slash-separated
// workspace-relative path.
type PathPattern struct {
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`
}

// RulesFile is the YAML schema root.
type RulesFile struct {
	Rules struct {
		Protected    []string      `yaml:"protected"`
		PathPatterns []PathPattern `yaml:"path_patterns"`
	} `yaml:"rules"`
}

// NewGuardrail combines the protected names with the rules file at rulesPath.
// A missing rules file is not an error. An empty protected list means the
// defaults.
func NewGuardrail(rulesPath string, protected []string) (*Guardrail, error) {
	rules, err := loadRules(rulesPath)
	if err != nil {
		return nil, err
	}
	if len(protected) == 0 {
		protected = DefaultProtected
	}

	g := &Guardrail{}
	for _, name := range append(append([]string{}, protected...), rules.Rules.Protected...) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := path.Match(name, ""); err != nil {
			return nil, fmt.Errorf("invalid protected pattern %q: %w", name, err)
		}
		g.names = append(g.names, name)
	}
	for _, pattern := range rules.Rules.PathPatterns {
		re, err := regexp.Compile(pattern.Pattern)
		if err != nil {
			return nil, err
		}
		g.patterns = append(g.patterns, compiledPattern{re: re, rule: pattern})
	}
	return g, nil
}

// Evaluate implements ports.SecurityService.
func (g *Guardrail) Evaluate(target string) (domain.GuardDecision, error) {
	if g == nil {
		return domain.GuardDecision{}, errors.New("guardrail nil")
	}
	raw := filepath.ToSlash(strings.TrimSpace(target))
	cleaned := path.Clean(raw)
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return domain.GuardDecision{Target: target, Reason: ReasonEscapes, Rule: "workspace"}, nil
	}

	for _, segment := range strings.Split(cleaned, "/") {
		for _, name := range g.names {
			if ok, _ := path.Match(name, segment); ok {
				return domain.GuardDecision{Target: target, Reason: ReasonProtected, Rule: name}, nil
			}
		}
	}
	for _, pattern := range g.patterns {
		if pattern.re.MatchString(cleaned) {
			reason := pattern.rule.Message
			if reason == "" {
				reason = ReasonProtected
			}
			return domain.GuardDecision{Target: target, Reason: reason, Rule: pattern.rule.Pattern}, nil
		}
	}
	return domain.Allow(target), nil
}

// Protected lists the active protected name patterns.
func (g *Guardrail) Protected() []string {
	return append([]string(nil), g.names...)
}

// PatternCount reports how many regex rules were loaded.
func (g *Guardrail) PatternCount() int {
	return len(g.patterns)
}

func loadRules(rulesPath string) (RulesFile, error) {
	var rules RulesFile
	if rulesPath == "" {
		return rules, nil
	}
	data, err := os.ReadFile(homedir.Expand(rulesPath))
	if err != nil {
		if os.IsNotExist(err) {
			return rules, nil
		}
		return RulesFile{}, err
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RulesFile{}, fmt.Errorf("parse rules file: %w", err)
	}
	return rules, nil
}

var _ ports.SecurityService = (*Guardrail)(nil)
