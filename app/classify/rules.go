package classify

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Whitelist levels as configured externally.
const (
	LevelNational      = "National"
	LevelInternational = "International"
)

// WhitelistRule recognizes an authoritative competition by pattern and
// carries its administrative level and ranking weight.
type WhitelistRule struct {
	Pattern string `yaml:"pattern"`
	Level   string `yaml:"level"`
	Weight  int    `yaml:"weight"`

	re *regexp.Regexp
}

// Match reports whether the rule's pattern occurs in the text.
func (r *WhitelistRule) Match(text string) bool {
	return r.re != nil && r.re.MatchString(text)
}

// Rules is the externally supplied classification rule list. It is built
// once at startup and passed to the components that consume it; nothing
// mutates it afterwards.
type Rules struct {
	Whitelist       []WhitelistRule `yaml:"whitelist"`
	OfficialDomains []string        `yaml:"official_domains"`
	Aggregators     []string        `yaml:"aggregators"`
}

// LoadRules reads and compiles the rule list. A missing file yields an
// empty rule set, mirroring a deployment that has not configured one.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Rules{}, nil
		}
		return Rules{}, fmt.Errorf("failed to read rules: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules: %w", err)
	}

	for i := range rules.Whitelist {
		rule := &rules.Whitelist[i]
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return Rules{}, fmt.Errorf("invalid whitelist pattern %q: %w", rule.Pattern, err)
		}
		rule.re = re
	}

	return rules, nil
}

// CompileRules builds a rule set directly from values, used by tests and
// callers that inject rules without a file.
func CompileRules(rules Rules) (Rules, error) {
	for i := range rules.Whitelist {
		rule := &rules.Whitelist[i]
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return Rules{}, fmt.Errorf("invalid whitelist pattern %q: %w", rule.Pattern, err)
		}
		rule.re = re
	}
	return rules, nil
}
