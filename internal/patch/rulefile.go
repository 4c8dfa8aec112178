package patch

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
)

// ruleFile is the YAML layout of a rule file.
type ruleFile struct {
	Rules []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Name    string `yaml:"name"`
	Summary string `yaml:"summary"`
	Literal string `yaml:"literal"`
	Pattern string `yaml:"pattern"`
	Replace string `yaml:"replace"`
}

// LoadRuleFile reads an ordered rule list from a YAML file.
func LoadRuleFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rules, nil
}

// ParseRules decodes YAML rule definitions. Every rule needs a name and
// exactly one of literal or pattern; summary defaults to the name.
func ParseRules(data []byte) ([]Rule, error) {
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("%w: no rules defined", ErrInvalidRule)
	}

	rules := make([]Rule, 0, len(rf.Rules))
	for i, spec := range rf.Rules {
		if spec.Literal != "" && spec.Pattern != "" {
			return nil, fmt.Errorf("rule %d: %w: both literal and pattern set", i+1, ErrInvalidRule)
		}
		rule := Rule{
			Name:        spec.Name,
			Summary:     spec.Summary,
			Literal:     spec.Literal,
			Replacement: spec.Replace,
		}
		if rule.Summary == "" {
			rule.Summary = rule.Name
		}
		if spec.Pattern != "" {
			re, err := regexp.Compile(spec.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w: %v", i+1, ErrInvalidRule, err)
			}
			rule.Pattern = re
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
