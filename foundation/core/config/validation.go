// File: validation.go
// Title: Configuration Validation
// Description: Validates configuration values against declarative rules
//              and reports every failure at once.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	qzerror "github.com/quizdsl/quizc/foundation/core/error"
)

// ValidationRule defines validation criteria for a configuration value
type ValidationRule struct {
	Required bool
	// Type is one of "string", "int", "bool", "duration"
	Type string
	// Min and Max bound ints and durations; zero means unbounded
	Min int
	Max int
	// OneOf restricts string values
	OneOf []string
}

// ValidationRules maps configuration keys to their validation rules
type ValidationRules map[string]ValidationRule

// Validate checks every rule and returns a single INVALID_CONFIG error
// listing each failing key, or nil.
func (c *Config) Validate(rules ValidationRules) error {
	var problems []string
	for _, key := range sortedRuleKeys(rules) {
		if err := c.validateField(key, rules[key]); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return qzerror.New("invalid configuration: "+strings.Join(problems, "; ")).
		WithCode(qzerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("problems", problems)
}

func (c *Config) validateField(key string, rule ValidationRule) error {
	if !c.Has(key) {
		if rule.Required {
			return fmt.Errorf("%s is required", key)
		}
		return nil
	}

	raw := c.GetString(key)

	switch rule.Type {
	case "int":
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("%s must be an integer, got %q", key, raw)
		}
		return checkBounds(key, n, rule)
	case "bool":
		if _, err := strconv.ParseBool(strings.TrimSpace(raw)); err != nil {
			return fmt.Errorf("%s must be a boolean, got %q", key, raw)
		}
	case "duration":
		d := c.GetDuration(key, -1)
		if d < 0 {
			return fmt.Errorf("%s must be a duration, got %q", key, raw)
		}
		return checkBounds(key, int(d/time.Millisecond), rule)
	case "string", "":
	default:
		return fmt.Errorf("%s has unknown rule type %q", key, rule.Type)
	}

	if len(rule.OneOf) > 0 {
		for _, allowed := range rule.OneOf {
			if strings.EqualFold(raw, allowed) {
				return nil
			}
		}
		return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(rule.OneOf, ", "), raw)
	}
	return nil
}

func checkBounds(key string, n int, rule ValidationRule) error {
	if rule.Min != 0 && n < rule.Min {
		return fmt.Errorf("%s must be at least %d, got %d", key, rule.Min, n)
	}
	if rule.Max != 0 && n > rule.Max {
		return fmt.Errorf("%s must be at most %d, got %d", key, rule.Max, n)
	}
	return nil
}

func sortedRuleKeys(rules ValidationRules) []string {
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
