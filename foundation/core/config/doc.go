// File: doc.go
// Title: Configuration Package Documentation
// Description: Package documentation for the configuration layer.
// Author: quizc contributors
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial documentation

/*
Package config loads quizc settings from TOML or YAML files.

Keys are dotted paths into the nested document ("parser.max_input_bytes").
When an environment prefix is set, QUIZC_PARSER_MAX_INPUT_BYTES overrides
parser.max_input_bytes. Defaults passed in LoadOptions sit beneath the file
content and never replace a value the file sets.

	cfg, err := config.Discover([]string{".", "./config"}, []string{"quizc"}, config.LoadOptions{
		Format:    config.FormatAuto,
		EnvPrefix: "QUIZC",
		Defaults:  map[string]interface{}{"log.level": "warn"},
	})
	if err != nil {
		return err
	}
	level := cfg.GetString("log.level")

Validate checks values against ValidationRules and reports all failures in
one INVALID_CONFIG error.
*/
package config
