// Package stdlib embeds Noolang's own prelude source (Option, Result, Show
// and their instances) plus YAML tables of the closed effect set (spec
// §3.2) and the operator/keyword table (spec §6), parsed into Effects,
// EffectNames and Grammar; the lexer and parser keep their own literal
// copies and do not read these — grounded on the teacher's
// internal/eval_harness.LoadSpec use of gopkg.in/yaml.v3 for config-shaped
// data loaded from embedded/on-disk YAML.
package stdlib

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed effects.yaml
var effectsYAML []byte

//go:embed grammar.yaml
var grammarYAML []byte

// EffectSpec describes one member of the closed effect set.
type EffectSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type effectsConfig struct {
	Effects []EffectSpec `yaml:"effects"`
}

// PrecedenceLevel is one level of the operator precedence table, loosest
// first.
type PrecedenceLevel struct {
	Level     string   `yaml:"level"`
	Operators []string `yaml:"operators"`
}

type grammarConfig struct {
	Precedence []PrecedenceLevel `yaml:"precedence"`
	Keywords   []string          `yaml:"keywords"`
}

// Effects is the closed effect set (spec §3.2), parsed once at package
// init from the embedded effects.yaml.
var Effects []EffectSpec

// EffectNames mirrors internal/lexer.EffectNames but is derived from
// Effects instead of hard-coded; nothing checks that the two agree.
var EffectNames map[string]bool

// Grammar is the operator precedence table and keyword list (spec §6),
// parsed once at package init from the embedded grammar.yaml.
var Grammar grammarConfig

func init() {
	var ec effectsConfig
	if err := yaml.Unmarshal(effectsYAML, &ec); err != nil {
		panic(fmt.Sprintf("stdlib: invalid embedded effects.yaml: %v", err))
	}
	Effects = ec.Effects
	EffectNames = make(map[string]bool, len(Effects))
	for _, e := range Effects {
		EffectNames[e.Name] = true
	}

	if err := yaml.Unmarshal(grammarYAML, &Grammar); err != nil {
		panic(fmt.Sprintf("stdlib: invalid embedded grammar.yaml: %v", err))
	}
}
