package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PolicySet is a named, YAML-loaded bundle of CEL rules (for
// pkg/policy.Evaluator) and JSON Schema identifiers keyed by object
// kind (for pkg/objtree/jsonpayload.SchemaValidated).
type PolicySet struct {
	Name      string            `yaml:"name" json:"name"`
	Rules     []string          `yaml:"rules" json:"rules"`
	SchemaIDs map[string]string `yaml:"schema_ids,omitempty" json:"schema_ids,omitempty"`
}

// LoadPolicySet loads a single policy set YAML by name, from
// <policiesDir>/policy_<name>.yaml.
func LoadPolicySet(policiesDir, name string) (*PolicySet, error) {
	name = strings.ToLower(name)
	path := filepath.Join(policiesDir, fmt.Sprintf("policy_%s.yaml", name))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load policy set %q: %w", name, err)
	}

	var set PolicySet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse policy set %q: %w", name, err)
	}

	if set.Name == "" {
		set.Name = name
	}

	return &set, nil
}

// LoadAllPolicySets loads every policy_*.yaml file in policiesDir,
// keyed by policy set name.
func LoadAllPolicySets(policiesDir string) (map[string]*PolicySet, error) {
	matches, err := filepath.Glob(filepath.Join(policiesDir, "policy_*.yaml"))
	if err != nil {
		return nil, err
	}

	sets := make(map[string]*PolicySet, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var set PolicySet
		if err := yaml.Unmarshal(data, &set); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}

		if set.Name == "" {
			base := filepath.Base(path)
			set.Name = strings.TrimSuffix(strings.TrimPrefix(base, "policy_"), ".yaml")
		}

		sets[set.Name] = &set
	}

	return sets, nil
}
