package kernel

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RetryPolicy is the on-disk shape of a context's retry allow/deny
// policy, loaded the same way the teacher loads its rule-category
// config (pkg/core/config.go): YAML, with a default and a directory
// walk to find the nearest project file.
type RetryPolicy struct {
	Allow      []string `yaml:"allow"`
	Deny       []string `yaml:"deny"`
	MaxRetries int      `yaml:"max_retries"`
}

// DefaultRetryPolicy allows every operation to retry, denies none, and
// uses the kernel's default retry cap.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{MaxRetries: DefaultMaxRetries}
}

// LoadRetryPolicy reads and parses a retry policy file.
func LoadRetryPolicy(path string) (*RetryPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read retry policy: %w", err)
	}

	policy := DefaultRetryPolicy()
	if err := yaml.Unmarshal(data, policy); err != nil {
		return nil, fmt.Errorf("parse retry policy: %w", err)
	}
	return policy, nil
}

// FindRetryPolicy searches startDir and its parents for .weave.yaml.
func FindRetryPolicy(startDir string) (string, error) {
	dir := startDir
	for {
		path := filepath.Join(dir, ".weave.yaml")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ApplyPolicy copies a RetryPolicy's allow/deny lists onto the context,
// and its retry cap when that cap is positive (a zero cap leaves the
// context's MaxRetries unchanged).
func (c *OperationContext) ApplyPolicy(policy *RetryPolicy) {
	c.RetryAllow = append([]string(nil), policy.Allow...)
	c.RetryDeny = append([]string(nil), policy.Deny...)
	if policy.MaxRetries > 0 {
		c.MaxRetries = policy.MaxRetries
	}
}
