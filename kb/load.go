package kb

import (
	"errors"
	"fmt"
	"os"

	"github.com/poiesic/asha/core"
	"gopkg.in/yaml.v3"
)

// ErrPathRequired is returned when Load is called without a path.
var ErrPathRequired = errors.New("knowledge base path is required")

// Load reads a knowledge base from a YAML file.
//
// The file uses the same shape as core.KnowledgeBase:
//
//	jobs:
//	  - id: 1
//	    title: Software Engineer
//	    company: TechCorp
//	    location: Remote
//	    description: Frontend development.
//	events: [...]
//	mentorships: [...]
//	faqs:
//	  - question: How do I update my profile?
//	    answer: Log in and click Edit Profile.
//	info:
//	  name: JobsForHer Foundation
//	  text: |
//	    ...
//
// Records are not validated here; corpus.Build does that.
func Load(path string) (*core.KnowledgeBase, error) {
	if path == "" {
		return nil, ErrPathRequired
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var kb core.KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}

	return &kb, nil
}

// Save writes a knowledge base to a YAML file.
func Save(path string, kb *core.KnowledgeBase) error {
	if path == "" {
		return ErrPathRequired
	}

	data, err := yaml.Marshal(kb)
	if err != nil {
		return fmt.Errorf("marshal knowledge base: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write knowledge base: %w", err)
	}
	return nil
}
