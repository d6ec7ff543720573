package catalog

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/winterfair/fairbot/internal/domain"
)

// LoadFile reads and validates a catalog file. The file layout mirrors
// Content: top-level pavilions, tasks and facts lists.
func LoadFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	if err := Validate(&content); err != nil {
		return nil, fmt.Errorf("validate catalog file: %w", err)
	}

	return &content, nil
}

// Validate checks referential integrity of the content: every task
// belongs to a known pavilion, declares a valid archetype, carries the
// matching topology and points at a known fact.
func Validate(content *Content) error {
	pavilions := make(map[int64]bool, len(content.Pavilions))
	for _, pav := range content.Pavilions {
		if pavilions[pav.ID] {
			return fmt.Errorf("duplicate pavilion id %d", pav.ID)
		}
		pavilions[pav.ID] = true
	}

	facts := make(map[int64]bool, len(content.Facts))
	for _, fact := range content.Facts {
		if facts[fact.ID] {
			return fmt.Errorf("duplicate fact id %d", fact.ID)
		}
		facts[fact.ID] = true
	}

	seen := make(map[int64]bool, len(content.Tasks))
	for _, spec := range content.Tasks {
		task := spec.Task
		if seen[task.ID] {
			return fmt.Errorf("duplicate task id %d", task.ID)
		}
		seen[task.ID] = true

		if !pavilions[task.PavilionID] {
			return fmt.Errorf("task %d references unknown pavilion %d", task.ID, task.PavilionID)
		}
		if task.FactID != 0 && !facts[task.FactID] {
			return fmt.Errorf("task %d references unknown fact %d", task.ID, task.FactID)
		}

		if !spec.Archetype().Valid() {
			return fmt.Errorf("task %d has unknown type %q", task.ID, task.Type)
		}

		switch spec.Archetype() {
		case domain.ArchetypeReaction:
			if spec.Reaction == nil {
				return fmt.Errorf("task %d is a reaction task without reaction topology", task.ID)
			}
		case domain.ArchetypeChoice:
			if spec.Choice == nil {
				return fmt.Errorf("task %d is a choice task without choice topology", task.ID)
			}
			if len(spec.Choice.Options) == 0 {
				return fmt.Errorf("task %d has no choice options", task.ID)
			}
		case domain.ArchetypeSequence:
			if spec.Sequence == nil {
				return fmt.Errorf("task %d is a sequence task without sequence topology", task.ID)
			}
			if err := validateSequence(task.ID, spec.Sequence); err != nil {
				return err
			}
		}

		if spec.Choice != nil && spec.Choice.Next != nil {
			if err := validateSequence(task.ID, spec.Choice.Next); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateSequence(taskID int64, seq *SequenceSpec) error {
	switch seq.Mode {
	case SequenceFixed:
		if len(seq.Steps) == 0 {
			return fmt.Errorf("task %d fixed sequence has no steps", taskID)
		}
	case SequenceRepeat:
		if seq.Repeat == nil || seq.Repeat.Required <= 0 {
			return fmt.Errorf("task %d repeat sequence needs a positive requirement", taskID)
		}
	case SequenceCategorized:
		if seq.Categories == nil || len(seq.Categories.Categories) == 0 {
			return fmt.Errorf("task %d categorized sequence has no categories", taskID)
		}
		for _, category := range seq.Categories.Categories {
			if category.Cap <= 0 {
				return fmt.Errorf("task %d category %q needs a positive cap", taskID, category.Value)
			}
		}
	default:
		return fmt.Errorf("task %d has unknown sequence mode %q", taskID, seq.Mode)
	}

	return nil
}

// UnmarshalYAML parses the stage delay from a duration string ("2s").
func (s *ReactionStage) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Delay string `yaml:"delay"`
		Text  string `yaml:"text"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	delay, err := parseDelay(raw.Delay)
	if err != nil {
		return err
	}

	s.Delay = delay
	s.Text = raw.Text

	return nil
}

// UnmarshalYAML parses the prompt delay from a duration string.
func (s *ReactionSpec) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Intro       string          `yaml:"intro"`
		Stages      []ReactionStage `yaml:"stages"`
		PromptDelay string          `yaml:"prompt_delay"`
		Prompt      string          `yaml:"prompt"`
		HitLabel    string          `yaml:"hit_label"`
		Instant     bool            `yaml:"instant"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	delay, err := parseDelay(raw.PromptDelay)
	if err != nil {
		return err
	}

	s.Intro = raw.Intro
	s.Stages = raw.Stages
	s.PromptDelay = delay
	s.Prompt = raw.Prompt
	s.HitLabel = raw.HitLabel
	s.Instant = raw.Instant

	return nil
}

func parseDelay(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}

	delay, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse delay %q: %w", raw, err)
	}
	if delay < 0 {
		return 0, fmt.Errorf("negative delay %q", raw)
	}

	return delay, nil
}
