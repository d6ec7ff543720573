package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winterfair/fairbot/internal/domain"
)

func TestDefaultContentValid(t *testing.T) {
	content := Default()

	require.NoError(t, Validate(content))
	assert.Len(t, content.Pavilions, 7)
	assert.Len(t, content.Facts, 28)
	assert.Len(t, content.Tasks, 28)

	// Every pavilion advertises as many tasks as it actually has.
	perPavilion := make(map[int64]int)
	for _, spec := range content.Tasks {
		perPavilion[spec.Task.PavilionID]++
	}
	for _, pav := range content.Pavilions {
		assert.Equal(t, pav.TasksCount, perPavilion[pav.ID], "pavilion %d", pav.ID)
	}
}

func TestRegistryLookup(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Load(Default())

	spec, err := registry.Lookup(3)
	require.NoError(t, err)
	assert.Equal(t, domain.ArchetypeReaction, spec.Archetype())
	require.NotNil(t, spec.Reaction)
	assert.False(t, spec.Reaction.Instant)

	_, err = registry.Lookup(999)
	assert.ErrorIs(t, err, ErrNotFound)

	pav, err := registry.Pavilion(1)
	require.NoError(t, err)
	assert.EqualValues(t, 0, pav.Price)

	_, err = registry.Fact(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistryTasksSorted(t *testing.T) {
	registry := NewRegistry(nil)
	registry.Load(Default())

	tasks := registry.Tasks()
	require.NotEmpty(t, tasks)
	for i := 1; i < len(tasks); i++ {
		assert.Less(t, tasks[i-1].Task.ID, tasks[i].Task.ID)
	}
}

func TestValidateRejectsBrokenContent(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Content)
	}{
		{
			name: "unknown pavilion reference",
			mutate: func(c *Content) {
				c.Tasks[0].Task.PavilionID = 42
			},
		},
		{
			name: "unknown fact reference",
			mutate: func(c *Content) {
				c.Tasks[0].Task.FactID = 999
			},
		},
		{
			name: "unknown task type",
			mutate: func(c *Content) {
				c.Tasks[0].Task.Type = "puzzle"
			},
		},
		{
			name: "reaction task without topology",
			mutate: func(c *Content) {
				for _, spec := range c.Tasks {
					if spec.Archetype() == domain.ArchetypeReaction {
						spec.Reaction = nil
						return
					}
				}
			},
		},
		{
			name: "duplicate task id",
			mutate: func(c *Content) {
				c.Tasks[1].Task.ID = c.Tasks[0].Task.ID
			},
		},
		{
			name: "categorized sequence with zero cap",
			mutate: func(c *Content) {
				for _, spec := range c.Tasks {
					if spec.Sequence != nil && spec.Sequence.Mode == SequenceCategorized {
						spec.Sequence.Categories.Categories[0].Cap = 0
						return
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := Default()
			tt.mutate(content)
			assert.Error(t, Validate(content))
		})
	}
}

func TestLoadFile(t *testing.T) {
	raw := `
pavilions:
  - id: 1
    name: "Тестовый павильон"
    emoji: "🎪"
    price: 0
    reward: 10
    taskscount: 2
facts:
  - id: 1
    pavilionid: 1
    text: "Факт."
tasks:
  - task:
      id: 1
      pavilionid: 1
      name: "Реакция"
      type: reaction
      reward: 10
      factid: 1
    reaction:
      intro: "Жди..."
      stages:
        - delay: 2s
          text: "Почти..."
      prompt_delay: 1500ms
      prompt: "Давай!"
      hit_label: "НАЖАТЬ"
  - task:
      id: 2
      pavilionid: 1
      name: "Выбор"
      type: choice
      reward: 10
    choice:
      prompt: "Выбери:"
      options:
        - value: red
          label: "Красный"
        - value: blue
          label: "Синий"
      correct: red
      wrong_text: "Мимо!"
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	content, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, content.Tasks, 2)

	reaction := content.Tasks[0].Reaction
	require.NotNil(t, reaction)
	assert.Equal(t, 2*time.Second, reaction.Stages[0].Delay)
	assert.Equal(t, 1500*time.Millisecond, reaction.PromptDelay)

	choice := content.Tasks[1].Choice
	require.NotNil(t, choice)
	assert.Equal(t, "red", choice.Correct)
	assert.False(t, choice.MultiPick())
}

func TestLoadFileRejectsBadDelay(t *testing.T) {
	raw := `
pavilions:
  - id: 1
    name: "П"
tasks:
  - task:
      id: 1
      pavilionid: 1
      type: reaction
    reaction:
      prompt_delay: soon
      prompt: "Давай!"
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestCategorizedSpecHelpers(t *testing.T) {
	spec := &CategorizedSpec{
		Categories: []Category{
			{Value: "red", Cap: 2},
			{Value: "blue", Cap: 2},
		},
	}

	assert.Equal(t, 4, spec.Total())
	assert.False(t, spec.Satisfied(map[string]int{"red": 2}))
	assert.True(t, spec.Satisfied(map[string]int{"red": 2, "blue": 2}))

	_, ok := spec.Lookup("green")
	assert.False(t, ok)
}
