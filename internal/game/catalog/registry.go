package catalog

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/winterfair/fairbot/internal/domain"
)

// ErrNotFound indicates that the requested definition is not in the catalog.
var ErrNotFound = errors.New("definition not found")

// Registry holds the loaded catalog. Reads are lock-free aside from an
// RWMutex so gameplay lookups stay cheap; Load swaps the whole content
// atomically (used by the file watcher).
type Registry struct {
	mu        sync.RWMutex
	tasks     map[int64]*TaskSpec
	pavilions map[int64]*domain.Pavilion
	facts     map[int64]*domain.Fact
	log       *slog.Logger
}

// NewRegistry builds an empty registry.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}

	return &Registry{
		tasks:     make(map[int64]*TaskSpec),
		pavilions: make(map[int64]*domain.Pavilion),
		facts:     make(map[int64]*domain.Fact),
		log:       log,
	}
}

// Load replaces the registry content atomically.
func (r *Registry) Load(content *Content) {
	tasks := make(map[int64]*TaskSpec, len(content.Tasks))
	for _, spec := range content.Tasks {
		tasks[spec.Task.ID] = spec
	}

	pavilions := make(map[int64]*domain.Pavilion, len(content.Pavilions))
	for _, pav := range content.Pavilions {
		pavilions[pav.ID] = pav
	}

	facts := make(map[int64]*domain.Fact, len(content.Facts))
	for _, fact := range content.Facts {
		facts[fact.ID] = fact
	}

	r.mu.Lock()
	r.tasks = tasks
	r.pavilions = pavilions
	r.facts = facts
	r.mu.Unlock()

	r.log.Info("catalog loaded",
		slog.Int("pavilions", len(pavilions)),
		slog.Int("tasks", len(tasks)),
		slog.Int("facts", len(facts)),
	)
}

// Lookup returns the task definition or ErrNotFound.
func (r *Registry) Lookup(taskID int64) (*TaskSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.tasks[taskID]
	if !ok {
		return nil, ErrNotFound
	}

	return spec, nil
}

// Pavilion returns the pavilion definition or ErrNotFound.
func (r *Registry) Pavilion(pavilionID int64) (*domain.Pavilion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pav, ok := r.pavilions[pavilionID]
	if !ok {
		return nil, ErrNotFound
	}

	return pav, nil
}

// Fact returns the fact definition or ErrNotFound.
func (r *Registry) Fact(factID int64) (*domain.Fact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fact, ok := r.facts[factID]
	if !ok {
		return nil, ErrNotFound
	}

	return fact, nil
}

// Pavilions returns all pavilion definitions ordered by id.
func (r *Registry) Pavilions() []*domain.Pavilion {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Pavilion, 0, len(r.pavilions))
	for _, pav := range r.pavilions {
		result = append(result, pav)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result
}

// PavilionTasks returns the pavilion's task specs ordered by id.
func (r *Registry) PavilionTasks(pavilionID int64) []*TaskSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*TaskSpec, 0, 4)
	for _, spec := range r.tasks {
		if spec.Task.PavilionID == pavilionID {
			result = append(result, spec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Task.ID < result[j].Task.ID })

	return result
}

// Tasks returns all task specs ordered by id.
func (r *Registry) Tasks() []*TaskSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*TaskSpec, 0, len(r.tasks))
	for _, spec := range r.tasks {
		result = append(result, spec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Task.ID < result[j].Task.ID })

	return result
}

// Content is a full catalog payload: everything Load needs in one value.
type Content struct {
	Pavilions []*domain.Pavilion `yaml:"pavilions"`
	Tasks     []*TaskSpec        `yaml:"tasks"`
	Facts     []*domain.Fact     `yaml:"facts"`
}
