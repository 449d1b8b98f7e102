package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/curbwatch-backend/internal/policy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type File struct {
	ViolationTypes []models.ViolationKind `json:"violation_types"`
}

// Registry is an in-memory snapshot of the violation catalog used for
// listing. Fines used for rewards are always read from the database.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]models.ViolationKind
}

func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]models.ViolationKind),
	}
}

// LoadFromFile reads a catalog seed file.
func LoadFromFile(path string) ([]models.ViolationKind, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for _, k := range file.ViolationTypes {
		if k.ID == "" || k.Label == "" || k.Fine <= 0 {
			return nil, fmt.Errorf("invalid catalog entry %q", k.ID)
		}
	}
	return file.ViolationTypes, nil
}

// Reload replaces the snapshot with the rows currently in the database.
func (r *Registry) Reload(db *gorm.DB) error {
	var rows []models.ViolationKind
	if err := db.Scopes(policy.Visible(policy.ResourceViolationKind, uuid.Nil)).Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	kinds := make(map[string]models.ViolationKind, len(rows))
	for _, k := range rows {
		kinds[k.ID] = k
	}

	r.mu.Lock()
	r.kinds = kinds
	r.mu.Unlock()
	return nil
}

func (r *Registry) Get(id string) (models.ViolationKind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	k, ok := r.kinds[id]
	return k, ok
}

// All returns the catalog ordered by label.
func (r *Registry) All() []models.ViolationKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]models.ViolationKind, 0, len(r.kinds))
	for _, k := range r.kinds {
		result = append(result, k)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Label < result[j].Label })
	return result
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.kinds)
}
