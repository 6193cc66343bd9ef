package distro

import (
	"fmt"
	"slices"
	"sync"
)

var (
	registry     = make(map[ID]Image)
	registryLock sync.RWMutex
	defaultID    ID = Bionic
)

// Register adds an image to the catalog.
func Register(img Image) {
	registryLock.Lock()
	defer registryLock.Unlock()
	registry[img.ID] = img
}

// Get returns an image by ID.
func Get(id ID) (Image, error) {
	registryLock.RLock()
	defer registryLock.RUnlock()

	img, ok := registry[id]
	if !ok {
		return Image{}, &ErrUnknownDistro{ID: id}
	}
	return img, nil
}

// DefaultID returns the image used when none is configured.
func DefaultID() ID {
	return defaultID
}

// List returns all registered image IDs, sorted.
func List() []ID {
	registryLock.RLock()
	defer registryLock.RUnlock()

	ids := make([]ID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IsRegistered checks if an image ID is in the catalog.
func IsRegistered(id ID) bool {
	registryLock.RLock()
	defer registryLock.RUnlock()
	_, ok := registry[id]
	return ok
}

// ErrUnknownDistro is returned when an image ID is not in the catalog.
type ErrUnknownDistro struct {
	ID ID
}

func (e *ErrUnknownDistro) Error() string {
	return fmt.Sprintf("unknown distribution %q, available: %v", e.ID, List())
}
