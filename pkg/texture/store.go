package texture

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-scene-raytracer/pkg/loaders"
)

// Store caches decoded textures by file path so scenes that reuse an image
// share a single copy across all render workers.
type Store struct {
	mu       sync.RWMutex
	textures map[string]*Texture
}

// NewStore creates an empty texture store.
func NewStore() *Store {
	return &Store{textures: make(map[string]*Texture)}
}

// Load returns the cached texture for a path, decoding the file on first use.
// When two goroutines race to decode the same path, the first store wins and
// both receive the same texture.
func (s *Store) Load(path string) (*Texture, error) {
	s.mu.RLock()
	tex, ok := s.textures[path]
	s.mu.RUnlock()
	if ok {
		return tex, nil
	}

	img, err := loaders.LoadImage(path)
	if err != nil {
		return nil, err
	}
	tex = FromImage(img)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.textures[path]; ok {
		return existing, nil
	}
	s.textures[path] = tex
	return tex, nil
}

// Preload decodes all paths concurrently, stopping at the first failure.
func (s *Store) Preload(paths []string) error {
	g := new(errgroup.Group)
	for _, path := range paths {
		g.Go(func() error {
			_, err := s.Load(path)
			return err
		})
	}
	return g.Wait()
}

// Len returns the number of cached textures.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.textures)
}
