package dom

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	lru "github.com/hashicorp/golang-lru"

	"github.com/weblarek/larek/internal/errors"
)

// selectorCacheSize bounds the number of compiled selectors kept per
// document. Views use a few dozen distinct selectors.
const selectorCacheSize = 256

// selectorCache memoises compiled selector groups.
type selectorCache struct {
	cache *lru.Cache
}

func newSelectorCache() *selectorCache {
	c, err := lru.New(selectorCacheSize)
	if err != nil {
		// Only returned for a non-positive size.
		panic(err)
	}
	return &selectorCache{cache: c}
}

// compile returns the compiled form of sel.
func (s *selectorCache) compile(sel string) (cascadia.SelectorGroup, error) {
	if v, ok := s.cache.Get(sel); ok {
		return v.(cascadia.SelectorGroup), nil
	}
	group, err := cascadia.ParseGroup(sel)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", errors.ErrInvalidSelector, sel, err)
	}
	s.cache.Add(sel, group)
	return group, nil
}

// Len returns the number of cached selectors.
func (s *selectorCache) Len() int {
	return s.cache.Len()
}
