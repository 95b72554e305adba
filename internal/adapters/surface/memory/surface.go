package memory

import (
	"sync"

	"github.com/bnema/credit-entry-cli/internal/domain"
	"github.com/bnema/credit-entry-cli/internal/ports"
)

// Surface keeps input field values in memory.
type Surface struct {
	mu     sync.RWMutex
	values domain.FormValues
}

var _ ports.InputSurface = (*Surface)(nil)

func NewSurface(values domain.FormValues) *Surface {
	return &Surface{values: values}
}

func (s *Surface) Value(field domain.Field) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.values.Get(field)
}

func (s *Surface) SetValue(field domain.Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values.Set(field, value)
}

func (s *Surface) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = domain.FormValues{}
	return nil
}

func (s *Surface) Values() domain.FormValues {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.values
}
