package memory

import (
	"testing"

	"github.com/bnema/credit-entry-cli/internal/domain"
	"github.com/bnema/credit-entry-cli/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfaceSetValueAndReset(t *testing.T) {
	t.Parallel()

	surface := NewSurface(domain.FormValues{Name: "Alice", DurationSelection: "4-2-2"})
	surface.SetValue(domain.FieldCurrentCredits, "6")

	assert.Equal(t, domain.FormValues{Name: "Alice", CurrentCredits: "6", DurationSelection: "4-2-2"}, ports.ReadValues(surface))

	require.NoError(t, surface.Reset())
	assert.Equal(t, domain.FormValues{}, surface.Values())
}
