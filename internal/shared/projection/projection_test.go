package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_Touched(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	meta := NewMetadata(created)
	assert.Equal(t, created, meta.UpdatedAt)

	later := meta.Touched(created.Add(time.Hour))
	assert.Equal(t, created, later.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), later.UpdatedAt)
	assert.Equal(t, created, meta.UpdatedAt)
}
