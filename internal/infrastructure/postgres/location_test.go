package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

func TestLocationIDs_IdaYVuelta(t *testing.T) {
	for loc := entity.LocationVendor; loc <= entity.LocationQuarantine; loc++ {
		id, err := locationID(loc)
		require.NoError(t, err, loc.String())
		back, err := locationFromID(id)
		require.NoError(t, err)
		assert.Equal(t, loc, back)
	}

	id, _ := locationID(entity.LocationVendor)
	assert.Equal(t, 1007, id)

	_, err := locationID(entity.LocationUnknown)
	assert.Error(t, err)
	_, err = locationFromID(42)
	assert.Error(t, err)
}
