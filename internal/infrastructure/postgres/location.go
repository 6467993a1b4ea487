package postgres

import (
	"fmt"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// IDs de la tabla locations (sembrados en la migración inicial).
var locationIDs = map[entity.Location]int{
	entity.LocationAvailable:    1,
	entity.LocationInReceiving:  2,
	entity.LocationInTransit:    3,
	entity.LocationAwaitingQC:   4,
	entity.LocationCommitted:    5,
	entity.LocationDisabled:     6,
	entity.LocationRejectedDock: 7,
	entity.LocationQuarantine:   8,
	entity.LocationVendor:       1007,
}

var locationsByID = func() map[int]entity.Location {
	m := make(map[int]entity.Location, len(locationIDs))
	for loc, id := range locationIDs {
		m[id] = loc
	}
	return m
}()

func locationID(l entity.Location) (int, error) {
	id, ok := locationIDs[l]
	if !ok {
		return 0, fmt.Errorf("ubicación sin id de almacenamiento: %s", l)
	}
	return id, nil
}

func locationFromID(id int) (entity.Location, error) {
	l, ok := locationsByID[id]
	if !ok {
		return entity.LocationUnknown, fmt.Errorf("id de ubicación desconocido: %d", id)
	}
	return l, nil
}
