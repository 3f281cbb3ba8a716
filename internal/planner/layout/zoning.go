package layout

import (
	"fmt"

	"floorplanner/internal/planner/catalog"
	"floorplanner/internal/planner/models"
)

// ============================================================
// Zoning
// ============================================================

// Item is one room waiting to be packed.
type Item struct {
	ID   string
	Name string
	Kind models.Kind
	// PinEast moves the item to the eastern plot edge when that does not
	// cross the current row cursor.
	PinEast bool
	// StayInRow keeps the item on the current row even past the right margin.
	StayInRow bool
}

// ZonePass is a group of items packed with one shared row cursor.
type ZonePass struct {
	Name  string
	Items []Item
	// Gap is extra vertical space inserted before the pass (corridor).
	Gap float64
	// Continue keeps the previous pass's cursor instead of starting a new row.
	Continue bool
}

// PlanZones orders the requested rooms into zone passes. The order is fixed:
// private, public, service, extra.
func PlanZones(req models.RequirementSpec) []ZonePass {
	return []ZonePass{
		privateZone(req),
		publicZone(req),
		serviceZone(req),
		extraZone(req),
	}
}

func privateZone(req models.RequirementSpec) ZonePass {
	zone := ZonePass{Name: "private"}
	for i := 0; i < req.Bedrooms; i++ {
		item := Item{
			ID:   fmt.Sprintf("bedroom-%d", i+1),
			Name: fmt.Sprintf("Bedroom %d", i+1),
			Kind: models.KindBedroom,
		}
		if i == 0 {
			item.Name = "Master Bedroom"
			item.Kind = models.KindMasterBedroom
		}
		zone.Items = append(zone.Items, item)
	}
	return zone
}

func publicZone(req models.RequirementSpec) ZonePass {
	zone := ZonePass{Name: "public", Gap: catalog.CorridorWidth}
	if req.LivingRoom {
		zone.Items = append(zone.Items, Item{ID: "living-room", Name: "Living Room", Kind: models.KindLivingRoom})
	}

	// kitchen and dining share the living room's row, dining right after the kitchen
	zone.Items = append(zone.Items, Item{
		ID:        "kitchen",
		Name:      "Kitchen",
		Kind:      models.KindKitchen,
		PinEast:   catalog.PinsToEastEdge(models.KindKitchen, req.DirectionalCompliance, req.KitchenFacing),
		StayInRow: true,
	})

	if req.DiningRoom {
		zone.Items = append(zone.Items, Item{ID: "dining-room", Name: "Dining Room", Kind: models.KindDiningRoom, StayInRow: true})
	}
	return zone
}

func serviceZone(req models.RequirementSpec) ZonePass {
	zone := ZonePass{Name: "service"}
	for i := 0; i < req.Bathrooms; i++ {
		item := Item{
			ID:   fmt.Sprintf("bathroom-%d", i+1),
			Name: fmt.Sprintf("Bathroom %d", i+1),
			Kind: models.KindBathroom,
		}
		if i == 0 && req.Bedrooms > 0 {
			item.Name = "Master Bathroom"
		}
		zone.Items = append(zone.Items, item)
	}
	return zone
}

func extraZone(req models.RequirementSpec) ZonePass {
	zone := ZonePass{Name: "extra", Continue: true}
	if req.StudyRoom {
		zone.Items = append(zone.Items, Item{ID: "study-room", Name: "Study Room", Kind: models.KindStudyRoom})
	}
	if req.PoojaRoom {
		zone.Items = append(zone.Items, Item{ID: "pooja-room", Name: "Pooja Room", Kind: models.KindPoojaRoom})
	}
	return zone
}
