package models

import "fmt"

// Listing types.
const (
	ListingTypeProperty = "property"
	ListingTypeVehicle  = "vehicle"
)

// AssetRef identifies exactly one rentable listing, either a property or a
// vehicle. Services work against the ref; only the listing repository knows
// which collection backs each variant.
type AssetRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// PropertyRef builds an AssetRef for a property listing.
func PropertyRef(id string) AssetRef {
	return AssetRef{Type: ListingTypeProperty, ID: id}
}

// VehicleRef builds an AssetRef for a vehicle listing.
func VehicleRef(id string) AssetRef {
	return AssetRef{Type: ListingTypeVehicle, ID: id}
}

// Validate checks that the ref names a known listing type and a non-empty ID.
func (r AssetRef) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("asset ref: missing listing id")
	}
	if r.Type != ListingTypeProperty && r.Type != ListingTypeVehicle {
		return fmt.Errorf("asset ref: unknown listing type %q", r.Type)
	}
	return nil
}
