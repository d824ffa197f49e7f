package model

import (
	"slices"
	"strings"
)

// UnitType is a raw equipment type string as stored in the equipment database
// or entered by the operator, e.g. "Portable X-Ray".
type UnitType string

// Recognized equipment types.
const (
	UnitTypeXRay         UnitType = "X-Ray"
	UnitTypeFluoro       UnitType = "Fluoro"
	UnitTypeRadFluoro    UnitType = "Rad/Fluoro"
	UnitTypePortableXRay UnitType = "Portable X-Ray"
	UnitTypeCArm         UnitType = "C-Arm"
	UnitTypeMiniCArm     UnitType = "Mini C-Arm"
	UnitTypeOArm         UnitType = "O-Arm"
	UnitTypeDental       UnitType = "Dental"
)

// UnitTypes returns the closed vocabulary of equipment types in display order.
func UnitTypes() []UnitType {
	return []UnitType{
		UnitTypeXRay,
		UnitTypeFluoro,
		UnitTypeRadFluoro,
		UnitTypePortableXRay,
		UnitTypeCArm,
		UnitTypeMiniCArm,
		UnitTypeOArm,
		UnitTypeDental,
	}
}

// Known reports whether t belongs to the recognized vocabulary.
// The comparison is exact; the database and the entry form both store
// the canonical spelling.
func (t UnitType) Known() bool {
	return slices.Contains(UnitTypes(), t)
}

// String returns the raw type string.
func (t UnitType) String() string {
	return string(t)
}

// UnitRecord holds the attributes of one piece of imaging equipment.
// A record is built once per run, from a database row or from the
// interactive entry form, and is passed by value afterwards.
type UnitRecord struct {
	// ID is the equipment identifier, unique per unit.
	ID string `validate:"required"`

	// Site is the facility the unit belongs to, e.g. "Main Hospital".
	Site string `validate:"required"`

	// Location is the department or area inside the site.
	Location string

	// LocationDetail is an optional nickname, color/number or room.
	LocationDetail string

	// RawType is the equipment type as recorded. Unknown values are
	// not rejected here; they surface later as an unresolved template.
	RawType UnitType `validate:"required"`

	// Manufacturer is the equipment manufacturer, e.g. "GE".
	Manufacturer string `validate:"required"`

	// Model is the optional model name.
	Model string
}

// LocationText returns the location and its detail joined by a single space.
// Empty parts are dropped, so a unit without detail yields just the location.
func (u UnitRecord) LocationText() string {
	return joinNonEmpty(u.Location, u.LocationDetail)
}

// MakeModelText returns the manufacturer and model joined by a single space.
func (u UnitRecord) MakeModelText() string {
	return joinNonEmpty(u.Manufacturer, u.Model)
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
