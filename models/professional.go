package models

// Professional is a bookable staff member attached to one unit.
type Professional struct {
	ID     string `bson:"id" json:"id"`
	UnitID string `bson:"unit_id" json:"unit_id"`
	Name   string `bson:"name" json:"name"`
	Active bool   `bson:"active" json:"active"`
}
