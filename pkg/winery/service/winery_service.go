package service

import (
	"time"

	"odisea/entities"
)

// ActivityInputLine is one consumption line of a winery activity.
type ActivityInputLine struct {
	InputID         uint     `json:"input_id"`
	WarehouseID     uint     `json:"warehouse_id"`
	UsedQuantity    float64  `json:"used_quantity"`
	PlannedQuantity *float64 `json:"planned_quantity"`
}

// ActivityRequest is the create payload for a vessel activity.
type ActivityRequest struct {
	VesselID     uint       `json:"vessel_id"`
	BatchID      *uint      `json:"batch_id"`
	ActivityType string     `json:"activity_type"`
	ActivityDate *time.Time `json:"activity_date"`
	Estado       *string    `json:"estado"`
	Nota         *string    `json:"nota"`

	Inputs []ActivityInputLine `json:"inputs"`
}

// WineryService composes vessel activities with their inventory consumption:
// the activity's inputs are booked through the same operation machinery as
// vineyard work, with no plot attached.
type WineryService interface {
	CreateActivityWithInputs(req ActivityRequest) (*entities.VesselActivity, error)
	DeleteActivity(id uint) error
}
