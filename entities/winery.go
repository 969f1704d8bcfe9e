package entities

import "time"

// Vessel is a winery container (tank, barrel, amphora).
type Vessel struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Name       string   `gorm:"not null" json:"name"`
	VesselType *string  `json:"vessel_type"`
	CapacityL  *float64 `json:"capacity_l"`
	Material   *string  `json:"material"`
	IsActive   bool     `gorm:"default:true" json:"is_active"`
}

func (Vessel) TableName() string { return "vessels" }

// Batch is a lot of wine in progress, optionally tied to a vessel.
type Batch struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	VesselID    *uint      `gorm:"index" json:"vessel_id"`
	VolumeL     *float64   `json:"volume_l"`
	Vintage     *int       `json:"vintage"`
	StartDate   *time.Time `json:"start_date"`
	Description *string    `json:"description"`
}

func (Batch) TableName() string { return "batches" }

// VesselActivity is a winery task performed on a vessel (racking, topping,
// additions...). Its inputs are booked through the same task-input and
// inventory-movement machinery as vineyard operations.
type VesselActivity struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	VesselID     uint       `gorm:"index;not null" json:"vessel_id"`
	BatchID      *uint      `gorm:"index" json:"batch_id"`
	ActivityType string     `gorm:"not null" json:"activity_type"`
	ActivityDate *time.Time `json:"activity_date"`
	Estado       string     `gorm:"default:planned" json:"estado"`
	Nota         string     `json:"nota"`
	OperationID  *uint      `gorm:"index" json:"operation_id"`
}

func (VesselActivity) TableName() string { return "vessel_activities" }
