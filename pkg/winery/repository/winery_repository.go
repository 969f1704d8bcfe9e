package repository

import (
	"time"

	"odisea/entities"
)

type VesselPatch struct {
	Name       *string  `json:"name"`
	VesselType *string  `json:"vessel_type"`
	CapacityL  *float64 `json:"capacity_l"`
	Material   *string  `json:"material"`
	IsActive   *bool    `json:"is_active"`
}

type BatchPatch struct {
	Name        *string    `json:"name"`
	VesselID    *uint      `json:"vessel_id"`
	VolumeL     *float64   `json:"volume_l"`
	Vintage     *int       `json:"vintage"`
	StartDate   *time.Time `json:"start_date"`
	Description *string    `json:"description"`
}

type ActivityPatch struct {
	BatchID      *uint      `json:"batch_id"`
	ActivityType *string    `json:"activity_type"`
	ActivityDate *time.Time `json:"activity_date"`
	Estado       *string    `json:"estado"`
	Nota         *string    `json:"nota"`
}

type WineryRepository interface {
	CreateVessel(v *entities.Vessel) (*entities.Vessel, error)
	GetVessel(id uint) (*entities.Vessel, error)
	ListVessels(skip, limit int, isActive *bool) ([]entities.Vessel, error)
	UpdateVessel(id uint, patch VesselPatch) (*entities.Vessel, error)
	DeleteVessel(id uint) error

	CreateBatch(b *entities.Batch) (*entities.Batch, error)
	GetBatch(id uint) (*entities.Batch, error)
	ListBatches(skip, limit int, vesselID *uint) ([]entities.Batch, error)
	UpdateBatch(id uint, patch BatchPatch) (*entities.Batch, error)
	DeleteBatch(id uint) error

	GetActivity(id uint) (*entities.VesselActivity, error)
	ListActivities(skip, limit int, vesselID, batchID *uint) ([]entities.VesselActivity, error)
	UpdateActivity(id uint, patch ActivityPatch) (*entities.VesselActivity, error)
}
