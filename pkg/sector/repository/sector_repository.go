package repository

import "odisea/entities"

type SectorPatch struct {
	FincaID     *uint   `json:"finca_id"`
	Value       *string `json:"value"`
	Description *string `json:"description"`
}

type SectorRepository interface {
	Create(s *entities.Sector) (*entities.Sector, error)
	GetByID(id uint) (*entities.Sector, error)
	List(skip, limit int) ([]entities.Sector, error)
	ListByFinca(fincaID uint) ([]entities.Sector, error)
	Update(id uint, patch SectorPatch) (*entities.Sector, error)
	// Delete is guarded: a sector with plots fails with Conflict.
	Delete(id uint) error
	Search(term string) ([]entities.Sector, error)
	Count() (int64, error)
	CountByFinca(fincaID uint) (int64, error)
}
