package repository

import "odisea/entities"

type FincaPatch struct {
	Value       *string `json:"value"`
	Description *string `json:"description"`
}

type FincaRepository interface {
	Create(f *entities.Finca) (*entities.Finca, error)
	GetByID(id uint) (*entities.Finca, error)
	List(skip, limit int) ([]entities.Finca, error)
	Update(id uint, patch FincaPatch) (*entities.Finca, error)
	// Delete is guarded: a finca with sectores fails with Conflict.
	Delete(id uint) error
	Search(term string) ([]entities.Finca, error)
	Count() (int64, error)
}
