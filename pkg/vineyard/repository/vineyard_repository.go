package repository

import "odisea/entities"

type VineyardPatch struct {
	Value       *string `json:"value"`
	Description *string `json:"description"`
	Kind        *string `json:"kind"`
}

// VineyardRepository manages the conduction/management attribute lookups.
type VineyardRepository interface {
	Create(v *entities.Vineyard) (*entities.Vineyard, error)
	GetByID(id string) (*entities.Vineyard, error)
	List(skip, limit int) ([]entities.Vineyard, error)
	ListByKind(kind string) ([]entities.Vineyard, error)
	Update(id string, patch VineyardPatch) (*entities.Vineyard, error)
	Delete(id string) error
}
