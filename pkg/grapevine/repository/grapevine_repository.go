package repository

import "odisea/entities"

type GrapevinePatch struct {
	Name   *string `json:"name"`
	Color  *string `json:"color"`
	GvType *string `json:"gv_type"`
}

type GrapevineRepository interface {
	Create(g *entities.Grapevine) (*entities.Grapevine, error)
	GetByID(id string) (*entities.Grapevine, error)
	List(skip, limit int) ([]entities.Grapevine, error)
	Update(id string, patch GrapevinePatch) (*entities.Grapevine, error)
	Delete(id string) error
}
