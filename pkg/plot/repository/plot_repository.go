package repository

import (
	"odisea/entities"
	"odisea/pkg/plot/filters"
	"odisea/pkg/plot/types"
)

// PlotPatch is a partial update: only non-nil fields are applied.
type PlotPatch struct {
	PlotName         *string  `json:"plot_name"`
	PlotVar          *string  `json:"plot_var"`
	PlotRootstock    *string  `json:"plot_rootstock"`
	PlotConduction   *string  `json:"plot_conduction"`
	PlotManagement   *string  `json:"plot_management"`
	PlotImplantYear  *int     `json:"plot_implant_year"`
	PlotCreationYear *int     `json:"plot_creation_year"`
	PlotDescription  *string  `json:"plot_description"`
	PlotGeom         *string  `json:"plot_geom"`
	PlotArea         *float64 `json:"plot_area"`
	SectorID         *uint    `json:"sector_id"`
	Active           *bool    `json:"active"`
}

type PlotRepository interface {
	Create(p *entities.Plot) (*entities.Plot, error)
	GetByID(id uint) (*entities.Plot, error)
	List(activeOnly bool, skip, limit int) ([]entities.Plot, error)
	Update(id uint, patch PlotPatch) (*entities.Plot, error)
	DeletePermanent(id uint) error
	Archive(id uint) (*entities.Plot, error)
	Activate(id uint) (*entities.Plot, error)

	// ListWithData is the aggregation query: filtered denormalized rows plus
	// metadata and the total/filtered counts.
	ListWithData(f filters.Filters) (*types.PlotsWithMetadata, error)
	Metadata() (*types.Metadata, error)
}
