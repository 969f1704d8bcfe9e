package repositoryImp

import (
	"gorm.io/gorm"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/plot/filters"
	"odisea/pkg/plot/types"
)

// aggRow is the flat scan target of the joined aggregation query. Joined
// columns are pointers so a left join without a match scans as nil instead of
// dropping the row.
type aggRow struct {
	PlotID           uint     `gorm:"column:plot_id"`
	PlotName         string   `gorm:"column:plot_name"`
	PlotGeom         *string  `gorm:"column:plot_geom"`
	PlotArea         *float64 `gorm:"column:plot_area"`
	PlotImplantYear  *int     `gorm:"column:plot_implant_year"`
	PlotCreationYear *int     `gorm:"column:plot_creation_year"`
	PlotDescription  *string  `gorm:"column:plot_description"`
	SectorID         *uint    `gorm:"column:sector_id"`
	Active           bool     `gorm:"column:active"`

	VarietyGvID   *string `gorm:"column:variety_gv_id"`
	VarietyName   *string `gorm:"column:variety_name"`
	RootstockGvID *string `gorm:"column:rootstock_gv_id"`
	RootstockName *string `gorm:"column:rootstock_name"`

	ConductionVyID  *string `gorm:"column:conduction_vy_id"`
	ConductionValue *string `gorm:"column:conduction_value"`
	ManagementVyID  *string `gorm:"column:management_vy_id"`
	ManagementValue *string `gorm:"column:management_value"`

	SectorRowID *uint   `gorm:"column:sector_row_id"`
	SectorValue *string `gorm:"column:sector_value"`
	FincaRowID  *uint   `gorm:"column:finca_row_id"`
	FincaValue  *string `gorm:"column:finca_value"`
}

const aggSelect = `plots.plot_id, plots.plot_name, plots.plot_geom, plots.plot_area,
plots.plot_implant_year, plots.plot_creation_year, plots.plot_description,
plots.sector_id, plots.active,
variety.gv_id AS variety_gv_id, variety.name AS variety_name,
rootstock.gv_id AS rootstock_gv_id, rootstock.name AS rootstock_name,
conduction.vy_id AS conduction_vy_id, conduction.value AS conduction_value,
management.vy_id AS management_vy_id, management.value AS management_value,
sector.sector_id AS sector_row_id, sector.value AS sector_value,
finca.finca_id AS finca_row_id, finca.value AS finca_value`

// joined builds the aggregation row source. Every join is LEFT, variety
// included: a plot referencing a missing grapevine still shows up, with a nil
// variety object, instead of silently dropping out of the listing.
func (r *plotRepo) joined() *gorm.DB {
	return r.db.Table("plots").
		Joins("LEFT JOIN grapevines AS variety ON variety.gv_id = plots.plot_var").
		Joins("LEFT JOIN grapevines AS rootstock ON rootstock.gv_id = plots.plot_rootstock").
		Joins("LEFT JOIN vineyards AS conduction ON conduction.vy_id = plots.plot_conduction").
		Joins("LEFT JOIN vineyards AS management ON management.vy_id = plots.plot_management").
		Joins("LEFT JOIN sectores AS sector ON sector.sector_id = plots.sector_id").
		Joins("LEFT JOIN fincas AS finca ON finca.finca_id = sector.finca_id")
}

// ListWithData runs the aggregation: total count (active-only predicate
// only), filtered count, row fetch, metadata. Three separate statements, no
// snapshot across them; under concurrent writes the counts and rows are
// best-effort consistent. Row order is unspecified.
func (r *plotRepo) ListWithData(f filters.Filters) (*types.PlotsWithMetadata, error) {
	var total int64
	if err := f.ActiveScope()(r.db.Model(&entities.Plot{})).Count(&total).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener las parcelas", err)
	}

	var filtered int64
	if err := f.Apply(r.joined()).Count(&filtered).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener las parcelas", err)
	}

	var rows []aggRow
	if err := f.Apply(r.joined()).Select(aggSelect).Scan(&rows).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener las parcelas", err)
	}

	meta, err := r.Metadata()
	if err != nil {
		return nil, err
	}

	plots := make([]types.PlotOptimized, 0, len(rows))
	for _, row := range rows {
		plots = append(plots, row.toDTO())
	}
	return &types.PlotsWithMetadata{
		Plots:         plots,
		Metadata:      *meta,
		TotalCount:    total,
		FilteredCount: filtered,
	}, nil
}

func (row aggRow) toDTO() types.PlotOptimized {
	out := types.PlotOptimized{
		PlotID:           row.PlotID,
		PlotName:         row.PlotName,
		PlotGeom:         row.PlotGeom,
		PlotArea:         row.PlotArea,
		PlotImplantYear:  row.PlotImplantYear,
		PlotCreationYear: row.PlotCreationYear,
		PlotDescription:  row.PlotDescription,
		SectorID:         row.SectorID,
		Active:           row.Active,
	}
	if row.VarietyGvID != nil {
		out.Variety = &types.GrapevineRef{GvID: *row.VarietyGvID, Name: deref(row.VarietyName)}
	}
	if row.RootstockGvID != nil {
		out.Rootstock = &types.GrapevineRef{GvID: *row.RootstockGvID, Name: deref(row.RootstockName)}
	}
	if row.ConductionVyID != nil {
		out.Conduction = &types.VineyardRef{VyID: *row.ConductionVyID, Value: deref(row.ConductionValue)}
	}
	if row.ManagementVyID != nil {
		out.Management = &types.VineyardRef{VyID: *row.ManagementVyID, Value: deref(row.ManagementValue)}
	}
	if row.SectorRowID != nil {
		sector := &types.SectorRef{ID: *row.SectorRowID, Value: deref(row.SectorValue)}
		if row.FincaRowID != nil {
			sector.Finca = &types.FincaRef{ID: *row.FincaRowID, Value: deref(row.FincaValue)}
		}
		out.Sector = sector
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
