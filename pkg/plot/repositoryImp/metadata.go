package repositoryImp

import (
	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/plot/types"
)

// Metadata loads the full reference-data snapshot for client dropdowns: no
// filters, no pagination.
func (r *plotRepo) Metadata() (*types.Metadata, error) {
	wrap := func(err error) error {
		return apperr.Wrap(apperr.QueryError, "error al obtener metadatos", err)
	}

	var varieties, rootstocks []entities.Grapevine
	if err := r.db.Where("gv_id LIKE ?", entities.VarietyPrefix+"%").Find(&varieties).Error; err != nil {
		return nil, wrap(err)
	}
	if err := r.db.Where("gv_id LIKE ?", entities.RootstockPrefix+"%").Find(&rootstocks).Error; err != nil {
		return nil, wrap(err)
	}

	var conduction, management []entities.Vineyard
	if err := r.db.Where("kind = ?", entities.KindConduction).Find(&conduction).Error; err != nil {
		return nil, wrap(err)
	}
	if err := r.db.Where("kind = ?", entities.KindManagement).Find(&management).Error; err != nil {
		return nil, wrap(err)
	}

	var sectores []entities.Sector
	if err := r.db.Find(&sectores).Error; err != nil {
		return nil, wrap(err)
	}
	var fincas []entities.Finca
	if err := r.db.Find(&fincas).Error; err != nil {
		return nil, wrap(err)
	}

	meta := &types.Metadata{
		Varieties:         make([]types.GrapevineInfo, 0, len(varieties)),
		Rootstocks:        make([]types.GrapevineInfo, 0, len(rootstocks)),
		ConductionSystems: make([]types.VineyardInfo, 0, len(conduction)),
		ManagementTypes:   make([]types.VineyardInfo, 0, len(management)),
		Sectores:          make([]types.SectorInfo, 0, len(sectores)),
		Fincas:            make([]types.FincaInfo, 0, len(fincas)),
	}
	for _, v := range varieties {
		meta.Varieties = append(meta.Varieties, types.GrapevineInfo{GvID: v.GvID, Name: v.Name, Color: v.Color, GvType: v.GvType})
	}
	for _, rk := range rootstocks {
		meta.Rootstocks = append(meta.Rootstocks, types.GrapevineInfo{GvID: rk.GvID, Name: rk.Name, Color: rk.Color, GvType: rk.GvType})
	}
	for _, c := range conduction {
		meta.ConductionSystems = append(meta.ConductionSystems, types.VineyardInfo{VyID: c.VyID, Value: c.Value, Description: c.Description})
	}
	for _, m := range management {
		meta.ManagementTypes = append(meta.ManagementTypes, types.VineyardInfo{VyID: m.VyID, Value: m.Value, Description: m.Description})
	}
	for _, s := range sectores {
		meta.Sectores = append(meta.Sectores, types.SectorInfo{ID: s.SectorID, Value: s.Value, Finca: s.FincaID, Etiqueta: s.Etiqueta, Description: s.Description})
	}
	for _, f := range fincas {
		meta.Fincas = append(meta.Fincas, types.FincaInfo{ID: f.FincaID, Value: f.Value, Description: f.Description})
	}
	return meta, nil
}
