package repositoryImp

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/geometry"
	"odisea/pkg/plot/repository"
)

type plotRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlotRepository { return &plotRepo{db} }

// grapevineExists backs the referential check on variety/rootstock writes.
// Any grapevine row satisfies it, regardless of kind prefix.
func grapevineExists(tx *gorm.DB, gvID string) (bool, error) {
	var n int64
	if err := tx.Model(&entities.Grapevine{}).Where("gv_id = ?", gvID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *plotRepo) Create(p *entities.Plot) (*entities.Plot, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		ok, err := grapevineExists(tx, p.PlotVar)
		if err != nil {
			return apperr.Wrap(apperr.WriteError, "error al crear la parcela", err)
		}
		if !ok {
			return apperr.New(apperr.ValidationError, "variedad no encontrada")
		}
		if p.PlotRootstock != nil && *p.PlotRootstock != "" {
			ok, err := grapevineExists(tx, *p.PlotRootstock)
			if err != nil {
				return apperr.Wrap(apperr.WriteError, "error al crear la parcela", err)
			}
			if !ok {
				return apperr.New(apperr.ValidationError, "portainjerto no encontrado")
			}
		}

		geom, err := geometry.Normalize(p.PlotGeom)
		if err != nil {
			return err
		}
		p.PlotGeom = geom

		if err := tx.Create(p).Error; err != nil {
			return classifyWrite(err, "error al crear la parcela")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *plotRepo) GetByID(id uint) (*entities.Plot, error) {
	var p entities.Plot
	if err := r.db.First(&p, "plot_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "parcela no encontrada")
		}
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener la parcela", err)
	}
	return &p, nil
}

func (r *plotRepo) List(activeOnly bool, skip, limit int) ([]entities.Plot, error) {
	var plots []entities.Plot
	q := r.db.Offset(skip).Limit(limit)
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if err := q.Find(&plots).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener las parcelas", err)
	}
	return plots, nil
}

func (r *plotRepo) Update(id uint, patch repository.PlotPatch) (*entities.Plot, error) {
	var out entities.Plot
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var p entities.Plot
		if err := tx.First(&p, "plot_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "parcela no encontrada")
			}
			return apperr.Wrap(apperr.QueryError, "error al obtener la parcela", err)
		}

		updates := map[string]any{}
		if patch.PlotVar != nil {
			ok, err := grapevineExists(tx, *patch.PlotVar)
			if err != nil {
				return apperr.Wrap(apperr.WriteError, "error al actualizar la parcela", err)
			}
			if !ok {
				return apperr.New(apperr.ValidationError, "variedad no encontrada")
			}
			updates["plot_var"] = *patch.PlotVar
		}
		if patch.PlotRootstock != nil {
			if *patch.PlotRootstock != "" {
				ok, err := grapevineExists(tx, *patch.PlotRootstock)
				if err != nil {
					return apperr.Wrap(apperr.WriteError, "error al actualizar la parcela", err)
				}
				if !ok {
					return apperr.New(apperr.ValidationError, "portainjerto no encontrado")
				}
			}
			updates["plot_rootstock"] = patch.PlotRootstock
		}
		if patch.PlotGeom != nil {
			geom, err := geometry.Normalize(*patch.PlotGeom)
			if err != nil {
				return err
			}
			updates["plot_geom"] = geom
		}
		if patch.PlotName != nil {
			updates["plot_name"] = *patch.PlotName
		}
		if patch.PlotConduction != nil {
			updates["plot_conduction"] = patch.PlotConduction
		}
		if patch.PlotManagement != nil {
			updates["plot_management"] = patch.PlotManagement
		}
		if patch.PlotImplantYear != nil {
			updates["plot_implant_year"] = patch.PlotImplantYear
		}
		if patch.PlotCreationYear != nil {
			updates["plot_creation_year"] = patch.PlotCreationYear
		}
		if patch.PlotDescription != nil {
			updates["plot_description"] = patch.PlotDescription
		}
		if patch.PlotArea != nil {
			updates["plot_area"] = patch.PlotArea
		}
		if patch.SectorID != nil {
			updates["sector_id"] = patch.SectorID
		}
		if patch.Active != nil {
			updates["active"] = *patch.Active
		}

		if len(updates) > 0 {
			if err := tx.Model(&p).Updates(updates).Error; err != nil {
				return classifyWrite(err, "error al actualizar la parcela")
			}
		}
		if err := tx.First(&out, "plot_id = ?", id).Error; err != nil {
			return apperr.Wrap(apperr.QueryError, "error al obtener la parcela", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *plotRepo) DeletePermanent(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&entities.Plot{}, "plot_id = ?", id)
		if res.Error != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar la parcela", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "parcela no encontrada")
		}
		return nil
	})
}

func (r *plotRepo) Archive(id uint) (*entities.Plot, error) {
	return r.setActive(id, false)
}

func (r *plotRepo) Activate(id uint) (*entities.Plot, error) {
	return r.setActive(id, true)
}

func (r *plotRepo) setActive(id uint, active bool) (*entities.Plot, error) {
	var out entities.Plot
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Plot{}).Where("plot_id = ?", id).Update("active", active)
		if res.Error != nil {
			return apperr.Wrap(apperr.WriteError, "error al archivar la parcela", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "parcela no encontrada")
		}
		return tx.First(&out, "plot_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// classifyWrite turns a backend write failure into the taxonomy: uniqueness
// violations become DuplicateKey, everything else WriteError.
func classifyWrite(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "unique") {
		return apperr.Wrap(apperr.DuplicateKey, msg+": registro duplicado", err)
	}
	return apperr.Wrap(apperr.WriteError, msg, err)
}
