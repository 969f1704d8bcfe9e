package repositoryImp

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/grapevine/repository"
)

type grapevineRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.GrapevineRepository { return &grapevineRepo{db} }

func (r *grapevineRepo) Create(g *entities.Grapevine) (*entities.Grapevine, error) {
	// The id prefix is the kind discriminator; reject ids outside the two
	// known families so the metadata partition stays total.
	if !strings.HasPrefix(g.GvID, entities.RootstockPrefix) &&
		!strings.HasPrefix(g.GvID, entities.VarietyPrefix) {
		return nil, apperr.New(apperr.ValidationError, "gv_id debe empezar por M o PI")
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) ||
				strings.Contains(strings.ToLower(err.Error()), "unique") {
				return apperr.Wrap(apperr.DuplicateKey, "grapevine ya existe", err)
			}
			return apperr.Wrap(apperr.WriteError, "error al crear grapevine", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (r *grapevineRepo) GetByID(id string) (*entities.Grapevine, error) {
	var g entities.Grapevine
	if err := r.db.First(&g, "gv_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "grapevine no encontrada")
		}
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener grapevine", err)
	}
	return &g, nil
}

func (r *grapevineRepo) List(skip, limit int) ([]entities.Grapevine, error) {
	var out []entities.Grapevine
	if err := r.db.Offset(skip).Limit(limit).Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener grapevines", err)
	}
	return out, nil
}

func (r *grapevineRepo) Update(id string, patch repository.GrapevinePatch) (*entities.Grapevine, error) {
	var out entities.Grapevine
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var g entities.Grapevine
		if err := tx.First(&g, "gv_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "grapevine no encontrada")
			}
			return apperr.Wrap(apperr.QueryError, "error al obtener grapevine", err)
		}
		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.Color != nil {
			updates["color"] = patch.Color
		}
		if patch.GvType != nil {
			updates["gv_type"] = patch.GvType
		}
		if len(updates) > 0 {
			if err := tx.Model(&g).Updates(updates).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al actualizar grapevine", err)
			}
		}
		return tx.First(&out, "gv_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *grapevineRepo) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var plots int64
		if err := tx.Model(&entities.Plot{}).
			Where("plot_var = ? OR plot_rootstock = ?", id, id).
			Count(&plots).Error; err != nil {
			return apperr.Wrap(apperr.QueryError, "error al eliminar grapevine", err)
		}
		if plots > 0 {
			return apperr.New(apperr.Conflict, "no se puede eliminar la grapevine porque tiene parcelas asociadas")
		}
		res := tx.Delete(&entities.Grapevine{}, "gv_id = ?", id)
		if res.Error != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar grapevine", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "grapevine no encontrada")
		}
		return nil
	})
}
