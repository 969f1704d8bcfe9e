package repositoryImp

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/vineyard/repository"
)

type vineyardRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.VineyardRepository { return &vineyardRepo{db} }

func validKind(k string) bool {
	return k == entities.KindConduction || k == entities.KindManagement
}

func (r *vineyardRepo) Create(v *entities.Vineyard) (*entities.Vineyard, error) {
	if !validKind(v.Kind) {
		return nil, apperr.New(apperr.ValidationError, "kind debe ser conduction o management")
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) ||
				strings.Contains(strings.ToLower(err.Error()), "unique") {
				return apperr.Wrap(apperr.DuplicateKey, "atributo ya existe", err)
			}
			return apperr.Wrap(apperr.WriteError, "error al crear atributo", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vineyardRepo) GetByID(id string) (*entities.Vineyard, error) {
	var v entities.Vineyard
	if err := r.db.First(&v, "vy_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "atributo no encontrado")
		}
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener atributo", err)
	}
	return &v, nil
}

func (r *vineyardRepo) List(skip, limit int) ([]entities.Vineyard, error) {
	var out []entities.Vineyard
	if err := r.db.Offset(skip).Limit(limit).Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener atributos", err)
	}
	return out, nil
}

func (r *vineyardRepo) ListByKind(kind string) ([]entities.Vineyard, error) {
	if !validKind(kind) {
		return nil, apperr.New(apperr.ValidationError, "kind debe ser conduction o management")
	}
	var out []entities.Vineyard
	if err := r.db.Where("kind = ?", kind).Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener atributos", err)
	}
	return out, nil
}

func (r *vineyardRepo) Update(id string, patch repository.VineyardPatch) (*entities.Vineyard, error) {
	var out entities.Vineyard
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var v entities.Vineyard
		if err := tx.First(&v, "vy_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "atributo no encontrado")
			}
			return apperr.Wrap(apperr.QueryError, "error al obtener atributo", err)
		}
		updates := map[string]any{}
		if patch.Value != nil {
			updates["value"] = *patch.Value
		}
		if patch.Description != nil {
			updates["description"] = patch.Description
		}
		if patch.Kind != nil {
			if !validKind(*patch.Kind) {
				return apperr.New(apperr.ValidationError, "kind debe ser conduction o management")
			}
			updates["kind"] = *patch.Kind
		}
		if len(updates) > 0 {
			if err := tx.Model(&v).Updates(updates).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al actualizar atributo", err)
			}
		}
		return tx.First(&out, "vy_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *vineyardRepo) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var plots int64
		if err := tx.Model(&entities.Plot{}).
			Where("plot_conduction = ? OR plot_management = ?", id, id).
			Count(&plots).Error; err != nil {
			return apperr.Wrap(apperr.QueryError, "error al eliminar atributo", err)
		}
		if plots > 0 {
			return apperr.New(apperr.Conflict, "no se puede eliminar el atributo porque tiene parcelas asociadas")
		}
		res := tx.Delete(&entities.Vineyard{}, "vy_id = ?", id)
		if res.Error != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar atributo", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "atributo no encontrado")
		}
		return nil
	})
}
