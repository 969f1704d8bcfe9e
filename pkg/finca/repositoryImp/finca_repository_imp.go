package repositoryImp

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/finca/repository"
)

type fincaRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FincaRepository { return &fincaRepo{db} }

func (r *fincaRepo) Create(f *entities.Finca) (*entities.Finca, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(f).Error; err != nil {
			return classifyWrite(err, "error al crear finca", "finca con ese value ya existe")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *fincaRepo) GetByID(id uint) (*entities.Finca, error) {
	var f entities.Finca
	if err := r.db.First(&f, "finca_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "finca no encontrada")
		}
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener finca", err)
	}
	return &f, nil
}

func (r *fincaRepo) List(skip, limit int) ([]entities.Finca, error) {
	var fincas []entities.Finca
	if err := r.db.Offset(skip).Limit(limit).Find(&fincas).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener fincas", err)
	}
	return fincas, nil
}

func (r *fincaRepo) Update(id uint, patch repository.FincaPatch) (*entities.Finca, error) {
	var out entities.Finca
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var f entities.Finca
		if err := tx.First(&f, "finca_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "finca no encontrada")
			}
			return apperr.Wrap(apperr.QueryError, "error al obtener finca", err)
		}
		updates := map[string]any{}
		if patch.Value != nil {
			updates["value"] = *patch.Value
		}
		if patch.Description != nil {
			updates["description"] = patch.Description
		}
		if len(updates) > 0 {
			if err := tx.Model(&f).Updates(updates).Error; err != nil {
				return classifyWrite(err, "error al actualizar finca", "finca con ese value ya existe")
			}
			// The sector display tag embeds the finca value; keep it current.
			if patch.Value != nil {
				if err := tx.Model(&entities.Sector{}).
					Where("finca_id = ?", id).
					Update("etiqueta", gorm.Expr("? || ' - ' || value", *patch.Value)).Error; err != nil {
					return apperr.Wrap(apperr.WriteError, "error al actualizar finca", err)
				}
			}
		}
		return tx.First(&out, "finca_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *fincaRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var f entities.Finca
		if err := tx.First(&f, "finca_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "finca no encontrada")
			}
			return apperr.Wrap(apperr.QueryError, "error al obtener finca", err)
		}
		var sectores int64
		if err := tx.Model(&entities.Sector{}).Where("finca_id = ?", id).Count(&sectores).Error; err != nil {
			return apperr.Wrap(apperr.QueryError, "error al eliminar finca", err)
		}
		if sectores > 0 {
			return apperr.New(apperr.Conflict, "no se puede eliminar la finca porque tiene sectores asociados")
		}
		if err := tx.Delete(&f).Error; err != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar finca", err)
		}
		return nil
	})
}

func (r *fincaRepo) Search(term string) ([]entities.Finca, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var fincas []entities.Finca
	err := r.db.
		Where("LOWER(value) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", pattern, pattern).
		Find(&fincas).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al buscar fincas", err)
	}
	return fincas, nil
}

func (r *fincaRepo) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&entities.Finca{}).Count(&n).Error; err != nil {
		return 0, apperr.Wrap(apperr.QueryError, "error al contar fincas", err)
	}
	return n, nil
}

func classifyWrite(err error, msg, dupMsg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "unique") {
		return apperr.Wrap(apperr.DuplicateKey, dupMsg, err)
	}
	return apperr.Wrap(apperr.WriteError, msg, err)
}
