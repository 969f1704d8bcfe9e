package repositoryImp

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/sector/repository"
)

type sectorRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SectorRepository { return &sectorRepo{db} }

func fincaByID(tx *gorm.DB, id uint) (*entities.Finca, error) {
	var f entities.Finca
	if err := tx.First(&f, "finca_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "finca no encontrada")
		}
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener finca", err)
	}
	return &f, nil
}

// etiqueta derives the display tag from the owning finca and the sector
// value.
func etiqueta(finca *entities.Finca, value string) string {
	return finca.Value + " - " + value
}

func (r *sectorRepo) Create(s *entities.Sector) (*entities.Sector, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		finca, err := fincaByID(tx, s.FincaID)
		if err != nil {
			return err
		}
		s.Etiqueta = etiqueta(finca, s.Value)
		if err := tx.Create(s).Error; err != nil {
			return apperr.Wrap(apperr.WriteError, "error al crear sector", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *sectorRepo) GetByID(id uint) (*entities.Sector, error) {
	var s entities.Sector
	if err := r.db.Preload("Finca").First(&s, "sector_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "sector no encontrado")
		}
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener sector", err)
	}
	return &s, nil
}

func (r *sectorRepo) List(skip, limit int) ([]entities.Sector, error) {
	var sectores []entities.Sector
	if err := r.db.Preload("Finca").Offset(skip).Limit(limit).Find(&sectores).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener sectores", err)
	}
	return sectores, nil
}

func (r *sectorRepo) ListByFinca(fincaID uint) ([]entities.Sector, error) {
	if _, err := fincaByID(r.db, fincaID); err != nil {
		return nil, err
	}
	var sectores []entities.Sector
	if err := r.db.Preload("Finca").Where("finca_id = ?", fincaID).Find(&sectores).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener sectores", err)
	}
	return sectores, nil
}

func (r *sectorRepo) Update(id uint, patch repository.SectorPatch) (*entities.Sector, error) {
	var out entities.Sector
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var s entities.Sector
		if err := tx.First(&s, "sector_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "sector no encontrado")
			}
			return apperr.Wrap(apperr.QueryError, "error al obtener sector", err)
		}

		fincaID := s.FincaID
		if patch.FincaID != nil {
			fincaID = *patch.FincaID
		}
		finca, err := fincaByID(tx, fincaID)
		if err != nil {
			return err
		}
		value := s.Value
		if patch.Value != nil {
			value = *patch.Value
		}

		updates := map[string]any{
			"finca_id": fincaID,
			"value":    value,
			"etiqueta": etiqueta(finca, value),
		}
		if patch.Description != nil {
			updates["description"] = patch.Description
		}
		if err := tx.Model(&s).Updates(updates).Error; err != nil {
			return apperr.Wrap(apperr.WriteError, "error al actualizar sector", err)
		}
		return tx.Preload("Finca").First(&out, "sector_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sectorRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var s entities.Sector
		if err := tx.First(&s, "sector_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "sector no encontrado")
			}
			return apperr.Wrap(apperr.QueryError, "error al obtener sector", err)
		}
		var plots int64
		if err := tx.Model(&entities.Plot{}).Where("sector_id = ?", id).Count(&plots).Error; err != nil {
			return apperr.Wrap(apperr.QueryError, "error al eliminar sector", err)
		}
		if plots > 0 {
			return apperr.New(apperr.Conflict, "no se puede eliminar el sector porque tiene plots asociados")
		}
		if err := tx.Delete(&s).Error; err != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar sector", err)
		}
		return nil
	})
}

func (r *sectorRepo) Search(term string) ([]entities.Sector, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var sectores []entities.Sector
	err := r.db.Preload("Finca").
		Where("LOWER(value) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ? OR LOWER(etiqueta) LIKE ?",
			pattern, pattern, pattern).
		Find(&sectores).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al buscar sectores", err)
	}
	return sectores, nil
}

func (r *sectorRepo) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&entities.Sector{}).Count(&n).Error; err != nil {
		return 0, apperr.Wrap(apperr.QueryError, "error al contar sectores", err)
	}
	return n, nil
}

func (r *sectorRepo) CountByFinca(fincaID uint) (int64, error) {
	if _, err := fincaByID(r.db, fincaID); err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.Model(&entities.Sector{}).Where("finca_id = ?", fincaID).Count(&n).Error; err != nil {
		return 0, apperr.Wrap(apperr.QueryError, "error al contar sectores", err)
	}
	return n, nil
}
