package repositoryImp

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/winery/repository"
)

type wineryRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.WineryRepository { return &wineryRepo{db} }

func notFoundOr(err error, missing, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.NotFound, missing)
	}
	return apperr.Wrap(apperr.QueryError, msg, err)
}

func classifyWrite(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "unique") {
		return apperr.Wrap(apperr.DuplicateKey, msg+": registro duplicado", err)
	}
	return apperr.Wrap(apperr.WriteError, msg, err)
}

// ==================== vessels ====================

func (r *wineryRepo) CreateVessel(v *entities.Vessel) (*entities.Vessel, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return classifyWrite(err, "error al crear depósito")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *wineryRepo) GetVessel(id uint) (*entities.Vessel, error) {
	var v entities.Vessel
	if err := r.db.First(&v, id).Error; err != nil {
		return nil, notFoundOr(err, "depósito no encontrado", "error al obtener depósito")
	}
	return &v, nil
}

func (r *wineryRepo) ListVessels(skip, limit int, isActive *bool) ([]entities.Vessel, error) {
	q := r.db.Offset(skip).Limit(limit)
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}
	var out []entities.Vessel
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener depósitos", err)
	}
	return out, nil
}

func (r *wineryRepo) UpdateVessel(id uint, patch repository.VesselPatch) (*entities.Vessel, error) {
	var out entities.Vessel
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var v entities.Vessel
		if err := tx.First(&v, id).Error; err != nil {
			return notFoundOr(err, "depósito no encontrado", "error al obtener depósito")
		}
		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.VesselType != nil {
			updates["vessel_type"] = patch.VesselType
		}
		if patch.CapacityL != nil {
			updates["capacity_l"] = patch.CapacityL
		}
		if patch.Material != nil {
			updates["material"] = patch.Material
		}
		if patch.IsActive != nil {
			updates["is_active"] = *patch.IsActive
		}
		if len(updates) > 0 {
			if err := tx.Model(&v).Updates(updates).Error; err != nil {
				return classifyWrite(err, "error al actualizar depósito")
			}
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *wineryRepo) DeleteVessel(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&entities.Batch{}).Where("vessel_id = ?", id).Count(&refs).Error; err != nil {
			return apperr.Wrap(apperr.QueryError, "error al eliminar depósito", err)
		}
		if refs > 0 {
			return apperr.New(apperr.Conflict, "no se puede eliminar el depósito porque tiene lotes asociados")
		}
		if err := tx.Model(&entities.VesselActivity{}).Where("vessel_id = ?", id).Count(&refs).Error; err != nil {
			return apperr.Wrap(apperr.QueryError, "error al eliminar depósito", err)
		}
		if refs > 0 {
			return apperr.New(apperr.Conflict, "no se puede eliminar el depósito porque tiene actividades asociadas")
		}
		res := tx.Delete(&entities.Vessel{}, id)
		if res.Error != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar depósito", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "depósito no encontrado")
		}
		return nil
	})
}

// ==================== batches ====================

func (r *wineryRepo) CreateBatch(b *entities.Batch) (*entities.Batch, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if b.VesselID != nil {
			var n int64
			if err := tx.Model(&entities.Vessel{}).Where("id = ?", *b.VesselID).Count(&n).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al crear lote", err)
			}
			if n == 0 {
				return apperr.New(apperr.ValidationError, "depósito no encontrado")
			}
		}
		if err := tx.Create(b).Error; err != nil {
			return classifyWrite(err, "error al crear lote")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *wineryRepo) GetBatch(id uint) (*entities.Batch, error) {
	var b entities.Batch
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, notFoundOr(err, "lote no encontrado", "error al obtener lote")
	}
	return &b, nil
}

func (r *wineryRepo) ListBatches(skip, limit int, vesselID *uint) ([]entities.Batch, error) {
	q := r.db.Offset(skip).Limit(limit)
	if vesselID != nil {
		q = q.Where("vessel_id = ?", *vesselID)
	}
	var out []entities.Batch
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener lotes", err)
	}
	return out, nil
}

func (r *wineryRepo) UpdateBatch(id uint, patch repository.BatchPatch) (*entities.Batch, error) {
	var out entities.Batch
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var b entities.Batch
		if err := tx.First(&b, id).Error; err != nil {
			return notFoundOr(err, "lote no encontrado", "error al obtener lote")
		}
		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.VesselID != nil {
			var n int64
			if err := tx.Model(&entities.Vessel{}).Where("id = ?", *patch.VesselID).Count(&n).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al actualizar lote", err)
			}
			if n == 0 {
				return apperr.New(apperr.ValidationError, "depósito no encontrado")
			}
			updates["vessel_id"] = *patch.VesselID
		}
		if patch.VolumeL != nil {
			updates["volume_l"] = patch.VolumeL
		}
		if patch.Vintage != nil {
			updates["vintage"] = patch.Vintage
		}
		if patch.StartDate != nil {
			updates["start_date"] = patch.StartDate
		}
		if patch.Description != nil {
			updates["description"] = patch.Description
		}
		if len(updates) > 0 {
			if err := tx.Model(&b).Updates(updates).Error; err != nil {
				return classifyWrite(err, "error al actualizar lote")
			}
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *wineryRepo) DeleteBatch(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&entities.VesselActivity{}).Where("batch_id = ?", id).Count(&refs).Error; err != nil {
			return apperr.Wrap(apperr.QueryError, "error al eliminar lote", err)
		}
		if refs > 0 {
			return apperr.New(apperr.Conflict, "no se puede eliminar el lote porque tiene actividades asociadas")
		}
		res := tx.Delete(&entities.Batch{}, id)
		if res.Error != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar lote", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "lote no encontrado")
		}
		return nil
	})
}

// ==================== activities ====================

func (r *wineryRepo) GetActivity(id uint) (*entities.VesselActivity, error) {
	var a entities.VesselActivity
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, notFoundOr(err, "actividad no encontrada", "error al obtener actividad")
	}
	return &a, nil
}

func (r *wineryRepo) ListActivities(skip, limit int, vesselID, batchID *uint) ([]entities.VesselActivity, error) {
	q := r.db.Offset(skip).Limit(limit).Order("id DESC")
	if vesselID != nil {
		q = q.Where("vessel_id = ?", *vesselID)
	}
	if batchID != nil {
		q = q.Where("batch_id = ?", *batchID)
	}
	var out []entities.VesselActivity
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener actividades", err)
	}
	return out, nil
}

func (r *wineryRepo) UpdateActivity(id uint, patch repository.ActivityPatch) (*entities.VesselActivity, error) {
	var out entities.VesselActivity
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var a entities.VesselActivity
		if err := tx.First(&a, id).Error; err != nil {
			return notFoundOr(err, "actividad no encontrada", "error al obtener actividad")
		}
		updates := map[string]any{}
		if patch.BatchID != nil {
			var n int64
			if err := tx.Model(&entities.Batch{}).Where("id = ?", *patch.BatchID).Count(&n).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al actualizar actividad", err)
			}
			if n == 0 {
				return apperr.New(apperr.ValidationError, "lote no encontrado")
			}
			updates["batch_id"] = *patch.BatchID
		}
		if patch.ActivityType != nil {
			updates["activity_type"] = *patch.ActivityType
		}
		if patch.ActivityDate != nil {
			updates["activity_date"] = patch.ActivityDate
		}
		if patch.Estado != nil {
			updates["estado"] = *patch.Estado
		}
		if patch.Nota != nil {
			updates["nota"] = *patch.Nota
		}
		if len(updates) > 0 {
			if err := tx.Model(&a).Updates(updates).Error; err != nil {
				return classifyWrite(err, "error al actualizar actividad")
			}
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
