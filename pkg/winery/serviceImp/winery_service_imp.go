package serviceImp

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"odisea/entities"
	"odisea/pkg/apperr"
	inventoryImp "odisea/pkg/inventory/repositoryImp"
	"odisea/pkg/winery/service"
)

type WinerySvc struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewWineryService(db *gorm.DB, log zerolog.Logger) service.WineryService {
	return &WinerySvc{db: db, log: log}
}

// CreateActivityWithInputs creates the activity and, when it consumes
// inputs, a plotless backing operation carrying the task-input lines and
// exit movements. One transaction, all or nothing.
//
// The activity type is free text. The backing operation appears in the
// winery operation listing only when the type matches a winery entry in
// the task catalog; ad-hoc types still get their operation, movements
// and lines, but the type-filtered listing skips them.
func (s *WinerySvc) CreateActivityWithInputs(req service.ActivityRequest) (*entities.VesselActivity, error) {
	if req.ActivityType == "" {
		return nil, apperr.New(apperr.ValidationError, "activity_type es obligatorio")
	}
	act := &entities.VesselActivity{
		VesselID:     req.VesselID,
		BatchID:      req.BatchID,
		ActivityType: req.ActivityType,
		ActivityDate: req.ActivityDate,
		Estado:       "planned",
	}
	if req.Estado != nil {
		act.Estado = *req.Estado
	}
	if req.Nota != nil {
		act.Nota = *req.Nota
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.Vessel{}).Where("id = ?", req.VesselID).Count(&n).Error; err != nil {
			return apperr.Wrap(apperr.WriteError, "error al crear actividad", err)
		}
		if n == 0 {
			return apperr.New(apperr.ValidationError, "depósito no encontrado")
		}
		if req.BatchID != nil {
			if err := tx.Model(&entities.Batch{}).Where("id = ?", *req.BatchID).Count(&n).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al crear actividad", err)
			}
			if n == 0 {
				return apperr.New(apperr.ValidationError, "lote no encontrado")
			}
		}

		if len(req.Inputs) > 0 {
			op := &entities.Operacion{
				TipoOperacion: req.ActivityType,
				FechaInicio:   req.ActivityDate,
			}
			if err := tx.Create(op).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al crear actividad", err)
			}
			for _, line := range req.Inputs {
				opID := op.ID
				m := &entities.InventoryMovement{
					InputID:      line.InputID,
					WarehouseID:  line.WarehouseID,
					Quantity:     line.UsedQuantity,
					MovementType: entities.MovementExit,
					MovementDate: time.Now(),
					OperationID:  &opID,
					Description:  fmt.Sprintf("Consumo para operación %d", opID),
				}
				if err := inventoryImp.ApplyMovement(tx, m); err != nil {
					return err
				}
				ti := &entities.TaskInput{
					OperationID:     opID,
					InputID:         line.InputID,
					WarehouseID:     line.WarehouseID,
					UsedQuantity:    line.UsedQuantity,
					PlannedQuantity: line.PlannedQuantity,
				}
				if err := tx.Create(ti).Error; err != nil {
					return apperr.Wrap(apperr.WriteError, "error al crear consumo de actividad", err)
				}
			}
			act.OperationID = &op.ID
		}

		if err := tx.Create(act).Error; err != nil {
			return apperr.Wrap(apperr.WriteError, "error al crear actividad", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Uint("vessel", req.VesselID).Str("tipo", req.ActivityType).Msg("activity create rolled back")
		return nil, err
	}
	s.log.Info().Uint("actividad", act.ID).Int("inputs", len(req.Inputs)).Msg("activity created")
	return act, nil
}

// DeleteActivity removes the activity and, when one exists, its backing
// operation with all movements and input lines.
func (s *WinerySvc) DeleteActivity(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var act entities.VesselActivity
		if err := tx.First(&act, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "actividad no encontrada")
			}
			return apperr.Wrap(apperr.QueryError, "error al obtener actividad", err)
		}
		if act.OperationID != nil {
			opID := *act.OperationID
			res := tx.Delete(&entities.InventoryMovement{}, "operation_id = ?", opID)
			if res.Error != nil {
				return apperr.Wrap(apperr.WriteError, "error al eliminar movimientos de la actividad", res.Error)
			}
			s.log.Info().Uint("actividad", id).Int64("movimientos", res.RowsAffected).Msg("movements removed")
			res = tx.Delete(&entities.TaskInput{}, "operation_id = ?", opID)
			if res.Error != nil {
				return apperr.Wrap(apperr.WriteError, "error al eliminar consumos de la actividad", res.Error)
			}
			s.log.Info().Uint("actividad", id).Int64("consumos", res.RowsAffected).Msg("task inputs removed")
			if err := tx.Delete(&entities.Operacion{}, opID).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al eliminar operación de la actividad", err)
			}
		}
		if err := tx.Delete(&entities.VesselActivity{}, id).Error; err != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar actividad", err)
		}
		return nil
	})
}
