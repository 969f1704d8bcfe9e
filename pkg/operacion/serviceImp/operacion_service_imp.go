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
	"odisea/pkg/operacion/service"
	"odisea/pkg/operacion/types"
)

type OperacionSvc struct {
	db                 *gorm.DB
	log                zerolog.Logger
	defaultWarehouseID uint
}

func NewOperacionService(db *gorm.DB, log zerolog.Logger, defaultWarehouseID uint) service.OperacionService {
	return &OperacionSvc{db: db, log: log, defaultWarehouseID: defaultWarehouseID}
}

func (s *OperacionSvc) CreateWithInputs(req service.CreateRequest) (*types.OperacionResponse, error) {
	if req.TipoOperacion == "" {
		return nil, apperr.New(apperr.ValidationError, "tipo_operacion es obligatorio")
	}
	fechaInicio, err := types.ParseFecha(req.FechaInicio)
	if err != nil {
		return nil, err
	}
	fechaFin, err := types.ParseFecha(req.FechaFin)
	if err != nil {
		return nil, err
	}

	op := &entities.Operacion{
		ParcelaID:        req.ParcelaID,
		TipoOperacion:    req.TipoOperacion,
		FechaInicio:      fechaInicio,
		FechaFin:         fechaFin,
		ResponsableID:    req.ResponsableID,
		PorcentajeAvance: req.PorcentajeAvance,
		Jornales:         req.Jornales,
		Personas:         req.Personas,
	}
	if req.Estado != nil {
		op.Estado = *req.Estado
	}
	if req.Nota != nil {
		op.Nota = *req.Nota
	}
	if req.Comentario != nil {
		op.Comentario = *req.Comentario
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if op.ParcelaID != nil {
			var n int64
			if err := tx.Model(&entities.Plot{}).Where("plot_id = ?", *op.ParcelaID).Count(&n).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al crear operación", err)
			}
			if n == 0 {
				return apperr.New(apperr.ValidationError, "parcela no encontrada")
			}
		}
		if err := tx.Create(op).Error; err != nil {
			return apperr.Wrap(apperr.WriteError, "error al crear operación", err)
		}
		// op.ID is flushed here; every line hangs off it.
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
				return apperr.Wrap(apperr.WriteError, "error al crear consumo de operación", err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("tipo", req.TipoOperacion).Msg("operacion create rolled back")
		return nil, err
	}
	s.log.Info().Uint("operacion", op.ID).Int("inputs", len(req.Inputs)).Msg("operacion created")
	return s.Get(op.ID)
}

func (s *OperacionSvc) Get(id uint) (*types.OperacionResponse, error) {
	var op entities.Operacion
	if err := s.db.Preload("Inputs").First(&op, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "operación no encontrada")
		}
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener operación", err)
	}
	return types.FromEntity(&op, s.parcelaSummary(&op)), nil
}

func (s *OperacionSvc) parcelaSummary(op *entities.Operacion) *types.ParcelaSummary {
	if op.ParcelaID == nil {
		return nil
	}
	var p entities.Plot
	if err := s.db.Select("plot_id, plot_name").First(&p, "plot_id = ?", *op.ParcelaID).Error; err != nil {
		s.log.Warn().Err(err).Uint("parcela", *op.ParcelaID).Msg("parcela lookup failed")
		return nil
	}
	return &types.ParcelaSummary{PlotID: p.PlotID, PlotName: p.PlotName}
}

// Delete removes the operation and everything hanging off it, movements
// first, then the input lines, then the row itself.
func (s *OperacionSvc) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var op entities.Operacion
		if err := tx.First(&op, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "operación no encontrada")
			}
			return apperr.Wrap(apperr.QueryError, "error al obtener operación", err)
		}
		res := tx.Delete(&entities.InventoryMovement{}, "operation_id = ?", id)
		if res.Error != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar movimientos de la operación", res.Error)
		}
		s.log.Info().Uint("operacion", id).Int64("movimientos", res.RowsAffected).Msg("movements removed")

		res = tx.Delete(&entities.TaskInput{}, "operation_id = ?", id)
		if res.Error != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar consumos de la operación", res.Error)
		}
		s.log.Info().Uint("operacion", id).Int64("consumos", res.RowsAffected).Msg("task inputs removed")

		if err := tx.Delete(&entities.Operacion{}, id).Error; err != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar operación", err)
		}
		s.log.Info().Uint("operacion", id).Msg("operacion removed")
		return nil
	})
}

// ReplaceInputs swaps the full set of input lines for the operation. New
// lines land in the configured default warehouse with status "planned"; the
// movements booked by the original lines are left untouched.
func (s *OperacionSvc) ReplaceInputs(id uint, lines []service.ReplaceLine) (*types.OperacionResponse, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var op entities.Operacion
		if err := tx.First(&op, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "operación no encontrada")
			}
			return apperr.Wrap(apperr.QueryError, "error al obtener operación", err)
		}
		if err := tx.Delete(&entities.TaskInput{}, "operation_id = ?", id).Error; err != nil {
			return apperr.Wrap(apperr.WriteError, "error al reemplazar consumos", err)
		}
		for _, line := range lines {
			var n int64
			if err := tx.Model(&entities.Input{}).Where("id = ?", line.InputID).Count(&n).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al reemplazar consumos", err)
			}
			if n == 0 {
				return apperr.New(apperr.ValidationError, "input no encontrado")
			}
			ti := &entities.TaskInput{
				OperationID:  id,
				InputID:      line.InputID,
				WarehouseID:  s.defaultWarehouseID,
				UsedQuantity: line.UsedQuantity,
			}
			if err := tx.Create(ti).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al reemplazar consumos", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("operacion", id).Int("inputs", len(lines)).Msg("operacion inputs replaced")
	return s.Get(id)
}
