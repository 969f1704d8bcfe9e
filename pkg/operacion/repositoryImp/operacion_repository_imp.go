package repositoryImp

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/operacion/repository"
	"odisea/pkg/operacion/types"
)

type operacionRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.OperacionRepository { return &operacionRepo{db} }

const listSelect = `operaciones.id, operaciones.parcela_id, plots.plot_name,
operaciones.tipo_operacion, task_list.task_type,
operaciones.fecha_inicio, operaciones.fecha_fin, operaciones.estado,
COUNT(task_inputs.id) AS inputs_count, operaciones.creation_date`

// listing builds the aggregated row source: plot name, catalog task type and
// the input-line count per operation.
func (r *operacionRepo) listing() *gorm.DB {
	return r.db.Model(&entities.Operacion{}).
		Select(listSelect).
		Joins("LEFT JOIN plots ON plots.plot_id = operaciones.parcela_id").
		Joins("LEFT JOIN task_list ON task_list.task_name = operaciones.tipo_operacion").
		Joins("LEFT JOIN task_inputs ON task_inputs.operation_id = operaciones.id").
		Group("operaciones.id").
		Order("operaciones.creation_date DESC")
}

func (r *operacionRepo) GetByID(id uint) (*entities.Operacion, error) {
	var op entities.Operacion
	if err := r.db.Preload("Inputs").First(&op, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "operación no encontrada")
		}
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener operación", err)
	}
	return &op, nil
}

func (r *operacionRepo) List(skip, limit int) ([]types.OperacionListItem, error) {
	var out []types.OperacionListItem
	if err := r.listing().Offset(skip).Limit(limit).Scan(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener operaciones", err)
	}
	return out, nil
}

func (r *operacionRepo) ListByTaskType(taskType string, skip, limit int) ([]types.OperacionListItem, error) {
	if taskType != "vineyard" && taskType != "winery" {
		return nil, apperr.New(apperr.ValidationError, "task_type debe ser vineyard o winery")
	}
	var out []types.OperacionListItem
	err := r.listing().
		Where("task_list.task_type = ?", taskType).
		Offset(skip).Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener operaciones", err)
	}
	return out, nil
}

func (r *operacionRepo) Update(id uint, patch repository.OperacionPatch) (*entities.Operacion, error) {
	var out entities.Operacion
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var op entities.Operacion
		if err := tx.First(&op, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.New(apperr.NotFound, "operación no encontrada")
			}
			return apperr.Wrap(apperr.QueryError, "error al obtener operación", err)
		}
		updates := map[string]any{}
		if patch.ParcelaID != nil {
			var n int64
			if err := tx.Model(&entities.Plot{}).Where("plot_id = ?", *patch.ParcelaID).Count(&n).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al actualizar operación", err)
			}
			if n == 0 {
				return apperr.New(apperr.ValidationError, "parcela no encontrada")
			}
			updates["parcela_id"] = *patch.ParcelaID
		}
		if patch.TipoOperacion != nil {
			updates["tipo_operacion"] = *patch.TipoOperacion
		}
		if patch.FechaInicio != nil {
			t, err := types.ParseFecha(patch.FechaInicio)
			if err != nil {
				return err
			}
			updates["fecha_inicio"] = t
		}
		if patch.FechaFin != nil {
			t, err := types.ParseFecha(patch.FechaFin)
			if err != nil {
				return err
			}
			updates["fecha_fin"] = t
		}
		if patch.Estado != nil {
			updates["estado"] = *patch.Estado
		}
		if patch.ResponsableID != nil {
			updates["responsable_id"] = patch.ResponsableID
		}
		if patch.Nota != nil {
			updates["nota"] = *patch.Nota
		}
		if patch.Comentario != nil {
			updates["comentario"] = *patch.Comentario
		}
		if patch.PorcentajeAvance != nil {
			updates["porcentaje_avance"] = patch.PorcentajeAvance
		}
		if patch.Jornales != nil {
			updates["jornales"] = patch.Jornales
		}
		if patch.Personas != nil {
			updates["personas"] = patch.Personas
		}
		if len(updates) > 0 {
			if err := tx.Model(&op).Updates(updates).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al actualizar operación", err)
			}
		}
		return tx.Preload("Inputs").First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *operacionRepo) ListTaskCatalog(taskType *string) ([]entities.TaskList, error) {
	q := r.db.Order("task_name")
	if taskType != nil && *taskType != "" {
		q = q.Where("task_type = ?", *taskType)
	}
	var out []entities.TaskList
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener catálogo de tareas", err)
	}
	return out, nil
}

func (r *operacionRepo) CreateTaskCatalog(t *entities.TaskList) (*entities.TaskList, error) {
	if t.TaskType != "vineyard" && t.TaskType != "winery" {
		return nil, apperr.New(apperr.ValidationError, "task_type debe ser vineyard o winery")
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) ||
				strings.Contains(strings.ToLower(err.Error()), "unique") {
				return apperr.Wrap(apperr.DuplicateKey, "tarea ya existe", err)
			}
			return apperr.Wrap(apperr.WriteError, "error al crear tarea", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}
