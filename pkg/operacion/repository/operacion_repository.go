package repository

import (
	"odisea/entities"
	"odisea/pkg/operacion/types"
)

// OperacionPatch carries date fields as strings so the patch path accepts
// the same plain-date payloads the create path does.
type OperacionPatch struct {
	ParcelaID        *uint    `json:"parcela_id"`
	TipoOperacion    *string  `json:"tipo_operacion"`
	FechaInicio      *string  `json:"fecha_inicio"`
	FechaFin         *string  `json:"fecha_fin"`
	Estado           *string  `json:"estado"`
	ResponsableID    *uint    `json:"responsable_id"`
	Nota             *string  `json:"nota"`
	Comentario       *string  `json:"comentario"`
	PorcentajeAvance *int     `json:"porcentaje_avance"`
	Jornales         *float64 `json:"jornales"`
	Personas         *int     `json:"personas"`
}

// OperacionRepository reads and patches operations. Creation and deletion go
// through the composer service, which owns the multi-table transaction.
type OperacionRepository interface {
	GetByID(id uint) (*entities.Operacion, error)
	List(skip, limit int) ([]types.OperacionListItem, error)
	ListByTaskType(taskType string, skip, limit int) ([]types.OperacionListItem, error)
	Update(id uint, patch OperacionPatch) (*entities.Operacion, error)

	ListTaskCatalog(taskType *string) ([]entities.TaskList, error)
	CreateTaskCatalog(t *entities.TaskList) (*entities.TaskList, error)
}
