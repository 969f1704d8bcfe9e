package service

import (
	"odisea/pkg/operacion/types"
)

// InputLine is one consumption line of a create request.
type InputLine struct {
	InputID         uint     `json:"input_id"`
	WarehouseID     uint     `json:"warehouse_id"`
	UsedQuantity    float64  `json:"used_quantity"`
	PlannedQuantity *float64 `json:"planned_quantity"`
}

// ReplaceLine is one line of the destructive input replace.
type ReplaceLine struct {
	InputID      uint    `json:"input_id"`
	UsedQuantity float64 `json:"used_quantity"`
}

// CreateRequest carries the operation header of a create-with-inputs call.
type CreateRequest struct {
	ParcelaID        *uint    `json:"parcela_id"`
	TipoOperacion    string   `json:"tipo_operacion"`
	FechaInicio      *string  `json:"fecha_inicio"`
	FechaFin         *string  `json:"fecha_fin"`
	Estado           *string  `json:"estado"`
	ResponsableID    *uint    `json:"responsable_id"`
	Nota             *string  `json:"nota"`
	Comentario       *string  `json:"comentario"`
	PorcentajeAvance *int     `json:"porcentaje_avance"`
	Jornales         *float64 `json:"jornales"`
	Personas         *int     `json:"personas"`

	Inputs []InputLine `json:"inputs"`
}

// OperacionService is the operation composer: multi-table writes that must
// land or roll back together.
type OperacionService interface {
	CreateWithInputs(req CreateRequest) (*types.OperacionResponse, error)
	Get(id uint) (*types.OperacionResponse, error)
	Delete(id uint) error
	ReplaceInputs(id uint, lines []ReplaceLine) (*types.OperacionResponse, error)
}
