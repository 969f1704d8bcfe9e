package types

import (
	"time"

	"odisea/entities"
	"odisea/pkg/apperr"
)

// ParseFecha accepts plain dates and RFC3339 timestamps. Nil or empty
// input means "no date".
func ParseFecha(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", *s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, apperr.New(apperr.ValidationError, "fecha inválida: "+*s)
	}
	return &t, nil
}

// ParcelaSummary is the minimal plot reference attached to an operation
// response. Nil when the operation is winery work.
type ParcelaSummary struct {
	PlotID   uint   `json:"plot_id"`
	PlotName string `json:"plot_name"`
}

// OperacionResponse is an operation with its consumption lines and the
// resolved plot summary.
type OperacionResponse struct {
	ID               uint                 `json:"id"`
	ParcelaID        *uint                `json:"parcela_id"`
	TipoOperacion    string               `json:"tipo_operacion"`
	FechaInicio      *time.Time           `json:"fecha_inicio"`
	FechaFin         *time.Time           `json:"fecha_fin"`
	Estado           string               `json:"estado"`
	ResponsableID    *uint                `json:"responsable_id"`
	Nota             string               `json:"nota"`
	Comentario       string               `json:"comentario"`
	PorcentajeAvance *int                 `json:"porcentaje_avance"`
	Jornales         *float64             `json:"jornales"`
	Personas         *int                 `json:"personas"`
	CreationDate     time.Time            `json:"creation_date"`
	Inputs           []entities.TaskInput `json:"inputs"`
	Parcela          *ParcelaSummary      `json:"parcela"`
}

// OperacionListItem is one row of the operation listings, with the plot name
// and input-line count aggregated in the query.
type OperacionListItem struct {
	ID            uint       `json:"id"`
	ParcelaID     *uint      `json:"parcela_id"`
	PlotName      *string    `json:"plot_name"`
	TipoOperacion string     `json:"tipo_operacion"`
	TaskType      *string    `json:"task_type"`
	FechaInicio   *time.Time `json:"fecha_inicio"`
	FechaFin      *time.Time `json:"fecha_fin"`
	Estado        string     `json:"estado"`
	InputsCount   int64      `json:"inputs_count"`
	CreationDate  time.Time  `json:"creation_date"`
}

// FromEntity builds the response envelope; the caller resolves the parcela.
func FromEntity(op *entities.Operacion, parcela *ParcelaSummary) *OperacionResponse {
	return &OperacionResponse{
		ID:               op.ID,
		ParcelaID:        op.ParcelaID,
		TipoOperacion:    op.TipoOperacion,
		FechaInicio:      op.FechaInicio,
		FechaFin:         op.FechaFin,
		Estado:           op.Estado,
		ResponsableID:    op.ResponsableID,
		Nota:             op.Nota,
		Comentario:       op.Comentario,
		PorcentajeAvance: op.PorcentajeAvance,
		Jornales:         op.Jornales,
		Personas:         op.Personas,
		CreationDate:     op.CreationDate,
		Inputs:           op.Inputs,
		Parcela:          parcela,
	}
}
