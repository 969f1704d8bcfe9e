package entities

import "time"

// TaskList is the catalog of operation types, split between vineyard and
// winery work.
type TaskList struct {
	TaskName string `gorm:"primaryKey" json:"task_name"`
	TaskType string `gorm:"index;not null" json:"task_type"` // vineyard|winery
}

func (TaskList) TableName() string { return "task_list" }

// Operacion is a scheduled or executed task against a plot.
type Operacion struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	ParcelaID        *uint      `gorm:"index" json:"parcela_id"` // nil for winery work
	TipoOperacion    string     `gorm:"not null" json:"tipo_operacion"`
	FechaInicio      *time.Time `json:"fecha_inicio"`
	FechaFin         *time.Time `json:"fecha_fin"`
	Estado           string     `gorm:"default:planned" json:"estado"` // planned|in_progress|done|cancelled
	ResponsableID    *uint      `json:"responsable_id"`
	Nota             string     `json:"nota"`
	Comentario       string     `json:"comentario"`
	PorcentajeAvance *int       `json:"porcentaje_avance"`
	Jornales         *float64   `json:"jornales"`
	Personas         *int       `json:"personas"`
	CreationDate     time.Time  `gorm:"autoCreateTime" json:"creation_date"`

	Inputs []TaskInput `gorm:"foreignKey:OperationID" json:"inputs"`
}

func (Operacion) TableName() string { return "operaciones" }

// TaskInput is one inventory consumption line of an operation.
type TaskInput struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	OperationID     uint     `gorm:"index;not null" json:"operation_id"`
	InputID         uint     `gorm:"not null" json:"input_id"`
	WarehouseID     uint     `gorm:"not null" json:"warehouse_id"`
	UsedQuantity    float64  `json:"used_quantity"`
	PlannedQuantity *float64 `json:"planned_quantity"`
	Status          string   `gorm:"default:planned" json:"status"`
}

func (TaskInput) TableName() string { return "task_inputs" }
