package entities

import "time"

// Movement types for the stock ledger.
const (
	MovementEntry = "entry"
	MovementExit  = "exit"
)

type InputCategory struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"uniqueIndex;not null" json:"name"`
	Description *string `json:"description"`
}

func (InputCategory) TableName() string { return "input_categories" }

// Input is a consumable inventory item (fertilizer, sulphur, yeast...).
type Input struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	Name        string   `gorm:"not null" json:"name"`
	CategoryID  *uint    `gorm:"index" json:"category_id"`
	Unit        string   `json:"unit"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	IsActive    bool     `gorm:"default:true" json:"is_active"`
}

func (Input) TableName() string { return "inputs" }

type Warehouse struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"not null" json:"name"`
	WarehouseType *string `json:"warehouse_type"`
	Location      *string `json:"location"`
}

func (Warehouse) TableName() string { return "warehouses" }

// InputStock is the current on-hand quantity of an input in a warehouse.
// One row per input/warehouse pair; movements adjust it.
type InputStock struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	InputID     uint    `gorm:"uniqueIndex:idx_input_warehouse;not null" json:"input_id"`
	WarehouseID uint    `gorm:"uniqueIndex:idx_input_warehouse;not null" json:"warehouse_id"`
	Quantity    float64 `json:"quantity"`
}

func (InputStock) TableName() string { return "input_stocks" }

// InventoryMovement is a ledger entry for stock entering or leaving a
// warehouse. Exit movements created by the operation composer carry the
// operation back-reference.
type InventoryMovement struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	InputID      uint      `gorm:"index;not null" json:"input_id"`
	WarehouseID  uint      `gorm:"index;not null" json:"warehouse_id"`
	Quantity     float64   `json:"quantity"`
	MovementType string    `gorm:"not null" json:"movement_type"` // entry|exit
	MovementDate time.Time `json:"movement_date"`
	OperationID  *uint     `gorm:"index" json:"operation_id"`
	Description  string    `json:"description"`
}

func (InventoryMovement) TableName() string { return "inventory_movements" }
