package repository

import "odisea/entities"

type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type InputPatch struct {
	Name        *string  `json:"name"`
	CategoryID  *uint    `json:"category_id"`
	Unit        *string  `json:"unit"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	IsActive    *bool    `json:"is_active"`
}

type WarehousePatch struct {
	Name          *string `json:"name"`
	WarehouseType *string `json:"warehouse_type"`
	Location      *string `json:"location"`
}

// StockDetail is the stock row joined with its input and warehouse names.
type StockDetail struct {
	ID            uint    `json:"id"`
	InputID       uint    `json:"input_id"`
	InputName     string  `json:"input_name"`
	Unit          string  `json:"unit"`
	WarehouseID   uint    `json:"warehouse_id"`
	WarehouseName string  `json:"warehouse_name"`
	Quantity      float64 `json:"quantity"`
}

type InventoryRepository interface {
	CreateCategory(c *entities.InputCategory) (*entities.InputCategory, error)
	GetCategory(id uint) (*entities.InputCategory, error)
	ListCategories(skip, limit int) ([]entities.InputCategory, error)
	UpdateCategory(id uint, patch CategoryPatch) (*entities.InputCategory, error)
	DeleteCategory(id uint) error

	// CreateInput optionally books the initial stock in one transaction when
	// warehouseID is set and quantity is positive.
	CreateInput(in *entities.Input, warehouseID *uint, initialQuantity float64) (*entities.Input, error)
	GetInput(id uint) (*entities.Input, error)
	ListInputs(skip, limit int, categoryID *uint, isActive *bool) ([]entities.Input, error)
	UpdateInput(id uint, patch InputPatch) (*entities.Input, error)
	DeleteInput(id uint) error

	CreateWarehouse(w *entities.Warehouse) (*entities.Warehouse, error)
	GetWarehouse(id uint) (*entities.Warehouse, error)
	ListWarehouses(skip, limit int, warehouseType *string) ([]entities.Warehouse, error)
	UpdateWarehouse(id uint, patch WarehousePatch) (*entities.Warehouse, error)
	DeleteWarehouse(id uint) error

	CreateStock(s *entities.InputStock) (*entities.InputStock, error)
	GetStock(id uint) (*entities.InputStock, error)
	GetStockByInputWarehouse(inputID, warehouseID uint) (*entities.InputStock, error)
	ListStocks(skip, limit int, inputID, warehouseID *uint) ([]entities.InputStock, error)
	ListStockDetails(skip, limit int, inputID, warehouseID *uint) ([]StockDetail, error)

	// CreateMovement books a ledger entry and applies it to the matching
	// stock row atomically.
	CreateMovement(m *entities.InventoryMovement) (*entities.InventoryMovement, error)
}
