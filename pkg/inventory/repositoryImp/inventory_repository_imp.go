package repositoryImp

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/inventory/repository"
)

type inventoryRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.InventoryRepository { return &inventoryRepo{db} }

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

// ==================== categories ====================

func (r *inventoryRepo) CreateCategory(c *entities.InputCategory) (*entities.InputCategory, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return classifyWrite(err, "error al crear categoría")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *inventoryRepo) GetCategory(id uint) (*entities.InputCategory, error) {
	var c entities.InputCategory
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, notFoundOr(err, "categoría no encontrada", "error al obtener categoría")
	}
	return &c, nil
}

func (r *inventoryRepo) ListCategories(skip, limit int) ([]entities.InputCategory, error) {
	var out []entities.InputCategory
	if err := r.db.Offset(skip).Limit(limit).Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener categorías", err)
	}
	return out, nil
}

func (r *inventoryRepo) UpdateCategory(id uint, patch repository.CategoryPatch) (*entities.InputCategory, error) {
	var out entities.InputCategory
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var c entities.InputCategory
		if err := tx.First(&c, id).Error; err != nil {
			return notFoundOr(err, "categoría no encontrada", "error al obtener categoría")
		}
		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.Description != nil {
			updates["description"] = patch.Description
		}
		if len(updates) > 0 {
			if err := tx.Model(&c).Updates(updates).Error; err != nil {
				return classifyWrite(err, "error al actualizar categoría")
			}
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *inventoryRepo) DeleteCategory(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var inputs int64
		if err := tx.Model(&entities.Input{}).Where("category_id = ?", id).Count(&inputs).Error; err != nil {
			return apperr.Wrap(apperr.QueryError, "error al eliminar categoría", err)
		}
		if inputs > 0 {
			return apperr.New(apperr.Conflict, "no se puede eliminar la categoría porque tiene inputs asociados")
		}
		res := tx.Delete(&entities.InputCategory{}, id)
		if res.Error != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar categoría", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "categoría no encontrada")
		}
		return nil
	})
}

// ==================== inputs ====================

func (r *inventoryRepo) CreateInput(in *entities.Input, warehouseID *uint, initialQuantity float64) (*entities.Input, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if in.CategoryID != nil {
			var n int64
			if err := tx.Model(&entities.InputCategory{}).Where("id = ?", *in.CategoryID).Count(&n).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al crear input", err)
			}
			if n == 0 {
				return apperr.New(apperr.ValidationError, "categoría no encontrada")
			}
		}
		if err := tx.Create(in).Error; err != nil {
			return classifyWrite(err, "error al crear input")
		}
		if warehouseID != nil && initialQuantity > 0 {
			stock := &entities.InputStock{InputID: in.ID, WarehouseID: *warehouseID, Quantity: 0}
			if err := tx.Create(stock).Error; err != nil {
				return classifyWrite(err, "error al crear stock inicial")
			}
			m := &entities.InventoryMovement{
				InputID:      in.ID,
				WarehouseID:  *warehouseID,
				Quantity:     initialQuantity,
				MovementType: entities.MovementEntry,
				Description:  "Stock inicial",
			}
			if err := ApplyMovement(tx, m); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return in, nil
}

func (r *inventoryRepo) GetInput(id uint) (*entities.Input, error) {
	var in entities.Input
	if err := r.db.First(&in, id).Error; err != nil {
		return nil, notFoundOr(err, "input no encontrado", "error al obtener input")
	}
	return &in, nil
}

func (r *inventoryRepo) ListInputs(skip, limit int, categoryID *uint, isActive *bool) ([]entities.Input, error) {
	q := r.db.Offset(skip).Limit(limit)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}
	var out []entities.Input
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener inputs", err)
	}
	return out, nil
}

func (r *inventoryRepo) UpdateInput(id uint, patch repository.InputPatch) (*entities.Input, error) {
	var out entities.Input
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var in entities.Input
		if err := tx.First(&in, id).Error; err != nil {
			return notFoundOr(err, "input no encontrado", "error al obtener input")
		}
		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.CategoryID != nil {
			var n int64
			if err := tx.Model(&entities.InputCategory{}).Where("id = ?", *patch.CategoryID).Count(&n).Error; err != nil {
				return apperr.Wrap(apperr.WriteError, "error al actualizar input", err)
			}
			if n == 0 {
				return apperr.New(apperr.ValidationError, "categoría no encontrada")
			}
			updates["category_id"] = *patch.CategoryID
		}
		if patch.Unit != nil {
			updates["unit"] = *patch.Unit
		}
		if patch.Description != nil {
			updates["description"] = patch.Description
		}
		if patch.Price != nil {
			updates["price"] = patch.Price
		}
		if patch.IsActive != nil {
			updates["is_active"] = *patch.IsActive
		}
		if len(updates) > 0 {
			if err := tx.Model(&in).Updates(updates).Error; err != nil {
				return classifyWrite(err, "error al actualizar input")
			}
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *inventoryRepo) DeleteInput(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&entities.TaskInput{}).Where("input_id = ?", id).Count(&refs).Error; err != nil {
			return apperr.Wrap(apperr.QueryError, "error al eliminar input", err)
		}
		if refs > 0 {
			return apperr.New(apperr.Conflict, "no se puede eliminar el input porque tiene consumos asociados")
		}
		// Stock rows belong to the input; they go with it.
		if err := tx.Delete(&entities.InputStock{}, "input_id = ?", id).Error; err != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar input", err)
		}
		res := tx.Delete(&entities.Input{}, id)
		if res.Error != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar input", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "input no encontrado")
		}
		return nil
	})
}

// ==================== warehouses ====================

func (r *inventoryRepo) CreateWarehouse(w *entities.Warehouse) (*entities.Warehouse, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(w).Error; err != nil {
			return classifyWrite(err, "error al crear almacén")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *inventoryRepo) GetWarehouse(id uint) (*entities.Warehouse, error) {
	var w entities.Warehouse
	if err := r.db.First(&w, id).Error; err != nil {
		return nil, notFoundOr(err, "almacén no encontrado", "error al obtener almacén")
	}
	return &w, nil
}

func (r *inventoryRepo) ListWarehouses(skip, limit int, warehouseType *string) ([]entities.Warehouse, error) {
	q := r.db.Offset(skip).Limit(limit)
	if warehouseType != nil && *warehouseType != "" {
		q = q.Where("warehouse_type = ?", *warehouseType)
	}
	var out []entities.Warehouse
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener almacenes", err)
	}
	return out, nil
}

func (r *inventoryRepo) UpdateWarehouse(id uint, patch repository.WarehousePatch) (*entities.Warehouse, error) {
	var out entities.Warehouse
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var w entities.Warehouse
		if err := tx.First(&w, id).Error; err != nil {
			return notFoundOr(err, "almacén no encontrado", "error al obtener almacén")
		}
		updates := map[string]any{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.WarehouseType != nil {
			updates["warehouse_type"] = patch.WarehouseType
		}
		if patch.Location != nil {
			updates["location"] = patch.Location
		}
		if len(updates) > 0 {
			if err := tx.Model(&w).Updates(updates).Error; err != nil {
				return classifyWrite(err, "error al actualizar almacén")
			}
		}
		return tx.First(&out, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *inventoryRepo) DeleteWarehouse(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var stocks int64
		if err := tx.Model(&entities.InputStock{}).Where("warehouse_id = ?", id).Count(&stocks).Error; err != nil {
			return apperr.Wrap(apperr.QueryError, "error al eliminar almacén", err)
		}
		if stocks > 0 {
			return apperr.New(apperr.Conflict, "no se puede eliminar el almacén porque tiene stock asociado")
		}
		res := tx.Delete(&entities.Warehouse{}, id)
		if res.Error != nil {
			return apperr.Wrap(apperr.WriteError, "error al eliminar almacén", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.New(apperr.NotFound, "almacén no encontrado")
		}
		return nil
	})
}

// ==================== stocks ====================

func (r *inventoryRepo) CreateStock(s *entities.InputStock) (*entities.InputStock, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return classifyWrite(err, "error al crear stock")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *inventoryRepo) GetStock(id uint) (*entities.InputStock, error) {
	var s entities.InputStock
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, notFoundOr(err, "stock no encontrado", "error al obtener stock")
	}
	return &s, nil
}

func (r *inventoryRepo) GetStockByInputWarehouse(inputID, warehouseID uint) (*entities.InputStock, error) {
	var s entities.InputStock
	err := r.db.First(&s, "input_id = ? AND warehouse_id = ?", inputID, warehouseID).Error
	if err != nil {
		return nil, notFoundOr(err, "stock no encontrado", "error al obtener stock")
	}
	return &s, nil
}

func (r *inventoryRepo) ListStocks(skip, limit int, inputID, warehouseID *uint) ([]entities.InputStock, error) {
	q := r.db.Offset(skip).Limit(limit)
	if inputID != nil {
		q = q.Where("input_id = ?", *inputID)
	}
	if warehouseID != nil {
		q = q.Where("warehouse_id = ?", *warehouseID)
	}
	var out []entities.InputStock
	if err := q.Find(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener stocks", err)
	}
	return out, nil
}

func (r *inventoryRepo) ListStockDetails(skip, limit int, inputID, warehouseID *uint) ([]repository.StockDetail, error) {
	q := r.db.Table("input_stocks").
		Select(`input_stocks.id, input_stocks.input_id, inputs.name AS input_name, inputs.unit,
input_stocks.warehouse_id, warehouses.name AS warehouse_name, input_stocks.quantity`).
		Joins("LEFT JOIN inputs ON inputs.id = input_stocks.input_id").
		Joins("LEFT JOIN warehouses ON warehouses.id = input_stocks.warehouse_id").
		Offset(skip).Limit(limit)
	if inputID != nil {
		q = q.Where("input_stocks.input_id = ?", *inputID)
	}
	if warehouseID != nil {
		q = q.Where("input_stocks.warehouse_id = ?", *warehouseID)
	}
	var out []repository.StockDetail
	if err := q.Scan(&out).Error; err != nil {
		return nil, apperr.Wrap(apperr.QueryError, "error al obtener stocks", err)
	}
	return out, nil
}

// ==================== movements ====================

func (r *inventoryRepo) CreateMovement(m *entities.InventoryMovement) (*entities.InventoryMovement, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return ApplyMovement(tx, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ApplyMovement validates the movement, adjusts the matching stock row
// (creating it at zero when absent) and records the ledger entry. It runs
// inside the caller's transaction so composers can book movements alongside
// their own writes.
func ApplyMovement(tx *gorm.DB, m *entities.InventoryMovement) error {
	if m.MovementType != entities.MovementEntry && m.MovementType != entities.MovementExit {
		return apperr.New(apperr.ValidationError, "movement_type debe ser entry o exit")
	}
	if m.Quantity <= 0 {
		return apperr.New(apperr.ValidationError, "quantity debe ser positiva")
	}
	var n int64
	if err := tx.Model(&entities.Input{}).Where("id = ?", m.InputID).Count(&n).Error; err != nil {
		return apperr.Wrap(apperr.WriteError, "error al crear movimiento", err)
	}
	if n == 0 {
		return apperr.New(apperr.ValidationError, "input no encontrado")
	}
	if err := tx.Model(&entities.Warehouse{}).Where("id = ?", m.WarehouseID).Count(&n).Error; err != nil {
		return apperr.Wrap(apperr.WriteError, "error al crear movimiento", err)
	}
	if n == 0 {
		return apperr.New(apperr.ValidationError, "almacén no encontrado")
	}

	var stock entities.InputStock
	err := tx.First(&stock, "input_id = ? AND warehouse_id = ?", m.InputID, m.WarehouseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stock = entities.InputStock{InputID: m.InputID, WarehouseID: m.WarehouseID, Quantity: 0}
		if err := tx.Create(&stock).Error; err != nil {
			return classifyWrite(err, "error al crear movimiento")
		}
	} else if err != nil {
		return apperr.Wrap(apperr.WriteError, "error al crear movimiento", err)
	}

	delta := m.Quantity
	if m.MovementType == entities.MovementExit {
		delta = -delta
	}
	if err := tx.Model(&entities.InputStock{}).
		Where("id = ?", stock.ID).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error; err != nil {
		return apperr.Wrap(apperr.WriteError, "error al crear movimiento", err)
	}

	if m.MovementDate.IsZero() {
		m.MovementDate = time.Now()
	}
	if err := tx.Create(m).Error; err != nil {
		return classifyWrite(err, "error al crear movimiento")
	}
	return nil
}
