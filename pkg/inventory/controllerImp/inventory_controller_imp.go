package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/inventory/repository"
)

type InventoryCtrl struct{ repo repository.InventoryRepository }

func New(repo repository.InventoryRepository) *InventoryCtrl { return &InventoryCtrl{repo} }

func fail(c echo.Context, err error) error {
	return c.JSON(apperr.HTTPStatus(err), map[string]string{"error": apperr.Public(err)})
}

func pagination(c echo.Context) (int, int) {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	return skip, limit
}

func uintParam(c echo.Context, name string) uint {
	id, _ := strconv.Atoi(c.Param(name))
	return uint(id)
}

func optUintQuery(c echo.Context, name string) *uint {
	v := c.QueryParam(name)
	if v == "" {
		return nil
	}
	x, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	u := uint(x)
	return &u
}

func optBoolQuery(c echo.Context, name string) *bool {
	v := c.QueryParam(name)
	if v == "" {
		return nil
	}
	b := v == "true" || v == "1"
	return &b
}

// ==================== categories ====================

type categoryReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *InventoryCtrl) CreateCategory(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	cat, err := h.repo.CreateCategory(&entities.InputCategory{Name: req.Name, Description: req.Description})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (h *InventoryCtrl) GetCategory(c echo.Context) error {
	cat, err := h.repo.GetCategory(uintParam(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *InventoryCtrl) ListCategories(c echo.Context) error {
	skip, limit := pagination(c)
	out, err := h.repo.ListCategories(skip, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *InventoryCtrl) UpdateCategory(c echo.Context) error {
	var patch repository.CategoryPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	cat, err := h.repo.UpdateCategory(uintParam(c, "id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *InventoryCtrl) DeleteCategory(c echo.Context) error {
	if err := h.repo.DeleteCategory(uintParam(c, "id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ==================== inputs ====================

type inputReq struct {
	Name            string   `json:"name"`
	CategoryID      *uint    `json:"category_id"`
	Unit            string   `json:"unit"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	WarehouseID     *uint    `json:"warehouse_id"`
	InitialQuantity float64  `json:"initial_quantity"`
}

func (h *InventoryCtrl) CreateInput(c echo.Context) error {
	var req inputReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in := &entities.Input{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Unit:        req.Unit,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    true,
	}
	out, err := h.repo.CreateInput(in, req.WarehouseID, req.InitialQuantity)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *InventoryCtrl) GetInput(c echo.Context) error {
	in, err := h.repo.GetInput(uintParam(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, in)
}

func (h *InventoryCtrl) ListInputs(c echo.Context) error {
	skip, limit := pagination(c)
	out, err := h.repo.ListInputs(skip, limit, optUintQuery(c, "category_id"), optBoolQuery(c, "is_active"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *InventoryCtrl) UpdateInput(c echo.Context) error {
	var patch repository.InputPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in, err := h.repo.UpdateInput(uintParam(c, "id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, in)
}

func (h *InventoryCtrl) DeleteInput(c echo.Context) error {
	if err := h.repo.DeleteInput(uintParam(c, "id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ==================== warehouses ====================

type warehouseReq struct {
	Name          string  `json:"name"`
	WarehouseType *string `json:"warehouse_type"`
	Location      *string `json:"location"`
}

func (h *InventoryCtrl) CreateWarehouse(c echo.Context) error {
	var req warehouseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	w, err := h.repo.CreateWarehouse(&entities.Warehouse{Name: req.Name, WarehouseType: req.WarehouseType, Location: req.Location})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, w)
}

func (h *InventoryCtrl) GetWarehouse(c echo.Context) error {
	w, err := h.repo.GetWarehouse(uintParam(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

func (h *InventoryCtrl) ListWarehouses(c echo.Context) error {
	skip, limit := pagination(c)
	var wt *string
	if v := c.QueryParam("warehouse_type"); v != "" {
		wt = &v
	}
	out, err := h.repo.ListWarehouses(skip, limit, wt)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *InventoryCtrl) UpdateWarehouse(c echo.Context) error {
	var patch repository.WarehousePatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	w, err := h.repo.UpdateWarehouse(uintParam(c, "id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, w)
}

func (h *InventoryCtrl) DeleteWarehouse(c echo.Context) error {
	if err := h.repo.DeleteWarehouse(uintParam(c, "id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ==================== stocks & movements ====================

type stockReq struct {
	InputID     uint    `json:"input_id"`
	WarehouseID uint    `json:"warehouse_id"`
	Quantity    float64 `json:"quantity"`
}

func (h *InventoryCtrl) CreateStock(c echo.Context) error {
	var req stockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	s, err := h.repo.CreateStock(&entities.InputStock{InputID: req.InputID, WarehouseID: req.WarehouseID, Quantity: req.Quantity})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *InventoryCtrl) GetStock(c echo.Context) error {
	s, err := h.repo.GetStock(uintParam(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *InventoryCtrl) ListStocks(c echo.Context) error {
	skip, limit := pagination(c)
	inputID := optUintQuery(c, "input_id")
	warehouseID := optUintQuery(c, "warehouse_id")
	if c.QueryParam("detail") == "true" {
		out, err := h.repo.ListStockDetails(skip, limit, inputID, warehouseID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
	out, err := h.repo.ListStocks(skip, limit, inputID, warehouseID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type movementReq struct {
	InputID      uint    `json:"input_id"`
	WarehouseID  uint    `json:"warehouse_id"`
	Quantity     float64 `json:"quantity"`
	MovementType string  `json:"movement_type"`
	MovementDate *string `json:"movement_date"`
	Description  string  `json:"description"`
}

func (h *InventoryCtrl) CreateMovement(c echo.Context) error {
	var req movementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	m := &entities.InventoryMovement{
		InputID:      req.InputID,
		WarehouseID:  req.WarehouseID,
		Quantity:     req.Quantity,
		MovementType: req.MovementType,
		Description:  req.Description,
	}
	if req.MovementDate != nil && *req.MovementDate != "" {
		t, err := time.Parse("2006-01-02", *req.MovementDate)
		if err != nil {
			t, err = time.Parse(time.RFC3339, *req.MovementDate)
		}
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "movement_date inválida"})
		}
		m.MovementDate = t
	}
	out, err := h.repo.CreateMovement(m)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
