package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/winery/repository"
	"odisea/pkg/winery/service"
)

type WineryCtrl struct {
	repo repository.WineryRepository
	svc  service.WineryService
}

func New(repo repository.WineryRepository, svc service.WineryService) *WineryCtrl {
	return &WineryCtrl{repo: repo, svc: svc}
}

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

// ==================== vessels ====================

func (h *WineryCtrl) CreateVessel(c echo.Context) error {
	var v entities.Vessel
	if err := c.Bind(&v); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	v.ID = 0
	v.IsActive = true
	out, err := h.repo.CreateVessel(&v)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *WineryCtrl) GetVessel(c echo.Context) error {
	out, err := h.repo.GetVessel(uintParam(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WineryCtrl) ListVessels(c echo.Context) error {
	skip, limit := pagination(c)
	var active *bool
	if v := c.QueryParam("is_active"); v != "" {
		b := v == "true" || v == "1"
		active = &b
	}
	out, err := h.repo.ListVessels(skip, limit, active)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WineryCtrl) UpdateVessel(c echo.Context) error {
	var patch repository.VesselPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.repo.UpdateVessel(uintParam(c, "id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WineryCtrl) DeleteVessel(c echo.Context) error {
	if err := h.repo.DeleteVessel(uintParam(c, "id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ==================== batches ====================

func (h *WineryCtrl) CreateBatch(c echo.Context) error {
	var b entities.Batch
	if err := c.Bind(&b); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	b.ID = 0
	out, err := h.repo.CreateBatch(&b)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *WineryCtrl) GetBatch(c echo.Context) error {
	out, err := h.repo.GetBatch(uintParam(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WineryCtrl) ListBatches(c echo.Context) error {
	skip, limit := pagination(c)
	out, err := h.repo.ListBatches(skip, limit, optUintQuery(c, "vessel_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WineryCtrl) UpdateBatch(c echo.Context) error {
	var patch repository.BatchPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.repo.UpdateBatch(uintParam(c, "id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WineryCtrl) DeleteBatch(c echo.Context) error {
	if err := h.repo.DeleteBatch(uintParam(c, "id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ==================== activities ====================

func (h *WineryCtrl) CreateActivity(c echo.Context) error {
	var req service.ActivityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.CreateActivityWithInputs(req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *WineryCtrl) GetActivity(c echo.Context) error {
	out, err := h.repo.GetActivity(uintParam(c, "id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WineryCtrl) ListActivities(c echo.Context) error {
	skip, limit := pagination(c)
	out, err := h.repo.ListActivities(skip, limit, optUintQuery(c, "vessel_id"), optUintQuery(c, "batch_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WineryCtrl) UpdateActivity(c echo.Context) error {
	var patch repository.ActivityPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.repo.UpdateActivity(uintParam(c, "id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *WineryCtrl) DeleteActivity(c echo.Context) error {
	if err := h.svc.DeleteActivity(uintParam(c, "id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
