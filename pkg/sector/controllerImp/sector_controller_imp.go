package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/sector/repository"
)

type SectorCtrl struct{ repo repository.SectorRepository }

func New(repo repository.SectorRepository) *SectorCtrl { return &SectorCtrl{repo} }

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

type createReq struct {
	FincaID     uint    `json:"finca_id"`
	Value       string  `json:"value"`
	Description *string `json:"description"`
}

func (h *SectorCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	s, err := h.repo.Create(&entities.Sector{FincaID: req.FincaID, Value: req.Value, Description: req.Description})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *SectorCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	s, err := h.repo.GetByID(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SectorCtrl) List(c echo.Context) error {
	skip, limit := pagination(c)
	out, err := h.repo.List(skip, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SectorCtrl) ListByFinca(c echo.Context) error {
	fincaID, _ := strconv.Atoi(c.Param("id"))
	out, err := h.repo.ListByFinca(uint(fincaID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SectorCtrl) Update(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	var patch repository.SectorPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	s, err := h.repo.Update(uint(id), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SectorCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.repo.Delete(uint(id)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SectorCtrl) Search(c echo.Context) error {
	out, err := h.repo.Search(c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SectorCtrl) Count(c echo.Context) error {
	n, err := h.repo.Count()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"total_sectores": n})
}

func (h *SectorCtrl) CountByFinca(c echo.Context) error {
	fincaID, _ := strconv.Atoi(c.Param("id"))
	n, err := h.repo.CountByFinca(uint(fincaID))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"total_sectores": n})
}
