package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/finca/repository"
)

type FincaCtrl struct{ repo repository.FincaRepository }

func New(repo repository.FincaRepository) *FincaCtrl { return &FincaCtrl{repo} }

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
	Value       string  `json:"value"`
	Description *string `json:"description"`
}

func (h *FincaCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.repo.Create(&entities.Finca{Value: req.Value, Description: req.Description})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FincaCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	f, err := h.repo.GetByID(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FincaCtrl) List(c echo.Context) error {
	skip, limit := pagination(c)
	out, err := h.repo.List(skip, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FincaCtrl) Update(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	var patch repository.FincaPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f, err := h.repo.Update(uint(id), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FincaCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.repo.Delete(uint(id)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FincaCtrl) Search(c echo.Context) error {
	out, err := h.repo.Search(c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FincaCtrl) Count(c echo.Context) error {
	n, err := h.repo.Count()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"total_fincas": n})
}
