package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/grapevine/repository"
)

type GrapevineCtrl struct{ repo repository.GrapevineRepository }

func New(repo repository.GrapevineRepository) *GrapevineCtrl { return &GrapevineCtrl{repo} }

func fail(c echo.Context, err error) error {
	return c.JSON(apperr.HTTPStatus(err), map[string]string{"error": apperr.Public(err)})
}

type createReq struct {
	GvID   string  `json:"gv_id"`
	Name   string  `json:"name"`
	Color  *string `json:"color"`
	GvType *string `json:"gv_type"`
}

func (h *GrapevineCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	g, err := h.repo.Create(&entities.Grapevine{GvID: req.GvID, Name: req.Name, Color: req.Color, GvType: req.GvType})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, g)
}

func (h *GrapevineCtrl) Get(c echo.Context) error {
	g, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GrapevineCtrl) List(c echo.Context) error {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	out, err := h.repo.List(skip, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GrapevineCtrl) Update(c echo.Context) error {
	var patch repository.GrapevinePatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	g, err := h.repo.Update(c.Param("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GrapevineCtrl) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
