package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/vineyard/repository"
)

type VineyardCtrl struct{ repo repository.VineyardRepository }

func New(repo repository.VineyardRepository) *VineyardCtrl { return &VineyardCtrl{repo} }

func fail(c echo.Context, err error) error {
	return c.JSON(apperr.HTTPStatus(err), map[string]string{"error": apperr.Public(err)})
}

type createReq struct {
	VyID        string  `json:"vy_id"`
	Value       string  `json:"value"`
	Description *string `json:"description"`
	Kind        string  `json:"kind"`
}

func (h *VineyardCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	v, err := h.repo.Create(&entities.Vineyard{VyID: req.VyID, Value: req.Value, Description: req.Description, Kind: req.Kind})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *VineyardCtrl) Get(c echo.Context) error {
	v, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *VineyardCtrl) List(c echo.Context) error {
	if kind := c.QueryParam("kind"); kind != "" {
		out, err := h.repo.ListByKind(kind)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
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

func (h *VineyardCtrl) Update(c echo.Context) error {
	var patch repository.VineyardPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	v, err := h.repo.Update(c.Param("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *VineyardCtrl) Delete(c echo.Context) error {
	if err := h.repo.Delete(c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
