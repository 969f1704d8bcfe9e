package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/operacion/repository"
	"odisea/pkg/operacion/service"
)

type OperacionCtrl struct {
	repo repository.OperacionRepository
	svc  service.OperacionService
}

func New(repo repository.OperacionRepository, svc service.OperacionService) *OperacionCtrl {
	return &OperacionCtrl{repo: repo, svc: svc}
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

func (h *OperacionCtrl) Create(c echo.Context) error {
	var req service.CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.CreateWithInputs(req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OperacionCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	out, err := h.svc.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OperacionCtrl) List(c echo.Context) error {
	skip, limit := pagination(c)
	out, err := h.repo.List(skip, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OperacionCtrl) ListVineyard(c echo.Context) error {
	skip, limit := pagination(c)
	out, err := h.repo.ListByTaskType("vineyard", skip, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OperacionCtrl) ListWinery(c echo.Context) error {
	skip, limit := pagination(c)
	out, err := h.repo.ListByTaskType("winery", skip, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OperacionCtrl) Update(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	var patch repository.OperacionPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.repo.Update(uint(id), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OperacionCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.svc.Delete(uint(id)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *OperacionCtrl) ReplaceInputs(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	var lines []service.ReplaceLine
	if err := c.Bind(&lines); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.svc.ReplaceInputs(uint(id), lines)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OperacionCtrl) ListTasks(c echo.Context) error {
	var tt *string
	if v := c.QueryParam("task_type"); v != "" {
		tt = &v
	}
	out, err := h.repo.ListTaskCatalog(tt)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OperacionCtrl) CreateTask(c echo.Context) error {
	var t entities.TaskList
	if err := c.Bind(&t); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	out, err := h.repo.CreateTaskCatalog(&t)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}
