package controllerImp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"odisea/entities"
	"odisea/pkg/apperr"
	"odisea/pkg/plot/filters"
	"odisea/pkg/plot/repository"
)

type PlotCtrl struct{ repo repository.PlotRepository }

func New(repo repository.PlotRepository) *PlotCtrl { return &PlotCtrl{repo} }

func fail(c echo.Context, err error) error {
	return c.JSON(apperr.HTTPStatus(err), map[string]string{"error": apperr.Public(err)})
}

type createReq struct {
	PlotName         string   `json:"plot_name"`
	PlotVar          string   `json:"plot_var"`
	PlotRootstock    *string  `json:"plot_rootstock"`
	PlotConduction   *string  `json:"plot_conduction"`
	PlotManagement   *string  `json:"plot_management"`
	PlotImplantYear  *int     `json:"plot_implant_year"`
	PlotCreationYear *int     `json:"plot_creation_year"`
	PlotDescription  *string  `json:"plot_description"`
	PlotGeom         string   `json:"plot_geom"`
	PlotArea         *float64 `json:"plot_area"`
	SectorID         *uint    `json:"sector_id"`
}

func (h *PlotCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	p := &entities.Plot{
		PlotName:         req.PlotName,
		PlotVar:          req.PlotVar,
		PlotRootstock:    req.PlotRootstock,
		PlotConduction:   req.PlotConduction,
		PlotManagement:   req.PlotManagement,
		PlotImplantYear:  req.PlotImplantYear,
		PlotCreationYear: req.PlotCreationYear,
		PlotDescription:  req.PlotDescription,
		PlotGeom:         req.PlotGeom,
		PlotArea:         req.PlotArea,
		SectorID:         req.SectorID,
		Active:           true,
	}
	out, err := h.repo.Create(p)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *PlotCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	p, err := h.repo.GetByID(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PlotCtrl) List(c echo.Context) error {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	activeOnly := c.QueryParam("active_only") != "false"
	out, err := h.repo.List(activeOnly, skip, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlotCtrl) Update(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	var patch repository.PlotPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	p, err := h.repo.Update(uint(id), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PlotCtrl) Archive(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	p, err := h.repo.Archive(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PlotCtrl) Activate(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	p, err := h.repo.Activate(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PlotCtrl) DeletePermanent(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	if err := h.repo.DeletePermanent(uint(id)); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// parseFilters maps the query string 1:1 onto the filter criteria.
func parseFilters(c echo.Context) filters.Filters {
	f := filters.Filters{
		ActiveOnly:  c.QueryParam("active_only") != "false",
		FilterField: c.QueryParam("filter_field"),
		FilterValue: c.QueryParam("filter_value"),
	}
	if v := c.QueryParam("variety_ids"); v != "" {
		f.VarietyIDs = strings.Split(v, ",")
	}
	if v := c.QueryParam("rootstock_ids"); v != "" {
		f.RootstockIDs = strings.Split(v, ",")
	}
	if v := c.QueryParam("min_area"); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinArea = &x
		}
	}
	if v := c.QueryParam("max_area"); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxArea = &x
		}
	}
	if v := c.QueryParam("implant_year_from"); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			f.ImplantYearFrom = &x
		}
	}
	if v := c.QueryParam("implant_year_to"); v != "" {
		if x, err := strconv.Atoi(v); err == nil {
			f.ImplantYearTo = &x
		}
	}
	return f
}

// Data is the aggregation endpoint: denormalized rows, metadata and both
// counts in one response.
func (h *PlotCtrl) Data(c echo.Context) error {
	out, err := h.repo.ListWithData(parseFilters(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlotCtrl) Metadata(c echo.Context) error {
	out, err := h.repo.Metadata()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
