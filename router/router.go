package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	fincaCtrl "odisea/pkg/finca/controllerImp"
	grapevineCtrl "odisea/pkg/grapevine/controllerImp"
	inventoryCtrl "odisea/pkg/inventory/controllerImp"
	"odisea/pkg/metrics"
	operacionCtrl "odisea/pkg/operacion/controllerImp"
	plotCtrl "odisea/pkg/plot/controllerImp"
	sectorCtrl "odisea/pkg/sector/controllerImp"
	vineyardCtrl "odisea/pkg/vineyard/controllerImp"
	wineryCtrl "odisea/pkg/winery/controllerImp"
)

type Controllers struct {
	Finca     *fincaCtrl.FincaCtrl
	Sector    *sectorCtrl.SectorCtrl
	Grapevine *grapevineCtrl.GrapevineCtrl
	Vineyard  *vineyardCtrl.VineyardCtrl
	Plot      *plotCtrl.PlotCtrl
	Inventory *inventoryCtrl.InventoryCtrl
	Operacion *operacionCtrl.OperacionCtrl
	Winery    *wineryCtrl.WineryCtrl
}

func New(e *echo.Echo, ctrl Controllers, m *metrics.Metrics) *echo.Echo {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", m.Handler())

	e.POST("/fincas", ctrl.Finca.Create)
	e.GET("/fincas", ctrl.Finca.List)
	e.GET("/fincas/search", ctrl.Finca.Search)
	e.GET("/fincas/count", ctrl.Finca.Count)
	e.GET("/fincas/:id", ctrl.Finca.Get)
	e.PUT("/fincas/:id", ctrl.Finca.Update)
	e.DELETE("/fincas/:id", ctrl.Finca.Delete)
	e.GET("/fincas/:id/sectores", ctrl.Sector.ListByFinca)
	e.GET("/fincas/:id/sectores/count", ctrl.Sector.CountByFinca)

	e.POST("/sectores", ctrl.Sector.Create)
	e.GET("/sectores", ctrl.Sector.List)
	e.GET("/sectores/search", ctrl.Sector.Search)
	e.GET("/sectores/count", ctrl.Sector.Count)
	e.GET("/sectores/:id", ctrl.Sector.Get)
	e.PUT("/sectores/:id", ctrl.Sector.Update)
	e.DELETE("/sectores/:id", ctrl.Sector.Delete)

	e.POST("/grapevines", ctrl.Grapevine.Create)
	e.GET("/grapevines", ctrl.Grapevine.List)
	e.GET("/grapevines/:id", ctrl.Grapevine.Get)
	e.PUT("/grapevines/:id", ctrl.Grapevine.Update)
	e.DELETE("/grapevines/:id", ctrl.Grapevine.Delete)

	e.POST("/vineyards", ctrl.Vineyard.Create)
	e.GET("/vineyards", ctrl.Vineyard.List)
	e.GET("/vineyards/:id", ctrl.Vineyard.Get)
	e.PUT("/vineyards/:id", ctrl.Vineyard.Update)
	e.DELETE("/vineyards/:id", ctrl.Vineyard.Delete)

	e.POST("/plots", ctrl.Plot.Create)
	e.GET("/plots", ctrl.Plot.List)
	e.GET("/plots/data", ctrl.Plot.Data)
	e.GET("/plots/metadata", ctrl.Plot.Metadata)
	e.GET("/plots/export", ctrl.Plot.Export)
	e.GET("/plots/:id", ctrl.Plot.Get)
	e.PUT("/plots/:id", ctrl.Plot.Update)
	e.PATCH("/plots/:id/archive", ctrl.Plot.Archive)
	e.PATCH("/plots/:id/activate", ctrl.Plot.Activate)
	e.DELETE("/plots/:id/permanent", ctrl.Plot.DeletePermanent)

	e.POST("/categories", ctrl.Inventory.CreateCategory)
	e.GET("/categories", ctrl.Inventory.ListCategories)
	e.GET("/categories/:id", ctrl.Inventory.GetCategory)
	e.PUT("/categories/:id", ctrl.Inventory.UpdateCategory)
	e.DELETE("/categories/:id", ctrl.Inventory.DeleteCategory)

	e.POST("/inputs", ctrl.Inventory.CreateInput)
	e.GET("/inputs", ctrl.Inventory.ListInputs)
	e.GET("/inputs/:id", ctrl.Inventory.GetInput)
	e.PUT("/inputs/:id", ctrl.Inventory.UpdateInput)
	e.DELETE("/inputs/:id", ctrl.Inventory.DeleteInput)

	e.POST("/warehouses", ctrl.Inventory.CreateWarehouse)
	e.GET("/warehouses", ctrl.Inventory.ListWarehouses)
	e.GET("/warehouses/:id", ctrl.Inventory.GetWarehouse)
	e.PUT("/warehouses/:id", ctrl.Inventory.UpdateWarehouse)
	e.DELETE("/warehouses/:id", ctrl.Inventory.DeleteWarehouse)

	e.POST("/stocks", ctrl.Inventory.CreateStock)
	e.GET("/stocks", ctrl.Inventory.ListStocks)
	e.GET("/stocks/:id", ctrl.Inventory.GetStock)
	e.POST("/movements", ctrl.Inventory.CreateMovement)

	e.POST("/operaciones", ctrl.Operacion.Create)
	e.GET("/operaciones", ctrl.Operacion.List)
	e.GET("/operaciones/vineyard", ctrl.Operacion.ListVineyard)
	e.GET("/operaciones/winery", ctrl.Operacion.ListWinery)
	e.GET("/operaciones/:id", ctrl.Operacion.Get)
	e.PUT("/operaciones/:id", ctrl.Operacion.Update)
	e.DELETE("/operaciones/:id", ctrl.Operacion.Delete)
	e.PUT("/operaciones/:id/inputs", ctrl.Operacion.ReplaceInputs)

	e.GET("/tasks", ctrl.Operacion.ListTasks)
	e.POST("/tasks", ctrl.Operacion.CreateTask)

	e.POST("/vessels", ctrl.Winery.CreateVessel)
	e.GET("/vessels", ctrl.Winery.ListVessels)
	e.GET("/vessels/:id", ctrl.Winery.GetVessel)
	e.PUT("/vessels/:id", ctrl.Winery.UpdateVessel)
	e.DELETE("/vessels/:id", ctrl.Winery.DeleteVessel)

	e.POST("/batches", ctrl.Winery.CreateBatch)
	e.GET("/batches", ctrl.Winery.ListBatches)
	e.GET("/batches/:id", ctrl.Winery.GetBatch)
	e.PUT("/batches/:id", ctrl.Winery.UpdateBatch)
	e.DELETE("/batches/:id", ctrl.Winery.DeleteBatch)

	e.POST("/activities", ctrl.Winery.CreateActivity)
	e.GET("/activities", ctrl.Winery.ListActivities)
	e.GET("/activities/:id", ctrl.Winery.GetActivity)
	e.PUT("/activities/:id", ctrl.Winery.UpdateActivity)
	e.DELETE("/activities/:id", ctrl.Winery.DeleteActivity)

	return e
}
