package main

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"odisea/config"
	"odisea/database"
	"odisea/pkg/logger"
	"odisea/pkg/metrics"
	appMiddleware "odisea/pkg/middleware"
	"odisea/router"

	// Finca / Sector
	fincaCtrlImp "odisea/pkg/finca/controllerImp"
	fincaRepoImp "odisea/pkg/finca/repositoryImp"
	sectorCtrlImp "odisea/pkg/sector/controllerImp"
	sectorRepoImp "odisea/pkg/sector/repositoryImp"

	// Grapevine / Vineyard attributes
	grapevineCtrlImp "odisea/pkg/grapevine/controllerImp"
	grapevineRepoImp "odisea/pkg/grapevine/repositoryImp"
	vineyardCtrlImp "odisea/pkg/vineyard/controllerImp"
	vineyardRepoImp "odisea/pkg/vineyard/repositoryImp"

	// Plot
	plotCtrlImp "odisea/pkg/plot/controllerImp"
	plotRepoImp "odisea/pkg/plot/repositoryImp"

	// Inventory
	inventoryCtrlImp "odisea/pkg/inventory/controllerImp"
	inventoryRepoImp "odisea/pkg/inventory/repositoryImp"

	// Operations
	operacionCtrlImp "odisea/pkg/operacion/controllerImp"
	operacionRepoImp "odisea/pkg/operacion/repositoryImp"
	operacionSvc "odisea/pkg/operacion/serviceImp"

	// Winery
	wineryCtrlImp "odisea/pkg/winery/controllerImp"
	wineryRepoImp "odisea/pkg/winery/repositoryImp"
	winerySvc "odisea/pkg/winery/serviceImp"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	db := database.OpenSQLite(cfg.DBPath)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(appMiddleware.RequestLog(log))
	m := metrics.New()
	e.Use(m.Middleware())

	opSvc := operacionSvc.NewOperacionService(db, log, cfg.DefaultWarehouseID)
	wnSvc := winerySvc.NewWineryService(db, log)
	wineryRepo := wineryRepoImp.New(db)

	ctrl := router.Controllers{
		Finca:     fincaCtrlImp.New(fincaRepoImp.New(db)),
		Sector:    sectorCtrlImp.New(sectorRepoImp.New(db)),
		Grapevine: grapevineCtrlImp.New(grapevineRepoImp.New(db)),
		Vineyard:  vineyardCtrlImp.New(vineyardRepoImp.New(db)),
		Plot:      plotCtrlImp.New(plotRepoImp.New(db)),
		Inventory: inventoryCtrlImp.New(inventoryRepoImp.New(db)),
		Operacion: operacionCtrlImp.New(operacionRepoImp.New(db), opSvc),
		Winery:    wineryCtrlImp.New(wineryRepo, wnSvc),
	}

	r := router.New(e, ctrl, m)

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
