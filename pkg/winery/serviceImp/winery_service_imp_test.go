package serviceImp

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"odisea/database"
	"odisea/entities"
	"odisea/pkg/apperr"
	operacionImp "odisea/pkg/operacion/repositoryImp"
	"odisea/pkg/winery/service"
)

type fixture struct {
	db     *gorm.DB
	svc    service.WineryService
	vessel entities.Vessel
	input  entities.Input
	wh     entities.Warehouse
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	fx := &fixture{db: db, svc: NewWineryService(db, zerolog.Nop())}

	fx.vessel = entities.Vessel{Name: "Depósito 1", IsActive: true}
	require.NoError(t, db.Create(&fx.vessel).Error)
	fx.wh = entities.Warehouse{Name: "Bodega"}
	require.NoError(t, db.Create(&fx.wh).Error)
	fx.input = entities.Input{Name: "Levadura", Unit: "kg", IsActive: true}
	require.NoError(t, db.Create(&fx.input).Error)
	require.NoError(t, db.Create(&entities.InputStock{InputID: fx.input.ID, WarehouseID: fx.wh.ID, Quantity: 30}).Error)

	return fx
}

func TestCreateActivityWithInputsCreatesBackingOperation(t *testing.T) {
	fx := newFixture(t)

	act, err := fx.svc.CreateActivityWithInputs(service.ActivityRequest{
		VesselID:     fx.vessel.ID,
		ActivityType: "siembra de levadura",
		Inputs: []service.ActivityInputLine{
			{InputID: fx.input.ID, WarehouseID: fx.wh.ID, UsedQuantity: 4},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, act.OperationID)

	// Lines and movements hang off the backing operation; the operation has
	// no plot.
	var op entities.Operacion
	require.NoError(t, fx.db.Preload("Inputs").First(&op, *act.OperationID).Error)
	assert.Nil(t, op.ParcelaID)
	require.Len(t, op.Inputs, 1)
	assert.Equal(t, 4.0, op.Inputs[0].UsedQuantity)

	var stock entities.InputStock
	require.NoError(t, fx.db.First(&stock, "input_id = ?", fx.input.ID).Error)
	assert.Equal(t, 26.0, stock.Quantity)
}

func TestCreateActivityWithoutInputsHasNoOperation(t *testing.T) {
	fx := newFixture(t)

	act, err := fx.svc.CreateActivityWithInputs(service.ActivityRequest{
		VesselID:     fx.vessel.ID,
		ActivityType: "remontado",
	})
	require.NoError(t, err)
	assert.Nil(t, act.OperationID)
	assert.Equal(t, "planned", act.Estado)
}

func TestCreateActivityRollsBackOnBadLine(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.CreateActivityWithInputs(service.ActivityRequest{
		VesselID:     fx.vessel.ID,
		ActivityType: "siembra de levadura",
		Inputs: []service.ActivityInputLine{
			{InputID: 9999, WarehouseID: fx.wh.ID, UsedQuantity: 4},
		},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ValidationError))

	var acts, ops, movs int64
	require.NoError(t, fx.db.Model(&entities.VesselActivity{}).Count(&acts).Error)
	require.NoError(t, fx.db.Model(&entities.Operacion{}).Count(&ops).Error)
	require.NoError(t, fx.db.Model(&entities.InventoryMovement{}).Count(&movs).Error)
	assert.Zero(t, acts)
	assert.Zero(t, ops)
	assert.Zero(t, movs)
}

func TestCreateActivityValidatesVesselAndBatch(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.CreateActivityWithInputs(service.ActivityRequest{
		VesselID:     9999,
		ActivityType: "remontado",
	})
	assert.True(t, apperr.Is(err, apperr.ValidationError))

	bad := uint(9999)
	_, err = fx.svc.CreateActivityWithInputs(service.ActivityRequest{
		VesselID:     fx.vessel.ID,
		BatchID:      &bad,
		ActivityType: "remontado",
	})
	assert.True(t, apperr.Is(err, apperr.ValidationError))
}

func TestBackingOperationListingFollowsTaskCatalog(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.db.Create(&entities.TaskList{TaskName: "siembra de levadura", TaskType: "winery"}).Error)

	_, err := fx.svc.CreateActivityWithInputs(service.ActivityRequest{
		VesselID:     fx.vessel.ID,
		ActivityType: "siembra de levadura",
		Inputs: []service.ActivityInputLine{
			{InputID: fx.input.ID, WarehouseID: fx.wh.ID, UsedQuantity: 4},
		},
	})
	require.NoError(t, err)
	_, err = fx.svc.CreateActivityWithInputs(service.ActivityRequest{
		VesselID:     fx.vessel.ID,
		ActivityType: "limpieza manual",
		Inputs: []service.ActivityInputLine{
			{InputID: fx.input.ID, WarehouseID: fx.wh.ID, UsedQuantity: 2},
		},
	})
	require.NoError(t, err)

	repo := operacionImp.New(fx.db)

	// Only the catalogued type shows up in the winery listing; the ad-hoc
	// operation exists but the type filter skips it.
	winery, err := repo.ListByTaskType("winery", 0, 50)
	require.NoError(t, err)
	require.Len(t, winery, 1)
	assert.Equal(t, "siembra de levadura", winery[0].TipoOperacion)

	all, err := repo.List(0, 50)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteActivityCascadesBackingOperation(t *testing.T) {
	fx := newFixture(t)

	act, err := fx.svc.CreateActivityWithInputs(service.ActivityRequest{
		VesselID:     fx.vessel.ID,
		ActivityType: "siembra de levadura",
		Inputs: []service.ActivityInputLine{
			{InputID: fx.input.ID, WarehouseID: fx.wh.ID, UsedQuantity: 4},
		},
	})
	require.NoError(t, err)

	require.NoError(t, fx.svc.DeleteActivity(act.ID))

	var acts, ops, lines, movs int64
	require.NoError(t, fx.db.Model(&entities.VesselActivity{}).Count(&acts).Error)
	require.NoError(t, fx.db.Model(&entities.Operacion{}).Count(&ops).Error)
	require.NoError(t, fx.db.Model(&entities.TaskInput{}).Count(&lines).Error)
	require.NoError(t, fx.db.Model(&entities.InventoryMovement{}).Count(&movs).Error)
	assert.Zero(t, acts)
	assert.Zero(t, ops)
	assert.Zero(t, lines)
	assert.Zero(t, movs)

	err = fx.svc.DeleteActivity(act.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
