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
	"odisea/pkg/operacion/repository"
	"odisea/pkg/operacion/repositoryImp"
	"odisea/pkg/operacion/service"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	db    *gorm.DB
	svc   service.OperacionService
	plot  entities.Plot
	input entities.Input
	wh    entities.Warehouse
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	fx := &fixture{db: db, svc: NewOperacionService(db, zerolog.Nop(), 7)}

	require.NoError(t, db.Create(&entities.Grapevine{GvID: "M-TEMP", Name: "Tempranillo"}).Error)
	fx.plot = entities.Plot{
		PlotName: "P1", PlotVar: "M-TEMP",
		PlotGeom: "POLYGON ((0 0, 0 1, 1 1, 1 0, 0 0))", Active: true,
	}
	require.NoError(t, db.Create(&fx.plot).Error)

	fx.wh = entities.Warehouse{Name: "Central"}
	require.NoError(t, db.Create(&fx.wh).Error)
	fx.input = entities.Input{Name: "Azufre", Unit: "kg", IsActive: true}
	require.NoError(t, db.Create(&fx.input).Error)
	require.NoError(t, db.Create(&entities.InputStock{InputID: fx.input.ID, WarehouseID: fx.wh.ID, Quantity: 100}).Error)

	require.NoError(t, db.Create(&entities.TaskList{TaskName: "sulfatado", TaskType: "vineyard"}).Error)
	require.NoError(t, db.Create(&entities.TaskList{TaskName: "trasiego", TaskType: "winery"}).Error)

	return fx
}

func (fx *fixture) stockQuantity(t *testing.T) float64 {
	t.Helper()
	var s entities.InputStock
	require.NoError(t, fx.db.First(&s, "input_id = ? AND warehouse_id = ?", fx.input.ID, fx.wh.ID).Error)
	return s.Quantity
}

func TestCreateWithInputsBooksEverything(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.svc.CreateWithInputs(service.CreateRequest{
		ParcelaID:     &fx.plot.PlotID,
		TipoOperacion: "sulfatado",
		Inputs: []service.InputLine{
			{InputID: fx.input.ID, WarehouseID: fx.wh.ID, UsedQuantity: 12},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "planned", out.Estado)
	require.Len(t, out.Inputs, 1)
	assert.Equal(t, 12.0, out.Inputs[0].UsedQuantity)
	require.NotNil(t, out.Parcela)
	assert.Equal(t, "P1", out.Parcela.PlotName)

	assert.Equal(t, 88.0, fx.stockQuantity(t))

	var mov entities.InventoryMovement
	require.NoError(t, fx.db.First(&mov, "operation_id = ?", out.ID).Error)
	assert.Equal(t, entities.MovementExit, mov.MovementType)
	assert.Equal(t, 12.0, mov.Quantity)
}

func TestCreateWithInputsRollsBackOnBadInput(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.svc.CreateWithInputs(service.CreateRequest{
		ParcelaID:     &fx.plot.PlotID,
		TipoOperacion: "sulfatado",
		Inputs: []service.InputLine{
			{InputID: fx.input.ID, WarehouseID: fx.wh.ID, UsedQuantity: 12},
			{InputID: 9999, WarehouseID: fx.wh.ID, UsedQuantity: 3},
		},
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ValidationError))

	// No operation, no lines, no movements, stock untouched.
	var ops, lines, movs int64
	require.NoError(t, fx.db.Model(&entities.Operacion{}).Count(&ops).Error)
	require.NoError(t, fx.db.Model(&entities.TaskInput{}).Count(&lines).Error)
	require.NoError(t, fx.db.Model(&entities.InventoryMovement{}).Count(&movs).Error)
	assert.Zero(t, ops)
	assert.Zero(t, lines)
	assert.Zero(t, movs)
	assert.Equal(t, 100.0, fx.stockQuantity(t))
}

func TestCreateRejectsUnknownPlot(t *testing.T) {
	fx := newFixture(t)

	bad := uint(4242)
	_, err := fx.svc.CreateWithInputs(service.CreateRequest{
		ParcelaID:     &bad,
		TipoOperacion: "sulfatado",
	})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ValidationError))
}

func TestCreateWineryOperationWithoutPlot(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.svc.CreateWithInputs(service.CreateRequest{
		TipoOperacion: "trasiego",
	})
	require.NoError(t, err)
	assert.Nil(t, out.ParcelaID)
	assert.Nil(t, out.Parcela)
}

func TestDeleteCascadesInOrder(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.svc.CreateWithInputs(service.CreateRequest{
		ParcelaID:     &fx.plot.PlotID,
		TipoOperacion: "sulfatado",
		Inputs: []service.InputLine{
			{InputID: fx.input.ID, WarehouseID: fx.wh.ID, UsedQuantity: 5},
		},
	})
	require.NoError(t, err)

	require.NoError(t, fx.svc.Delete(out.ID))

	var ops, lines, movs int64
	require.NoError(t, fx.db.Model(&entities.Operacion{}).Count(&ops).Error)
	require.NoError(t, fx.db.Model(&entities.TaskInput{}).Count(&lines).Error)
	require.NoError(t, fx.db.Model(&entities.InventoryMovement{}).Count(&movs).Error)
	assert.Zero(t, ops)
	assert.Zero(t, lines)
	assert.Zero(t, movs)

	err = fx.svc.Delete(out.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestReplaceInputsIsDestructive(t *testing.T) {
	fx := newFixture(t)

	out, err := fx.svc.CreateWithInputs(service.CreateRequest{
		ParcelaID:     &fx.plot.PlotID,
		TipoOperacion: "sulfatado",
		Inputs: []service.InputLine{
			{InputID: fx.input.ID, WarehouseID: fx.wh.ID, UsedQuantity: 5},
		},
	})
	require.NoError(t, err)

	otro := entities.Input{Name: "Cobre", Unit: "kg", IsActive: true}
	require.NoError(t, fx.db.Create(&otro).Error)

	got, err := fx.svc.ReplaceInputs(out.ID, []service.ReplaceLine{
		{InputID: otro.ID, UsedQuantity: 2},
		{InputID: fx.input.ID, UsedQuantity: 9},
	})
	require.NoError(t, err)
	require.Len(t, got.Inputs, 2)
	for _, ti := range got.Inputs {
		// Replacement lines land in the default warehouse as planned work.
		assert.EqualValues(t, 7, ti.WarehouseID)
		assert.Equal(t, "planned", ti.Status)
	}

	// The replace does not reconcile movements: the original exit stays.
	var movs int64
	require.NoError(t, fx.db.Model(&entities.InventoryMovement{}).Where("operation_id = ?", out.ID).Count(&movs).Error)
	assert.EqualValues(t, 1, movs)
	assert.Equal(t, 95.0, fx.stockQuantity(t))

	_, err = fx.svc.ReplaceInputs(9999, nil)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}

func TestUpdateAcceptsPlainDates(t *testing.T) {
	fx := newFixture(t)
	repo := repositoryImp.New(fx.db)

	out, err := fx.svc.CreateWithInputs(service.CreateRequest{
		ParcelaID:     &fx.plot.PlotID,
		TipoOperacion: "sulfatado",
		FechaInicio:   strPtr("2026-03-01"),
	})
	require.NoError(t, err)

	// The patch takes the same date formats the create does.
	got, err := repo.Update(out.ID, repository.OperacionPatch{FechaInicio: strPtr("2026-03-15")})
	require.NoError(t, err)
	require.NotNil(t, got.FechaInicio)
	assert.Equal(t, "2026-03-15", got.FechaInicio.Format("2006-01-02"))

	got, err = repo.Update(out.ID, repository.OperacionPatch{FechaFin: strPtr("2026-03-20T10:00:00Z")})
	require.NoError(t, err)
	require.NotNil(t, got.FechaFin)

	_, err = repo.Update(out.ID, repository.OperacionPatch{FechaInicio: strPtr("no es fecha")})
	assert.True(t, apperr.Is(err, apperr.ValidationError))
}

func TestListingsSplitByTaskType(t *testing.T) {
	fx := newFixture(t)
	repo := repositoryImp.New(fx.db)

	_, err := fx.svc.CreateWithInputs(service.CreateRequest{
		ParcelaID:     &fx.plot.PlotID,
		TipoOperacion: "sulfatado",
		Inputs: []service.InputLine{
			{InputID: fx.input.ID, WarehouseID: fx.wh.ID, UsedQuantity: 5},
		},
	})
	require.NoError(t, err)
	_, err = fx.svc.CreateWithInputs(service.CreateRequest{TipoOperacion: "trasiego"})
	require.NoError(t, err)

	all, err := repo.List(0, 50)
	require.NoError(t, err)
	require.Len(t, all, 2)

	vineyard, err := repo.ListByTaskType("vineyard", 0, 50)
	require.NoError(t, err)
	require.Len(t, vineyard, 1)
	assert.Equal(t, "sulfatado", vineyard[0].TipoOperacion)
	require.NotNil(t, vineyard[0].PlotName)
	assert.Equal(t, "P1", *vineyard[0].PlotName)
	assert.EqualValues(t, 1, vineyard[0].InputsCount)

	winery, err := repo.ListByTaskType("winery", 0, 50)
	require.NoError(t, err)
	require.Len(t, winery, 1)
	assert.Nil(t, winery[0].PlotName)
	assert.EqualValues(t, 0, winery[0].InputsCount)

	_, err = repo.ListByTaskType("garden", 0, 50)
	assert.True(t, apperr.Is(err, apperr.ValidationError))
}
