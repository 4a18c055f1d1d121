package analytics_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/atelier-stock/internal/application/analytics"
	"github.com/tu-usuario/atelier-stock/internal/application/dto"
	"github.com/tu-usuario/atelier-stock/internal/domain"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
	"github.com/tu-usuario/atelier-stock/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorio (solo lectura: el motor nunca escribe)
// ──────────────────────────────────────────────────────────────────────────────

type fakeActivityRepo struct {
	activities []*entity.Activity
}

func (f *fakeActivityRepo) Create(_ context.Context, _ *entity.Activity) error { return nil }

func (f *fakeActivityRepo) GetByID(_ context.Context, _ string) (*entity.Activity, error) {
	return nil, nil
}

func (f *fakeActivityRepo) Update(_ context.Context, _ string, _ entity.ActivityPatch) (*entity.Activity, error) {
	return nil, nil
}

func (f *fakeActivityRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeActivityRepo) List(_ context.Context) ([]*entity.Activity, error) {
	return f.activities, nil
}

type fakeProductRepo struct {
	products []*entity.Product
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) UpdateStockAtomically(_ context.Context, _ string, _ decimal.Decimal) error {
	return nil
}

func (f *fakeProductRepo) GetModelByID(_ context.Context, _ string) (*entity.Model, error) {
	return nil, nil
}

func (f *fakeProductRepo) GetColorisByID(_ context.Context, _ string) (*entity.Coloris, error) {
	return nil, nil
}

type fakeCostRepo struct {
	byMonth map[string]*entity.MonthlyCost
}

func (f *fakeCostRepo) GetMonthlyCost(_ context.Context, month string) (*entity.MonthlyCost, error) {
	return f.byMonth[month], nil
}

func (f *fakeCostRepo) CreateOrUpdateMonthlyCost(_ context.Context, _ *entity.MonthlyCost) (*entity.MonthlyCost, error) {
	return nil, nil
}

func (f *fakeCostRepo) UpdateMonthlyCostField(_ context.Context, _, _ string, _ decimal.Decimal) (*entity.MonthlyCost, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func strPtr(s string) *string { return &s }

func at(iso string) time.Time {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		panic(err)
	}
	return t
}

func act(typ entity.ActivityType, productID string, qty, amount float64, date string) *entity.Activity {
	a := &entity.Activity{
		ID:       fmt.Sprintf("act-%s-%s", typ, date),
		Date:     at(date),
		Type:     typ,
		Quantity: decimal.NewFromFloat(qty),
		Amount:   decimal.NewFromFloat(amount),
	}
	if productID != "" {
		a.ProductID = &productID
	}
	return a
}

func prod(id string, unitCost, salePrice float64) *entity.Product {
	return &entity.Product{
		ID:        id,
		Name:      "Producto " + id,
		UnitCost:  decimal.NewFromFloat(unitCost),
		SalePrice: decimal.NewFromFloat(salePrice),
	}
}

func newUseCase(activities []*entity.Activity, products []*entity.Product, costs map[string]*entity.MonthlyCost) *analytics.UseCase {
	if costs == nil {
		costs = map[string]*entity.MonthlyCost{}
	}
	agg := analytics.NewCostAggregator(&fakeCostRepo{byMonth: costs})
	return analytics.NewUseCase(
		&fakeActivityRepo{activities: activities},
		&fakeProductRepo{products: products},
		agg,
		logger.NewNop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock derivado
// ──────────────────────────────────────────────────────────────────────────────

func TestStockByProduct_SumaCantidadesFirmadas(t *testing.T) {
	uc := newUseCase([]*entity.Activity{
		act(entity.ActivityTypeCreation, "prod-1", 10, 0, "2025-01-01T09:00:00Z"),
		act(entity.ActivityTypeSale, "prod-1", -5, 100, "2025-01-02T09:00:00Z"),
		act(entity.ActivityTypeStockCorrection, "prod-1", 0, 0, "2025-01-03T09:00:00Z"),
	}, nil, nil)

	stock, err := uc.StockByProduct(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, stock["prod-1"].Equal(decimal.NewFromInt(5)))
}

func TestStockByProduct_IncluyeOtherEIgnoraSinProducto(t *testing.T) {
	uc := newUseCase([]*entity.Activity{
		act(entity.ActivityTypeCreation, "prod-1", 10, 0, "2025-01-01T09:00:00Z"),
		// Las OTHER con producto sí suman en el stock derivado del ledger
		act(entity.ActivityTypeOther, "prod-1", 3, 0, "2025-01-02T09:00:00Z"),
		act(entity.ActivityTypeOther, "", 99, 0, "2025-01-02T10:00:00Z"),
		act(entity.ActivityTypeCreation, "prod-2", 7, 0, "2025-01-03T09:00:00Z"),
	}, nil, nil)

	stock, err := uc.StockByProduct(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, stock["prod-1"].Equal(decimal.NewFromInt(13)))
	assert.True(t, stock["prod-2"].Equal(decimal.NewFromInt(7)))
	assert.Len(t, stock, 2)
}

func TestStockForProduct_SinActividadesEsCero(t *testing.T) {
	uc := newUseCase(nil, nil, nil)

	stock, err := uc.StockForProduct(context.Background(), "prod-x")
	require.NoError(t, err)
	assert.True(t, stock.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Utilidad y ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestProfit_MargenPorCantidadAbsoluta(t *testing.T) {
	uc := newUseCase([]*entity.Activity{
		// (20 - 10) * |-2| = 20
		act(entity.ActivityTypeSale, "prod-1", -2, 40, "2025-01-01T09:00:00Z"),
		// Las no-SALE no aportan utilidad
		act(entity.ActivityTypeCreation, "prod-1", 5, 0, "2025-01-01T10:00:00Z"),
	}, []*entity.Product{prod("prod-1", 10, 20)}, nil)

	profit, err := uc.Profit(context.Background(), dto.DateRangeRequest{})
	require.NoError(t, err)
	assert.True(t, profit.Equal(decimal.NewFromInt(20)), "profit = %s", profit)
}

func TestProfit_VentaConProductoInexistenteSeDescarta(t *testing.T) {
	uc := newUseCase([]*entity.Activity{
		act(entity.ActivityTypeSale, "prod-1", -2, 40, "2025-01-01T09:00:00Z"),
		act(entity.ActivityTypeSale, "prod-borrado", -1, 15, "2025-01-01T10:00:00Z"),
	}, []*entity.Product{prod("prod-1", 10, 20)}, nil)

	profit, err := uc.Profit(context.Background(), dto.DateRangeRequest{})
	require.NoError(t, err, "el producto faltante no es un error")
	assert.True(t, profit.Equal(decimal.NewFromInt(20)))
}

func TestTotalSales_SoloVentasDentroDelRango(t *testing.T) {
	uc := newUseCase([]*entity.Activity{
		act(entity.ActivityTypeSale, "prod-1", -1, 100, "2025-01-15T09:00:00Z"),
		act(entity.ActivityTypeSale, "prod-1", -1, 50, "2025-02-15T09:00:00Z"),
		act(entity.ActivityTypeCreation, "prod-1", 5, 999, "2025-01-20T09:00:00Z"),
	}, []*entity.Product{prod("prod-1", 10, 20)}, nil)

	total, err := uc.TotalSales(context.Background(), dto.DateRangeRequest{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-31",
	})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(100)))
}

func TestTotalSales_FechaFinalSolaEsInclusiva(t *testing.T) {
	uc := newUseCase([]*entity.Activity{
		act(entity.ActivityTypeSale, "prod-1", -1, 100, "2025-01-31T18:30:00Z"),
	}, []*entity.Product{prod("prod-1", 10, 20)}, nil)

	// end_date sin hora cubre hasta el final del día
	total, err := uc.TotalSales(context.Background(), dto.DateRangeRequest{EndDate: "2025-01-31"})
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(100)))
}

func TestParseRange_InicioDespuesDelFinal(t *testing.T) {
	uc := newUseCase(nil, nil, nil)

	_, err := uc.TotalSales(context.Background(), dto.DateRangeRequest{
		StartDate: "2025-02-01",
		EndDate:   "2025-01-01",
	})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estadísticas por período
// ──────────────────────────────────────────────────────────────────────────────

func TestProfitsByPeriod_BucketsDiariosAscendentes(t *testing.T) {
	uc := newUseCase([]*entity.Activity{
		// Desordenadas a propósito: el resultado sale ordenado por clave
		act(entity.ActivityTypeSale, "prod-1", -3, 75, "2025-01-02T12:00:00Z"),
		act(entity.ActivityTypeSale, "prod-1", -2, 50, "2025-01-01T09:00:00Z"),
		act(entity.ActivityTypeCreation, "prod-1", 5, 0, "2025-01-01T10:00:00Z"),
	}, []*entity.Product{prod("prod-1", 10, 20)}, nil)

	stats, err := uc.ProfitsByPeriod(context.Background(), analytics.PeriodDaily, dto.DateRangeRequest{})
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "2025-01-01", stats[0].Period)
	assert.True(t, stats[0].Profit.Equal(decimal.NewFromInt(20)))
	assert.True(t, stats[0].TotalSales.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 1, stats[0].TotalCreations)

	assert.Equal(t, "2025-01-02", stats[1].Period)
	assert.True(t, stats[1].Profit.Equal(decimal.NewFromInt(30)))
	assert.True(t, stats[1].TotalSales.Equal(decimal.NewFromInt(75)))
	assert.Equal(t, 0, stats[1].TotalCreations)
}

func TestProfitsByPeriod_ClaveMensualYAnual(t *testing.T) {
	activities := []*entity.Activity{
		act(entity.ActivityTypeSale, "prod-1", -1, 10, "2025-01-15T09:00:00Z"),
		act(entity.ActivityTypeSale, "prod-1", -1, 20, "2025-02-15T09:00:00Z"),
	}
	uc := newUseCase(activities, []*entity.Product{prod("prod-1", 10, 20)}, nil)

	monthly, err := uc.ProfitsByPeriod(context.Background(), analytics.PeriodMonthly, dto.DateRangeRequest{})
	require.NoError(t, err)
	require.Len(t, monthly, 2)
	assert.Equal(t, "2025-01", monthly[0].Period)
	assert.Equal(t, "2025-02", monthly[1].Period)

	yearly, err := uc.ProfitsByPeriod(context.Background(), analytics.PeriodYearly, dto.DateRangeRequest{})
	require.NoError(t, err)
	require.Len(t, yearly, 1)
	assert.Equal(t, "2025", yearly[0].Period)
	assert.True(t, yearly[0].TotalSales.Equal(decimal.NewFromInt(30)))
}

func TestProfitsByPeriod_GranularidadInvalida(t *testing.T) {
	uc := newUseCase(nil, nil, nil)

	_, err := uc.ProfitsByPeriod(context.Background(), analytics.Period("WEEKLY"), dto.DateRangeRequest{})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Márgenes por producto
// ──────────────────────────────────────────────────────────────────────────────

func TestProductMargins_OrdenPorUtilidadDescendente(t *testing.T) {
	uc := newUseCase([]*entity.Activity{
		act(entity.ActivityTypeSale, "prod-a", -1, 30, "2025-01-01T09:00:00Z"),
		act(entity.ActivityTypeSale, "prod-b", -2, 100, "2025-01-02T09:00:00Z"),
		act(entity.ActivityTypeSale, "prod-b", -1, 50, "2025-01-03T09:00:00Z"),
	}, []*entity.Product{
		prod("prod-a", 10, 30),
		prod("prod-b", 20, 50),
	}, nil)

	margins, err := uc.ProductMargins(context.Background(), dto.DateRangeRequest{})
	require.NoError(t, err)
	require.Len(t, margins, 2)

	// prod-b: revenue 150, cost 20*3 = 60, profit 90
	b := margins[0]
	assert.Equal(t, "prod-b", b.ProductID)
	assert.Equal(t, 2, b.SalesCount)
	assert.True(t, b.TotalRevenue.Equal(decimal.NewFromInt(150)))
	assert.True(t, b.TotalCost.Equal(decimal.NewFromInt(60)))
	assert.True(t, b.Profit.Equal(decimal.NewFromInt(90)))
	assert.True(t, b.MarginPercentage.Equal(decimal.NewFromInt(60)), "margin = %s", b.MarginPercentage)

	// prod-a: revenue 30, cost 10, profit 20
	a := margins[1]
	assert.Equal(t, "prod-a", a.ProductID)
	assert.True(t, a.Profit.Equal(decimal.NewFromInt(20)))
}

func TestProductMargins_IngresoCeroNoDividePorCero(t *testing.T) {
	uc := newUseCase([]*entity.Activity{
		act(entity.ActivityTypeSale, "prod-1", -1, 0, "2025-01-01T09:00:00Z"),
	}, []*entity.Product{prod("prod-1", 10, 20)}, nil)

	margins, err := uc.ProductMargins(context.Background(), dto.DateRangeRequest{})
	require.NoError(t, err)
	require.Len(t, margins, 1)
	assert.True(t, margins[0].MarginPercentage.IsZero())
	assert.True(t, margins[0].Profit.Equal(decimal.NewFromInt(-10)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reporte de ingresos
// ──────────────────────────────────────────────────────────────────────────────

func TestRevenue_RestaCostosMensuales(t *testing.T) {
	costs := map[string]*entity.MonthlyCost{
		"2025-01": {
			Month:         "2025-01",
			ShippingCost:  decimal.NewFromInt(5),
			MarketingCost: decimal.NewFromInt(10),
			OverheadCost:  decimal.NewFromInt(15),
		},
		// 2025-02 sin fila: aporta cero
	}
	uc := newUseCase([]*entity.Activity{
		act(entity.ActivityTypeSale, "prod-1", -2, 100, "2025-01-15T09:00:00Z"),
		act(entity.ActivityTypeSale, "prod-1", -1, 50, "2025-02-10T09:00:00Z"),
	}, []*entity.Product{prod("prod-1", 10, 20)}, costs)

	report, err := uc.Revenue(context.Background(), analytics.PeriodMonthly, "2025-01-01", "2025-02-28")
	require.NoError(t, err)

	// revenue 150, cogs 10*3 = 30, margen bruto 120
	assert.True(t, report.TotalRevenue.Equal(decimal.NewFromInt(150)))
	assert.True(t, report.TotalCost.Equal(decimal.NewFromInt(30)))
	assert.True(t, report.GrossMargin.Equal(decimal.NewFromInt(120)))
	// neto = 120 - 5 - (10 + 15) = 90
	assert.True(t, report.NetResult.Equal(decimal.NewFromInt(90)), "net = %s", report.NetResult)
	assert.True(t, report.GrossMarginRate.Equal(decimal.NewFromInt(80)))
	assert.True(t, report.NetResultRate.Equal(decimal.NewFromInt(60)))

	require.Len(t, report.Periods, 2)
	assert.Equal(t, "2025-01", report.Periods[0].Period)
	assert.True(t, report.Periods[0].Revenue.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.Periods[0].GrossMargin.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, "2025-02", report.Periods[1].Period)
}

func TestRevenue_RangoObligatorio(t *testing.T) {
	uc := newUseCase(nil, nil, nil)

	_, err := uc.Revenue(context.Background(), analytics.PeriodMonthly, "", "2025-02-28")
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = uc.Revenue(context.Background(), analytics.PeriodMonthly, "2025-01-01", "")
	require.ErrorAs(t, err, &vErr)
}

func TestRevenue_SinVentasNiTasas(t *testing.T) {
	uc := newUseCase(nil, nil, nil)

	report, err := uc.Revenue(context.Background(), analytics.PeriodMonthly, "2025-01-01", "2025-01-31")
	require.NoError(t, err)
	assert.True(t, report.TotalRevenue.IsZero())
	assert.True(t, report.GrossMarginRate.IsZero())
	assert.True(t, report.NetResultRate.IsZero())
	assert.Empty(t, report.Periods)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado paginado
// ──────────────────────────────────────────────────────────────────────────────

func seedLedger(n int) []*entity.Activity {
	activities := make([]*entity.Activity, 0, n)
	base := at("2025-01-01T00:00:00Z")
	for i := 0; i < n; i++ {
		activities = append(activities, &entity.Activity{
			ID:       fmt.Sprintf("act-%03d", i),
			Date:     base.Add(time.Duration(i) * time.Hour),
			Type:     entity.ActivityTypeOther,
			Quantity: decimal.Zero,
			Amount:   decimal.Zero,
		})
	}
	return activities
}

func TestListActivities_PaginaYOrdenaDescendente(t *testing.T) {
	uc := newUseCase(seedLedger(45), nil, nil)

	page1, err := uc.ListActivities(context.Background(), dto.ActivityFilter{
		PageRequest: dto.PageRequest{Page: 1, PageSize: 20},
	})
	require.NoError(t, err)
	assert.Len(t, page1.Activities, 20)
	assert.Equal(t, 45, page1.Total)
	assert.Equal(t, 3, page1.TotalPages)
	// Descendente: la más reciente primero
	assert.Equal(t, "act-044", page1.Activities[0].ID)

	page3, err := uc.ListActivities(context.Background(), dto.ActivityFilter{
		PageRequest: dto.PageRequest{Page: 3, PageSize: 20},
	})
	require.NoError(t, err)
	assert.Len(t, page3.Activities, 5)
	assert.Equal(t, "act-000", page3.Activities[4].ID)
}

func TestListActivities_PaginaMasAllaDeLaUltima(t *testing.T) {
	uc := newUseCase(seedLedger(45), nil, nil)

	page4, err := uc.ListActivities(context.Background(), dto.ActivityFilter{
		PageRequest: dto.PageRequest{Page: 4, PageSize: 20},
	})
	require.NoError(t, err, "más allá de la última página no es un error")
	assert.Empty(t, page4.Activities)
	assert.Equal(t, 45, page4.Total)
	assert.Equal(t, 3, page4.TotalPages)
	assert.Equal(t, 4, page4.Page)
}

func TestListActivities_ParametrosInvalidosSeNormalizan(t *testing.T) {
	uc := newUseCase(seedLedger(3), nil, nil)

	out, err := uc.ListActivities(context.Background(), dto.ActivityFilter{
		PageRequest: dto.PageRequest{Page: 0, PageSize: -5},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 1, out.PageSize)
	assert.Len(t, out.Activities, 1)
	assert.Equal(t, 3, out.TotalPages)
}

func TestListActivities_FiltrosCombinadosConAND(t *testing.T) {
	uc := newUseCase([]*entity.Activity{
		act(entity.ActivityTypeSale, "prod-1", -1, 10, "2025-01-10T09:00:00Z"),
		act(entity.ActivityTypeSale, "prod-2", -1, 10, "2025-01-11T09:00:00Z"),
		act(entity.ActivityTypeCreation, "prod-1", 5, 0, "2025-01-12T09:00:00Z"),
		act(entity.ActivityTypeSale, "prod-1", -1, 10, "2025-03-01T09:00:00Z"),
	}, nil, nil)

	out, err := uc.ListActivities(context.Background(), dto.ActivityFilter{
		StartDate: "2025-01-01",
		EndDate:   "2025-01-31",
		Type:      "SALE",
		ProductID: strPtr("prod-1"),
		PageRequest: dto.PageRequest{
			Page:     1,
			PageSize: 10,
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Activities, 1)
	assert.Equal(t, at("2025-01-10T09:00:00Z"), out.Activities[0].Date)
}
