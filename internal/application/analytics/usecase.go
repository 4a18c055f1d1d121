// Package analytics implementa el motor de agregación sobre el ledger:
// stock derivado, utilidad, ventas, estadísticas por período, márgenes por
// producto e ingresos netos. Todas las operaciones son lecturas puras que
// re-derivan el resultado desde el ledger completo en cada llamada; no hay
// agregados incrementales ni caches, para no introducir una segunda clase de
// bugs de consistencia.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/atelier-stock/internal/application/dto"
	"github.com/tu-usuario/atelier-stock/internal/domain"
	domactivity "github.com/tu-usuario/atelier-stock/internal/domain/activity"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
	"github.com/tu-usuario/atelier-stock/internal/domain/repository"
	"github.com/tu-usuario/atelier-stock/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// Period granularidad de bucket de calendario (clave UTC).
type Period string

// Granularidades soportadas.
const (
	PeriodDaily   Period = "DAILY"
	PeriodMonthly Period = "MONTHLY"
	PeriodYearly  Period = "YEARLY"
)

// IsValid indica si la granularidad es conocida.
func (p Period) IsValid() bool {
	switch p {
	case PeriodDaily, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// layout formato Go del bucket; los componentes ISO con cero a la izquierda
// ordenan correctamente como strings.
func (p Period) layout() string {
	switch p {
	case PeriodDaily:
		return "2006-01-02"
	case PeriodMonthly:
		return "2006-01"
	default:
		return "2006"
	}
}

// UseCase motor de agregación del ledger.
type UseCase struct {
	activities repository.ActivityRepository
	products   repository.ProductRepository
	costs      *CostAggregator
	log        *logger.Logger
}

// NewUseCase construye el motor.
func NewUseCase(
	activities repository.ActivityRepository,
	products repository.ProductRepository,
	costs *CostAggregator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{activities: activities, products: products, costs: costs, log: log}
}

// StockByProduct deriva el stock por producto sumando quantity sobre el ledger.
// Incluye toda actividad con producto, también las OTHER (el coordinador las
// excluye del stock materializado; la divergencia se conserva tal como se
// observa). productID opcional acota a un solo producto.
func (uc *UseCase) StockByProduct(ctx context.Context, productID *string) (map[string]decimal.Decimal, error) {
	activities, err := uc.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	stock := make(map[string]decimal.Decimal)
	for _, a := range activities {
		if a.ProductID == nil {
			continue
		}
		if productID != nil && *a.ProductID != *productID {
			continue
		}
		stock[*a.ProductID] = stock[*a.ProductID].Add(a.Quantity)
	}
	return stock, nil
}

// StockForProduct stock derivado de un solo producto (0 si no tiene actividades).
// Implementa el puerto StockCalculator del coordinador.
func (uc *UseCase) StockForProduct(ctx context.Context, productID string) (decimal.Decimal, error) {
	stock, err := uc.StockByProduct(ctx, &productID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock[productID], nil
}

// Profit utilidad total de las ventas del rango:
// sum((salePrice - unitCost) * |quantity|). Las ventas cuyo producto ya no
// existe se descartan en silencio (política de calidad de datos, no un error).
func (uc *UseCase) Profit(ctx context.Context, rng dto.DateRangeRequest) (decimal.Decimal, error) {
	sales, index, err := uc.salesWithProducts(ctx, rng)
	if err != nil {
		return decimal.Zero, err
	}
	profit := decimal.Zero
	for _, a := range sales {
		p, ok := index[*a.ProductID]
		if !ok {
			uc.log.Debug().Str("activity_id", a.ID).Str("product_id", *a.ProductID).
				Msg("venta con producto inexistente excluida de la agregación")
			continue
		}
		profit = profit.Add(p.SalePrice.Sub(p.UnitCost).Mul(a.Quantity.Abs()))
	}
	return profit, nil
}

// TotalSales suma de amount sobre las ventas del rango.
func (uc *UseCase) TotalSales(ctx context.Context, rng dto.DateRangeRequest) (decimal.Decimal, error) {
	from, to, err := parseRange(rng)
	if err != nil {
		return decimal.Zero, err
	}
	activities, err := uc.activities.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range activities {
		if a.Type == entity.ActivityTypeSale && inRange(a.Date, from, to) {
			total = total.Add(a.Amount)
		}
	}
	return total, nil
}

// ProfitsByPeriod estadísticas por bucket de calendario (clave UTC): utilidad
// y ventas de las SALE, conteo de CREATION. Orden ascendente por clave.
func (uc *UseCase) ProfitsByPeriod(ctx context.Context, period Period, rng dto.DateRangeRequest) ([]dto.PeriodStatsDTO, error) {
	if !period.IsValid() {
		return nil, domain.NewValidationError("period must be one of DAILY, MONTHLY, YEARLY")
	}
	from, to, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	activities, err := uc.activities.List(ctx)
	if err != nil {
		return nil, err
	}
	index, err := uc.productIndex(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*dto.PeriodStatsDTO)
	bucket := func(key string) *dto.PeriodStatsDTO {
		b, ok := buckets[key]
		if !ok {
			b = &dto.PeriodStatsDTO{Period: key}
			buckets[key] = b
		}
		return b
	}

	for _, a := range activities {
		if !inRange(a.Date, from, to) {
			continue
		}
		key := a.Date.UTC().Format(period.layout())
		switch a.Type {
		case entity.ActivityTypeSale:
			b := bucket(key)
			b.TotalSales = b.TotalSales.Add(a.Amount)
			if a.ProductID != nil {
				if p, ok := index[*a.ProductID]; ok {
					b.Profit = b.Profit.Add(p.SalePrice.Sub(p.UnitCost).Mul(a.Quantity.Abs()))
				}
			}
		case entity.ActivityTypeCreation:
			bucket(key).TotalCreations++
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stats := make([]dto.PeriodStatsDTO, 0, len(keys))
	for _, k := range keys {
		stats = append(stats, *buckets[k])
	}
	return stats, nil
}

// ProductMargins margen acumulado por producto sobre sus ventas del rango,
// ordenado por utilidad descendente. marginPercentage se guarda de la
// división por cero (0 si no hubo ingresos).
func (uc *UseCase) ProductMargins(ctx context.Context, rng dto.DateRangeRequest) ([]dto.ProductMarginDTO, error) {
	sales, index, err := uc.salesWithProducts(ctx, rng)
	if err != nil {
		return nil, err
	}

	perProduct := make(map[string]*dto.ProductMarginDTO)
	for _, a := range sales {
		p, ok := index[*a.ProductID]
		if !ok {
			uc.log.Debug().Str("activity_id", a.ID).Str("product_id", *a.ProductID).
				Msg("venta con producto inexistente excluida del cálculo de márgenes")
			continue
		}
		m, ok := perProduct[p.ID]
		if !ok {
			m = &dto.ProductMarginDTO{ProductID: p.ID}
			perProduct[p.ID] = m
		}
		m.SalesCount++
		m.TotalRevenue = m.TotalRevenue.Add(a.Amount)
		m.TotalCost = m.TotalCost.Add(p.UnitCost.Mul(a.Quantity.Abs()))
	}

	margins := make([]dto.ProductMarginDTO, 0, len(perProduct))
	for _, m := range perProduct {
		m.Profit = m.TotalRevenue.Sub(m.TotalCost)
		if m.TotalRevenue.IsZero() {
			m.MarginPercentage = decimal.Zero
		} else {
			m.MarginPercentage = m.Profit.Div(m.TotalRevenue).Mul(hundred).Round(2)
		}
		margins = append(margins, *m)
	}

	sort.Slice(margins, func(i, j int) bool {
		if !margins[i].Profit.Equal(margins[j].Profit) {
			return margins[i].Profit.GreaterThan(margins[j].Profit)
		}
		return margins[i].ProductID < margins[j].ProductID
	})
	return margins, nil
}

// Revenue reporte de ingresos del rango: margen bruto de las ventas menos los
// costos mensuales (envíos, marketing, estructura) del agregador de costos,
// con desglose por bucket de la granularidad pedida.
func (uc *UseCase) Revenue(ctx context.Context, period Period, startDate, endDate string) (*dto.RevenueReportDTO, error) {
	if !period.IsValid() {
		return nil, domain.NewValidationError("period must be one of DAILY, MONTHLY, YEARLY")
	}
	rng := dto.DateRangeRequest{StartDate: startDate, EndDate: endDate}
	from, to, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, domain.NewValidationError("start_date and end_date are required")
	}

	sales, index, err := uc.salesWithProducts(ctx, rng)
	if err != nil {
		return nil, err
	}

	totalRevenue := decimal.Zero
	totalCost := decimal.Zero
	periodBuckets := make(map[string]*dto.RevenuePeriodDTO)
	for _, a := range sales {
		p, ok := index[*a.ProductID]
		if !ok {
			uc.log.Debug().Str("activity_id", a.ID).Str("product_id", *a.ProductID).
				Msg("venta con producto inexistente excluida del reporte de ingresos")
			continue
		}
		cogs := p.UnitCost.Mul(a.Quantity.Abs())
		totalRevenue = totalRevenue.Add(a.Amount)
		totalCost = totalCost.Add(cogs)

		key := a.Date.UTC().Format(period.layout())
		b, ok := periodBuckets[key]
		if !ok {
			b = &dto.RevenuePeriodDTO{Period: key}
			periodBuckets[key] = b
		}
		b.Revenue = b.Revenue.Add(a.Amount)
		b.GrossMargin = b.GrossMargin.Add(a.Amount.Sub(cogs))
	}

	totals, err := uc.costs.Aggregate(ctx, *from, *to)
	if err != nil {
		return nil, err
	}

	grossMargin := totalRevenue.Sub(totalCost)
	netResult := grossMargin.Sub(totals.Shipping).Sub(totals.Marketing.Add(totals.Overhead))

	grossRate := decimal.Zero
	netRate := decimal.Zero
	if !totalRevenue.IsZero() {
		grossRate = grossMargin.Div(totalRevenue).Mul(hundred).Round(2)
		netRate = netResult.Div(totalRevenue).Mul(hundred).Round(2)
	}

	keys := make([]string, 0, len(periodBuckets))
	for k := range periodBuckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	periods := make([]dto.RevenuePeriodDTO, 0, len(keys))
	for _, k := range keys {
		periods = append(periods, *periodBuckets[k])
	}

	return &dto.RevenueReportDTO{
		StartDate:       startDate,
		EndDate:         endDate,
		TotalRevenue:    totalRevenue,
		TotalCost:       totalCost,
		GrossMargin:     grossMargin,
		GrossMarginRate: grossRate,
		ShippingCost:    totals.Shipping,
		MarketingCost:   totals.Marketing,
		OverheadCost:    totals.Overhead,
		NetResult:       netResult,
		NetResultRate:   netRate,
		Periods:         periods,
	}, nil
}

// ListActivities listado paginado del ledger con filtros AND-combinados
// (rango, tipo, producto), ordenado por fecha descendente. Una página más
// allá de la última devuelve vacío con los metadatos correctos, nunca error.
func (uc *UseCase) ListActivities(ctx context.Context, filter dto.ActivityFilter) (*dto.ActivityListResponse, error) {
	from, to, err := parseRange(dto.DateRangeRequest{StartDate: filter.StartDate, EndDate: filter.EndDate})
	if err != nil {
		return nil, err
	}
	activities, err := uc.activities.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*entity.Activity, 0, len(activities))
	for _, a := range activities {
		if !inRange(a.Date, from, to) {
			continue
		}
		if filter.Type != "" && a.Type != entity.ActivityType(filter.Type) {
			continue
		}
		if filter.ProductID != nil && (a.ProductID == nil || *a.ProductID != *filter.ProductID) {
			continue
		}
		filtered = append(filtered, a)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
	})

	page := filter.PageRequest
	page.Normalize()
	total := len(filtered)
	totalPages := (total + page.PageSize - 1) / page.PageSize

	start := (page.Page - 1) * page.PageSize
	end := start + page.PageSize
	if start > total {
		start, end = total, total
	} else if end > total {
		end = total
	}

	items := make([]dto.ActivityResponse, 0, end-start)
	for _, a := range filtered[start:end] {
		items = append(items, *dto.ToActivityResponse(a))
	}

	return &dto.ActivityListResponse{
		Activities: items,
		PageResponse: dto.PageResponse{
			Page:       page.Page,
			PageSize:   page.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// salesWithProducts ventas del rango que referencian producto, junto con el
// índice de productos para el join en memoria.
func (uc *UseCase) salesWithProducts(ctx context.Context, rng dto.DateRangeRequest) ([]*entity.Activity, map[string]*entity.Product, error) {
	from, to, err := parseRange(rng)
	if err != nil {
		return nil, nil, err
	}
	activities, err := uc.activities.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	index, err := uc.productIndex(ctx)
	if err != nil {
		return nil, nil, err
	}

	sales := make([]*entity.Activity, 0, len(activities))
	for _, a := range activities {
		if a.Type != entity.ActivityTypeSale || a.ProductID == nil {
			continue
		}
		if !inRange(a.Date, from, to) {
			continue
		}
		sales = append(sales, a)
	}
	return sales, index, nil
}

func (uc *UseCase) productIndex(ctx context.Context) (map[string]*entity.Product, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index, nil
}

// parseRange interpreta el rango inclusivo. Una fecha final sin hora se
// extiende al final del día para que el límite superior sea inclusivo.
func parseRange(rng dto.DateRangeRequest) (from, to *time.Time, err error) {
	if rng.StartDate != "" {
		t, perr := domactivity.ParseDate(rng.StartDate)
		if perr != nil {
			return nil, nil, domain.NewValidationError("start_date must be a valid ISO 8601 string")
		}
		from = &t
	}
	if rng.EndDate != "" {
		t, perr := domactivity.ParseDate(rng.EndDate)
		if perr != nil {
			return nil, nil, domain.NewValidationError("end_date must be a valid ISO 8601 string")
		}
		if len(rng.EndDate) == len("2006-01-02") {
			t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		}
		to = &t
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, domain.NewValidationError("start_date must not be after end_date")
	}
	return from, to, nil
}

// inRange pertenencia al rango inclusivo [from, to]; nil = sin límite.
func inRange(date time.Time, from, to *time.Time) bool {
	if from != nil && date.Before(*from) {
		return false
	}
	if to != nil && date.After(*to) {
		return false
	}
	return true
}
