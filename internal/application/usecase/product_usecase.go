package usecase

import (
	"context"

	"github.com/tu-usuario/atelier-stock/internal/application/dto"
	"github.com/tu-usuario/atelier-stock/internal/domain/entity"
	"github.com/tu-usuario/atelier-stock/internal/domain/repository"
)

// ProductUseCase lecturas del catálogo para presentación. El stock y los
// movimientos se manejan vía el coordinador de actividades, no aquí.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// GetByID obtiene un producto con los nombres de modelo y coloris resueltos.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	resp, err := uc.toResponse(ctx, product)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List lista el catálogo completo con nombres resueltos.
func (uc *ProductUseCase) List(ctx context.Context) (*dto.ProductListResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp, err := uc.toResponse(ctx, p)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// toResponse resuelve la cadena Model -> Coloris. Referencias rotas no son
// error: el nombre queda vacío.
func (uc *ProductUseCase) toResponse(ctx context.Context, p *entity.Product) (*dto.ProductResponse, error) {
	resp := &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		ModelID:   p.ModelID,
		Stock:     p.Stock,
		UnitCost:  p.UnitCost,
		SalePrice: p.SalePrice,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.ModelID == nil {
		return resp, nil
	}
	model, err := uc.repo.GetModelByID(ctx, *p.ModelID)
	if err != nil {
		return nil, err
	}
	if model == nil {
		return resp, nil
	}
	resp.ModelName = model.Name
	if model.ColorisID != nil {
		coloris, err := uc.repo.GetColorisByID(ctx, *model.ColorisID)
		if err != nil {
			return nil, err
		}
		if coloris != nil {
			resp.ColorisName = coloris.Name
		}
	}
	return resp, nil
}
