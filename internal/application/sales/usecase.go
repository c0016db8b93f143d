// Package sales implementa el motor de consistencia venta/stock.
//
// Invariantes que mantiene:
//   - product.quantity nunca queda negativo;
//   - la suma de cantidades vendidas nunca excede lo que estuvo disponible;
//   - unit_price es el precio del producto en el momento de la transacción.
//
// Toda escritura de stock pasa por aquí: no existe otra vía de mutación de
// product.quantity en la aplicación.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// SaleUseCase registra, corrige y elimina ventas de forma transaccional,
// con bloqueo de fila sobre el producto (SELECT FOR UPDATE) y Commit/Rollback.
type SaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// Record registra una venta nueva: bloquea la fila del producto, valida el
// stock disponible, descuenta la cantidad y persiste la venta con el precio
// congelado. soldBy es siempre el usuario autenticado (el cliente no lo elige).
func (uc *SaleUseCase) Record(ctx context.Context, soldBy int64, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var created *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		// Bloquea la fila del producto: dos ventas concurrentes del mismo
		// producto se serializan aquí y no pueden sobregirar el stock.
		product, err := productRepo.GetByIDForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Quantity > product.Quantity {
			return domain.ErrInsufficientStock
		}

		now := time.Now()
		if err := productRepo.UpdateQuantity(product.ID, product.Quantity-in.Quantity); err != nil {
			return err
		}
		sale := &entity.Sale{
			ProductID: product.ID,
			SoldBy:    soldBy,
			Quantity:  in.Quantity,
			UnitPrice: product.Price, // snapshot, no se recalcula después
			Reference: uuid.New().String(),
			Notes:     in.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		created = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(created), nil
}

// Update corrige una venta existente. Si cambia la cantidad, el stock se
// re-liquida con el delta: disponible = stock actual + cantidad previa de
// esta venta (lo que habría si la venta se revirtiera). El snapshot de
// unit_price no se toca.
func (uc *SaleUseCase) Update(ctx context.Context, saleID int64, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	var updated *entity.Sale
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		if in.Quantity != nil && *in.Quantity != sale.Quantity {
			product, err := productRepo.GetByIDForUpdate(sale.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			available := product.Quantity + sale.Quantity
			if *in.Quantity > available {
				return domain.ErrInsufficientStock
			}
			delta := *in.Quantity - sale.Quantity
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity-delta); err != nil {
				return err
			}
			sale.Quantity = *in.Quantity
		}
		if in.Notes != nil {
			sale.Notes = *in.Notes
		}
		sale.UpdatedAt = time.Now()
		if err := saleRepo.Update(sale); err != nil {
			return err
		}
		updated = sale
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(updated), nil
}

// Delete elimina una venta y devuelve su cantidad al stock del producto,
// en la misma transacción.
func (uc *SaleUseCase) Delete(ctx context.Context, saleID int64) error {
	return uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetByIDForUpdate(sale.ProductID)
		if err != nil {
			return err
		}
		if product != nil {
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity+sale.Quantity); err != nil {
				return err
			}
		}
		return saleRepo.Delete(sale.ID)
	})
}

// GetByID obtiene una venta (lectura simple, sin transacción).
func (uc *SaleUseCase) GetByID(_ context.Context, saleID int64) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	return toSaleResponse(sale), nil
}

// List lista ventas con filtros de producto, usuario y rango de fechas.
func (uc *SaleUseCase) List(_ context.Context, filter repository.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	items, err := uc.saleRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}
	for _, item := range items {
		resp := toSaleResponse(&item.Sale)
		resp.ProductName = item.ProductName
		resp.ProductSKU = item.ProductSKU
		resp.SoldByUsername = item.SoldByUsername
		out.Items = append(out.Items, *resp)
	}
	return out, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:        s.ID,
		ProductID: s.ProductID,
		SoldBy:    s.SoldBy,
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		Total:     s.Total(),
		Reference: s.Reference,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
