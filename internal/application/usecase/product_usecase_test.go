package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ─── Fakes en memoria ────────────────────────────────────────────────────────

type memProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[int64]*entity.Product), nextID: 1}
}

func (r *memProductRepo) Create(product *entity.Product) error {
	for _, p := range r.products {
		if p.SKU == product.SKU {
			return domain.ErrDuplicate
		}
	}
	product.ID = r.nextID
	r.nextID++
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id int64) (*entity.Product, error) {
	p := r.products[id]
	if p == nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByIDForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(product *entity.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateQuantity(id int64, quantity int) error {
	p := r.products[id]
	if p == nil {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *memProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memProductRepo) CountByCategory(int64) (int, error) { return 0, nil }

func (r *memProductRepo) Delete(id int64) error {
	delete(r.products, id)
	return nil
}

type memSupplierRepo struct {
	suppliers map[int64]*entity.Supplier
}

func (r *memSupplierRepo) Create(*entity.Supplier) error { return nil }
func (r *memSupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	s := r.suppliers[id]
	if s == nil {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}
func (r *memSupplierRepo) Update(*entity.Supplier) error     { return nil }
func (r *memSupplierRepo) List() ([]*entity.Supplier, error) { return nil, nil }
func (r *memSupplierRepo) Delete(int64) error                { return nil }

// newProductTestUseCase arma el caso de uso con una categoría (ID 1) y un
// proveedor (ID 1) ya sembrados.
func newProductTestUseCase(t *testing.T) (*usecase.ProductUseCase, *memProductRepo) {
	t.Helper()
	categoryRepo := newFakeCategoryRepo()
	require.NoError(t, categoryRepo.Create(&entity.Category{Name: "Bebidas"}))
	supplierRepo := &memSupplierRepo{suppliers: map[int64]*entity.Supplier{
		1: {ID: 1, Name: "Distribuidora Central", IsActive: true},
	}}
	productRepo := newMemProductRepo()
	return usecase.NewProductUseCase(productRepo, categoryRepo, supplierRepo), productRepo
}

func createProduct(t *testing.T, uc *usecase.ProductUseCase, supplierID *int64) *dto.ProductResponse {
	t.Helper()
	out, err := uc.Create(dto.CreateProductRequest{
		Name:       "Café molido 500g",
		SKU:        "CAF-500",
		CategoryID: 1,
		SupplierID: supplierID,
		Price:      decimal.RequireFromString("3200.00"),
	})
	require.NoError(t, err)
	return out
}

// ─── Precio ──────────────────────────────────────────────────────────────────

func TestProductCreate_PrecioNegativoSeRechaza(t *testing.T) {
	uc, repo := newProductTestUseCase(t)

	_, err := uc.Create(dto.CreateProductRequest{
		Name:       "Café molido 500g",
		SKU:        "CAF-500",
		CategoryID: 1,
		Price:      decimal.RequireFromString("-1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.products, "no debe persistirse nada con precio negativo")
}

func TestProductUpdate_PrecioNegativoSeRechaza(t *testing.T) {
	uc, _ := newProductTestUseCase(t)
	created := createProduct(t, uc, nil)

	bad := decimal.RequireFromString("-0.01")
	_, err := uc.Update(created.ID, dto.UpdateProductRequest{Price: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("3200.00")),
		"el precio vigente no debe tocarse")
}

// ─── Proveedor ───────────────────────────────────────────────────────────────

func TestProductUpdate_ProveedorCeroDesvincula(t *testing.T) {
	uc, _ := newProductTestUseCase(t)
	supplierID := int64(1)
	created := createProduct(t, uc, &supplierID)
	require.NotNil(t, created.SupplierID)

	sinProveedor := int64(0)
	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{SupplierID: &sinProveedor})
	require.NoError(t, err)
	assert.Nil(t, updated.SupplierID, "supplier_id = 0 debe dejar el producto sin proveedor")

	got, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.SupplierID)
}

func TestProductUpdate_ProveedorNilNoSeToca(t *testing.T) {
	uc, _ := newProductTestUseCase(t)
	supplierID := int64(1)
	created := createProduct(t, uc, &supplierID)

	desc := "ahora con tueste oscuro"
	updated, err := uc.Update(created.ID, dto.UpdateProductRequest{Description: &desc})
	require.NoError(t, err)
	require.NotNil(t, updated.SupplierID, "omitir supplier_id debe conservar el proveedor")
	assert.Equal(t, supplierID, *updated.SupplierID)
}

func TestProductUpdate_ProveedorInexistente(t *testing.T) {
	uc, _ := newProductTestUseCase(t)
	created := createProduct(t, uc, nil)

	missing := int64(99)
	_, err := uc.Update(created.ID, dto.UpdateProductRequest{SupplierID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
