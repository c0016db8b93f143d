package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/sales"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// El motor de ventas solo habla con los puertos ProductRepository/SaleRepository
// a través del TxRunner, así que un almacén en memoria basta para verificar los
// invariantes de stock sin levantar Postgres. El bloqueo de fila
// (SELECT FOR UPDATE) se modela con serialTxRunner: un mutex que serializa
// las transacciones igual que el lock de Postgres serializa dos ventas del
// mismo producto.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products map[int64]*entity.Product
	sales    map[int64]*entity.Sale
	nextSale int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[int64]*entity.Product),
		sales:    make(map[int64]*entity.Sale),
		nextSale: 1,
	}
}

func (s *fakeStore) addProduct(id int64, quantity int, price string) *entity.Product {
	p := &entity.Product{
		ID:       id,
		Name:     "Producto de prueba",
		SKU:      "SKU-TEST",
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
		IsActive: true,
	}
	s.products[id] = p
	return p
}

type fakeProductRepo struct{ store *fakeStore }

func (r *fakeProductRepo) Create(*entity.Product) error { return nil }
func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	return r.store.products[id], nil
}
func (r *fakeProductRepo) GetByIDForUpdate(id int64) (*entity.Product, error) {
	p := r.store.products[id]
	if p == nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(*entity.Product) error             { return nil }
func (r *fakeProductRepo) UpdateQuantity(id int64, quantity int) error {
	p := r.store.products[id]
	if p == nil {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) CountByCategory(int64) (int, error) { return 0, nil }
func (r *fakeProductRepo) Delete(int64) error                 { return nil }

type fakeSaleRepo struct{ store *fakeStore }

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	sale.ID = r.store.nextSale
	r.store.nextSale++
	cp := *sale
	r.store.sales[sale.ID] = &cp
	return nil
}
func (r *fakeSaleRepo) GetByID(id int64) (*entity.Sale, error) {
	s := r.store.sales[id]
	if s == nil {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}
func (r *fakeSaleRepo) Update(sale *entity.Sale) error {
	if _, ok := r.store.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *sale
	r.store.sales[sale.ID] = &cp
	return nil
}
func (r *fakeSaleRepo) List(repository.SaleFilter) ([]repository.SaleListItem, error) {
	return nil, nil
}
func (r *fakeSaleRepo) Delete(id int64) error {
	delete(r.store.sales, id)
	return nil
}

// fakeTxRunner ejecuta la función directamente sobre los repos en memoria.
// No hay rollback: los tests que esperan error verifican que el motor corta
// ANTES de cualquier escritura.
type fakeTxRunner struct{ store *fakeStore }

func (tr *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return fn(&fakeProductRepo{store: tr.store}, &fakeSaleRepo{store: tr.store})
}

// serialTxRunner serializa las transacciones con un mutex. Cada transacción
// relee el producto al entrar (GetByIDForUpdate), igual que el bloqueo de
// fila hace esperar y releer a la transacción que llega segunda.
type serialTxRunner struct {
	mu    sync.Mutex
	store *fakeStore
}

func (tr *serialTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return fn(&fakeProductRepo{store: tr.store}, &fakeSaleRepo{store: tr.store})
}

func newTestUseCase(store *fakeStore) *sales.SaleUseCase {
	return sales.NewSaleUseCase(&fakeTxRunner{store: store}, &fakeSaleRepo{store: store})
}

// ──────────────────────────────────────────────────────────────────────────────
// Record
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_DescuentaStockYCongelaPrecio(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, 10, "2500.00")
	uc := newTestUseCase(store)

	resp, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 1, Quantity: 3})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, 7, store.products[1].Quantity, "el stock debe quedar en 10-3")
	assert.Equal(t, int64(7), resp.SoldBy, "sold_by es el usuario autenticado")
	assert.True(t, resp.UnitPrice.Equal(decimal.RequireFromString("2500.00")),
		"unit_price debe ser el precio vigente del producto")
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("7500.00")))
	assert.NotEmpty(t, resp.Reference, "toda venta recibe una referencia")
}

func TestRecord_StockInsuficiente(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, 2, "100.00")
	uc := newTestUseCase(store)

	_, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 1, Quantity: 3})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, store.products[1].Quantity, "el stock no debe tocarse si la venta falla")
	assert.Empty(t, store.sales, "no debe persistirse ninguna venta")
}

func TestRecord_VentaExactaDejaStockEnCero(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, 5, "100.00")
	uc := newTestUseCase(store)

	_, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 1, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, store.products[1].Quantity, "vender todo el stock es válido")
}

func TestRecord_CantidadInvalida(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, 5, "100.00")
	uc := newTestUseCase(store)

	for _, qty := range []int{0, -1} {
		_, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 1, Quantity: qty})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d debe rechazarse", qty)
	}
}

func TestRecord_ProductoInexistente(t *testing.T) {
	uc := newTestUseCase(newFakeStore())

	_, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 99, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecord_VentasConcurrentesNoSobrevenden(t *testing.T) {
	// Dos vendedores compiten por la última unidad. Las transacciones se
	// serializan, así que exactamente una gana y la otra encuentra stock 0.
	store := newFakeStore()
	store.addProduct(1, 1, "100.00")
	uc := sales.NewSaleUseCase(&serialTxRunner{store: store}, &fakeSaleRepo{store: store})

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(seller int64) {
			defer wg.Done()
			_, err := uc.Record(context.Background(), seller, dto.CreateSaleRequest{ProductID: 1, Quantity: 1})
			errs <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(errs)

	var vendidas, rechazadas int
	for err := range errs {
		switch {
		case err == nil:
			vendidas++
		case errors.Is(err, domain.ErrInsufficientStock):
			rechazadas++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, vendidas, "solo una de las dos ventas debe concretarse")
	assert.Equal(t, 1, rechazadas, "la otra debe rechazarse por stock insuficiente")
	assert.Equal(t, 0, store.products[1].Quantity, "la unidad no puede venderse dos veces")
	assert.Len(t, store.sales, 1)
}

func TestRecord_PrecioNoSeRecalculaDespues(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, 10, "100.00")
	uc := newTestUseCase(store)

	resp, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 1, Quantity: 1})
	require.NoError(t, err)

	// El gerente sube el precio después de la venta.
	store.products[1].Price = decimal.RequireFromString("900.00")

	got, err := uc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.UnitPrice.Equal(decimal.RequireFromString("100.00")),
		"la venta conserva el precio del momento de la transacción")
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — re-liquidación con delta
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_AumentarCantidadDescuentaDelta(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, 10, "100.00")
	uc := newTestUseCase(store)

	resp, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 1, Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 7, store.products[1].Quantity)

	qty := 5
	updated, err := uc.Update(context.Background(), resp.ID, dto.UpdateSaleRequest{Quantity: &qty})
	require.NoError(t, err)

	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, 5, store.products[1].Quantity, "10 iniciales - 5 vendidos")
}

func TestUpdate_ReducirCantidadDevuelveStock(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, 10, "100.00")
	uc := newTestUseCase(store)

	resp, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 1, Quantity: 6})
	require.NoError(t, err)
	require.Equal(t, 4, store.products[1].Quantity)

	qty := 2
	_, err = uc.Update(context.Background(), resp.ID, dto.UpdateSaleRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 8, store.products[1].Quantity, "reducir la venta debe restituir la diferencia")
}

func TestUpdate_DisponibleIncluyeLaPropiaVenta(t *testing.T) {
	// Stock 0 tras vender 10 de 10: subir la venta a 11 excede lo disponible,
	// pero corregirla a 10 (sin cambio) o bajarla sí es válido.
	store := newFakeStore()
	store.addProduct(1, 10, "100.00")
	uc := newTestUseCase(store)

	resp, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 1, Quantity: 10})
	require.NoError(t, err)
	require.Equal(t, 0, store.products[1].Quantity)

	tooMany := 11
	_, err = uc.Update(context.Background(), resp.ID, dto.UpdateSaleRequest{Quantity: &tooMany})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, store.products[1].Quantity, "el intento fallido no debe mover el stock")

	max := 10
	_, err = uc.Update(context.Background(), resp.ID, dto.UpdateSaleRequest{Quantity: &max})
	assert.NoError(t, err, "re-confirmar la cantidad actual siempre es válido")
}

func TestUpdate_SoloNotasNoTocaStock(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, 10, "100.00")
	uc := newTestUseCase(store)

	resp, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 1, Quantity: 3})
	require.NoError(t, err)

	notes := "cliente pagó en efectivo"
	updated, err := uc.Update(context.Background(), resp.ID, dto.UpdateSaleRequest{Notes: &notes})
	require.NoError(t, err)

	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, 7, store.products[1].Quantity, "cambiar notas no re-liquida stock")
}

func TestUpdate_NoTocaElSnapshotDePrecio(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, 10, "100.00")
	uc := newTestUseCase(store)

	resp, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 1, Quantity: 2})
	require.NoError(t, err)

	store.products[1].Price = decimal.RequireFromString("500.00")

	qty := 4
	updated, err := uc.Update(context.Background(), resp.ID, dto.UpdateSaleRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, updated.UnitPrice.Equal(decimal.RequireFromString("100.00")),
		"corregir la cantidad no debe recalcular unit_price")
	assert.True(t, updated.Total.Equal(decimal.RequireFromString("400.00")),
		"el total usa el precio congelado")
}

func TestUpdate_VentaInexistente(t *testing.T) {
	uc := newTestUseCase(newFakeStore())

	qty := 1
	_, err := uc.Update(context.Background(), 99, dto.UpdateSaleRequest{Quantity: &qty})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete — restitución de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_RestituyeStock(t *testing.T) {
	store := newFakeStore()
	store.addProduct(1, 10, "100.00")
	uc := newTestUseCase(store)

	resp, err := uc.Record(context.Background(), 7, dto.CreateSaleRequest{ProductID: 1, Quantity: 4})
	require.NoError(t, err)
	require.Equal(t, 6, store.products[1].Quantity)

	require.NoError(t, uc.Delete(context.Background(), resp.ID))
	assert.Equal(t, 10, store.products[1].Quantity, "anular la venta devuelve la cantidad al stock")
	assert.Empty(t, store.sales)
}

func TestDelete_VentaInexistente(t *testing.T) {
	uc := newTestUseCase(newFakeStore())
	assert.ErrorIs(t, uc.Delete(context.Background(), 99), domain.ErrNotFound)
}
