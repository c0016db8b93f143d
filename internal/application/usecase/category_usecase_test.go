package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

type fakeCategoryRepo struct {
	categories map[int64]*entity.Category
	nextID     int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[int64]*entity.Category), nextID: 1}
}

func (r *fakeCategoryRepo) Create(category *entity.Category) error {
	for _, c := range r.categories {
		if c.Name == category.Name {
			return domain.ErrDuplicate
		}
	}
	category.ID = r.nextID
	r.nextID++
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(id int64) (*entity.Category, error) {
	c := r.categories[id]
	if c == nil {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) Update(category *entity.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) List() ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.categories))
	for _, c := range r.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCategoryRepo) Delete(id int64) error {
	delete(r.categories, id)
	return nil
}

// countingProductRepo solo implementa lo que el caso de uso de categorías
// consulta: cuántos productos cuelgan de cada categoría.
type countingProductRepo struct {
	byCategory map[int64]int
}

func (r *countingProductRepo) Create(*entity.Product) error                    { return nil }
func (r *countingProductRepo) GetByID(int64) (*entity.Product, error)          { return nil, nil }
func (r *countingProductRepo) GetByIDForUpdate(int64) (*entity.Product, error) { return nil, nil }
func (r *countingProductRepo) GetBySKU(string) (*entity.Product, error)        { return nil, nil }
func (r *countingProductRepo) Update(*entity.Product) error                    { return nil }
func (r *countingProductRepo) UpdateQuantity(int64, int) error                 { return nil }
func (r *countingProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *countingProductRepo) CountByCategory(categoryID int64) (int, error) {
	return r.byCategory[categoryID], nil
}
func (r *countingProductRepo) Delete(int64) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Delete — protección de categorías con productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryDelete_ConProductosRechazada(t *testing.T) {
	catRepo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(catRepo, &countingProductRepo{byCategory: map[int64]int{}})

	created, err := uc.Create(dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	// Ahora la categoría tiene productos.
	ucConProductos := usecase.NewCategoryUseCase(catRepo,
		&countingProductRepo{byCategory: map[int64]int{created.ID: 3}})

	err = ucConProductos.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryInUse)
	got, _ := catRepo.GetByID(created.ID)
	assert.NotNil(t, got, "la categoría debe sobrevivir al intento de borrado")
}

func TestCategoryDelete_VaciaSeElimina(t *testing.T) {
	catRepo := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(catRepo, &countingProductRepo{byCategory: map[int64]int{}})

	created, err := uc.Create(dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	got, _ := catRepo.GetByID(created.ID)
	assert.Nil(t, got)
}

func TestCategoryDelete_Inexistente(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo(), &countingProductRepo{byCategory: map[int64]int{}})
	assert.ErrorIs(t, uc.Delete(42), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_NombreVacio(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo(), &countingProductRepo{byCategory: map[int64]int{}})
	_, err := uc.Create(dto.CreateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo(), &countingProductRepo{byCategory: map[int64]int{}})

	_, err := uc.Create(dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Bebidas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryUpdate_NombreVacioRechazado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo(), &countingProductRepo{byCategory: map[int64]int{}})

	created, err := uc.Create(dto.CreateCategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)

	empty := ""
	_, err = uc.Update(created.ID, dto.UpdateCategoryRequest{Name: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
