package web

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

type memUserRepo struct {
	users map[int64]*entity.User
}

func (r *memUserRepo) Create(user *entity.User) error { return nil }
func (r *memUserRepo) GetByID(id int64) (*entity.User, error) {
	u := r.users[id]
	if u == nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}
func (r *memUserRepo) GetByUsername(string) (*entity.User, error) { return nil, nil }
func (r *memUserRepo) Update(user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}
func (r *memUserRepo) SetActive(id int64, active bool) error {
	u := r.users[id]
	if u == nil {
		return domain.ErrNotFound
	}
	u.IsActive = active
	return nil
}
func (r *memUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }

func newUserEditApp(repo *memUserRepo) *fiber.App {
	pages := NewUserPages(session.New(), usecase.NewUserUseCase(repo))
	app := fiber.New()
	app.Post("/users/:id", pages.Update)
	return app
}

func doPostForm(t *testing.T, app *fiber.App, target string, form url.Values) string {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	return resp.Header.Get(fiber.HeaderLocation)
}

func TestUserUpdate_EditaDatosYRol(t *testing.T) {
	repo := &memUserRepo{users: map[int64]*entity.User{
		3: {ID: 3, Username: "mrios", Role: entity.RoleEmployee, IsActive: true, PasswordHash: "$2a$hash"},
	}}
	app := newUserEditApp(repo)

	loc := doPostForm(t, app, "/users/3", url.Values{
		"email":      {"mrios@tienda.local"},
		"first_name": {"Marta"},
		"last_name":  {"Ríos"},
		"role":       {"manager"},
		"is_active":  {"on"},
	})
	assert.Equal(t, "/users", loc)

	saved := repo.users[3]
	assert.Equal(t, "mrios@tienda.local", saved.Email)
	assert.Equal(t, "Marta", saved.FirstName)
	assert.Equal(t, entity.RoleManager, saved.Role)
	assert.True(t, saved.IsActive)
	assert.Equal(t, "$2a$hash", saved.PasswordHash, "sin contraseña nueva el hash no se toca")
}

func TestUserUpdate_ContrasenaEnBlancoSeConserva(t *testing.T) {
	repo := &memUserRepo{users: map[int64]*entity.User{
		3: {ID: 3, Username: "mrios", Role: entity.RoleEmployee, IsActive: true, PasswordHash: "$2a$hash"},
	}}
	app := newUserEditApp(repo)

	doPostForm(t, app, "/users/3", url.Values{
		"role":     {"employee"},
		"password": {""},
	})
	assert.Equal(t, "$2a$hash", repo.users[3].PasswordHash)
}

func TestUserUpdate_ContrasenaNuevaSeRehashea(t *testing.T) {
	repo := &memUserRepo{users: map[int64]*entity.User{
		3: {ID: 3, Username: "mrios", Role: entity.RoleEmployee, IsActive: true, PasswordHash: "$2a$hash"},
	}}
	app := newUserEditApp(repo)

	doPostForm(t, app, "/users/3", url.Values{
		"role":     {"employee"},
		"password": {"clave-nueva-123"},
	})
	saved := repo.users[3]
	assert.NotEqual(t, "$2a$hash", saved.PasswordHash)
	assert.NotEqual(t, "clave-nueva-123", saved.PasswordHash, "la contraseña nunca se guarda en claro")
}

func TestUserUpdate_DesmarcarActivoDesactiva(t *testing.T) {
	repo := &memUserRepo{users: map[int64]*entity.User{
		3: {ID: 3, Username: "mrios", Role: entity.RoleEmployee, IsActive: true},
	}}
	app := newUserEditApp(repo)

	// El checkbox desmarcado no viaja en el formulario.
	doPostForm(t, app, "/users/3", url.Values{"role": {"employee"}})
	assert.False(t, repo.users[3].IsActive)
}

func TestUserUpdate_UsuarioInexistenteRedirige(t *testing.T) {
	app := newUserEditApp(&memUserRepo{users: map[int64]*entity.User{}})

	loc := doPostForm(t, app, "/users/99", url.Values{"role": {"employee"}})
	assert.Equal(t, "/users", loc)
}
