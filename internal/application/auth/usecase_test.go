package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
)

type stubUserRepo struct {
	byUsername map[string]*entity.User
}

func (r *stubUserRepo) Create(*entity.User) error { return nil }
func (r *stubUserRepo) GetByID(id int64) (*entity.User, error) {
	for _, u := range r.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *stubUserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.byUsername[username], nil
}
func (r *stubUserRepo) Update(*entity.User) error             { return nil }
func (r *stubUserRepo) SetActive(int64, bool) error           { return nil }
func (r *stubUserRepo) List(int, int) ([]*entity.User, error) { return nil, nil }

func repoWithUser(t *testing.T, username, password string, active bool) *stubUserRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &stubUserRepo{byUsername: map[string]*entity.User{
		username: {
			ID:           1,
			Username:     username,
			PasswordHash: string(hash),
			Role:         entity.RoleEmployee,
			IsActive:     active,
		},
	}}
}

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "tienda-api-test"}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc := auth.NewAuthUseCase(repoWithUser(t, "ana", "secreta123", true), testJWT)

	resp, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana", resp.User.Username)

	// El token lleva la identidad del usuario.
	userID, role, isSuperuser, err := pkgjwt.Parse(testJWT.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)
	assert.Equal(t, entity.RoleEmployee, role)
	assert.False(t, isSuperuser)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := auth.NewAuthUseCase(repoWithUser(t, "ana", "secreta123", true), testJWT)

	_, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(&stubUserRepo{byUsername: map[string]*entity.User{}}, testJWT)

	_, err := uc.Login(dto.LoginRequest{Username: "nadie", Password: "loquesea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaDesactivada(t *testing.T) {
	uc := auth.NewAuthUseCase(repoWithUser(t, "ana", "secreta123", false), testJWT)

	// Aunque la contraseña sea correcta, la cuenta desactivada no entra.
	_, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestToUserResponse_NuncaExponeElHash(t *testing.T) {
	uc := auth.NewAuthUseCase(repoWithUser(t, "ana", "secreta123", true), testJWT)

	resp, err := uc.Login(dto.LoginRequest{Username: "ana", Password: "secreta123"})
	require.NoError(t, err)
	// UserResponse no tiene campo de hash; verificamos que el username sí viaja.
	assert.Equal(t, "ana", resp.User.Username)
	assert.True(t, resp.User.IsActive)
}
