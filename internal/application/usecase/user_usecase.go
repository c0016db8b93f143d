package usecase

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	appauth "github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/authz"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para la gestión de usuarios.
// Invariantes: nunca se persiste un usuario sin credencial usable, y un
// superusuario siempre queda con rol manager.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create crea un usuario: valida la contraseña, la hashea con bcrypt y
// normaliza el rol. Devuelve ErrDuplicate si el username ya existe.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Username == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Password == "" {
		return nil, domain.ErrPasswordRequired
	}
	role := in.Role
	switch role {
	case "":
		role = entity.RoleEmployee
	case entity.RoleManager, entity.RoleEmployee:
	default:
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	user := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
		IsSuperuser:  in.IsSuperuser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.NormalizeRole()
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	return appauth.ToUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(id int64) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return appauth.ToUserResponse(user), nil
}

// Update actualiza un usuario. La contraseña solo cambia si se envía una nueva.
func (uc *UserUseCase) Update(id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, domain.ErrPasswordRequired
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil {
		switch *in.Role {
		case entity.RoleManager, entity.RoleEmployee:
			user.Role = *in.Role
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.NormalizeRole()
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	return appauth.ToUserResponse(user), nil
}

// List lista usuarios con paginación.
func (uc *UserUseCase) List(limit, offset int) (*dto.UserListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	users, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.UserListResponse{
		Items: make([]dto.UserResponse, 0, len(users)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, u := range users {
		out.Items = append(out.Items, *appauth.ToUserResponse(u))
	}
	return out, nil
}

// Deactivate desactiva la cuenta objetivo aplicando la puerta de permisos:
// nadie se desactiva a sí mismo y un gerente solo cae ante un superusuario.
// La denegación llega como error de dominio, nunca como panic.
func (uc *UserUseCase) Deactivate(actor authz.Actor, targetID int64) error {
	target, err := uc.repo.GetByID(targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}
	if err := authz.CanDeactivate(actor, target); err != nil {
		return err
	}
	return uc.repo.SetActive(target.ID, false)
}
