package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hugohenrick/pos-inventario/internal/domain/user"
	"github.com/hugohenrick/pos-inventario/pkg/apperror"
	"github.com/hugohenrick/pos-inventario/pkg/logger"
)

// ErrCredentialsMissing indica login sem email ou senha
var ErrCredentialsMissing = errors.New("email y password son obligatorios")

// UserService implementa cadastro, login e remoção de usuários
type UserService struct {
	users user.Repository
	log   logger.Logger
	now   func() time.Time
}

// NewUserService cria uma nova instância de UserService
func NewUserService(users user.Repository, log logger.Logger) *UserService {
	return &UserService{users: users, log: log, now: time.Now}
}

// Register cadastra um usuário com senha em hash bcrypt
func (s *UserService) Register(ctx context.Context, r user.Registration) (*user.User, error) {
	if err := r.Validate(); err != nil {
		return nil, apperror.Validation("Datos del usuario incompletos o inválidos", err)
	}

	exists, err := s.users.ExistsByEmail(ctx, user.NormalizeEmail(r.Email))
	if err != nil {
		return nil, persistence(err)
	}
	if exists {
		return nil, userErr(user.ErrDuplicateEmail)
	}

	u, err := user.New(r, s.now())
	if err != nil {
		return nil, apperror.Internal("Error al procesar la contraseña", err)
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, userErr(err)
	}

	s.log.Info("usuario registrado", "usuario_id", u.ID)
	return u, nil
}

// Login confere email e senha; email desconhecido é NotFound, senha errada é Validation
func (s *UserService) Login(ctx context.Context, email, password string) (*user.User, error) {
	email = user.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, apperror.Validation("Datos incompletos", ErrCredentialsMissing)
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, userErr(err)
	}
	if !u.CheckPassword(password) {
		s.log.Warn("tentativa de login com senha inválida", "usuario_id", u.ID)
		return nil, apperror.Validation("Contraseña incorrecta", user.ErrInvalidCredential)
	}
	return u, nil
}

// Delete remove um usuário pelo ID
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return userErr(err)
	}
	s.log.Info("usuario eliminado", "usuario_id", id)
	return nil
}
