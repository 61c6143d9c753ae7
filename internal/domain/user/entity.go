package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes é o limite de entrada do bcrypt
const MaxPasswordBytes = 72

// Erros de domínio de usuários
var (
	ErrNotFound          = errors.New("usuario no encontrado")
	ErrDuplicateEmail    = errors.New("ya existe un usuario con ese email")
	ErrInvalidCredential = errors.New("contraseña incorrecta")
	ErrNameRequired      = errors.New("nombre es obligatorio")
	ErrNationalIDNeeded  = errors.New("cedula es obligatoria")
	ErrPhoneRequired     = errors.New("telefono es obligatorio")
	ErrEmailRequired     = errors.New("email es obligatorio")
	ErrPasswordRequired  = errors.New("password es obligatorio")
	ErrPasswordTooLong   = errors.New("password no puede superar 72 bytes")
)

// User representa um usuário do sistema
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"nombre"`
	NationalID string    `json:"cedula"`
	Phone      string    `json:"telefono"`
	Email      string    `json:"email"`
	Password   string    `json:"-"` // O campo senha não é retornado nas respostas JSON
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Registration contém os dados de cadastro informados pelo usuário
type Registration struct {
	Name       string
	NationalID string
	Phone      string
	Email      string
	Password   string
}

// Validate verifica se todos os campos foram informados e se a senha cabe no bcrypt
func (r Registration) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, ErrNameRequired)
	}
	if strings.TrimSpace(r.NationalID) == "" {
		errs = append(errs, ErrNationalIDNeeded)
	}
	if strings.TrimSpace(r.Phone) == "" {
		errs = append(errs, ErrPhoneRequired)
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, ErrEmailRequired)
	}
	if r.Password == "" {
		errs = append(errs, ErrPasswordRequired)
	}
	if len(r.Password) > MaxPasswordBytes {
		errs = append(errs, ErrPasswordTooLong)
	}
	return errors.Join(errs...)
}

// New cria um usuário com ID novo e senha já convertida em hash
func New(r Registration, now time.Time) (*User, error) {
	u := &User{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(r.Name),
		NationalID: strings.TrimSpace(r.NationalID),
		Phone:      strings.TrimSpace(r.Phone),
		Email:      NormalizeEmail(r.Email),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.SetPassword(r.Password); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail apara espaços e converte para minúsculas
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword configura a senha do usuário com hash
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifica se a senha fornecida é válida
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
