package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
	"github.com/jhoicas/shop-inventory/internal/domain"
	"github.com/jhoicas/shop-inventory/internal/domain/entity"
	"github.com/jhoicas/shop-inventory/internal/domain/repository"
	"github.com/jhoicas/shop-inventory/pkg/jwt"
	"github.com/jhoicas/shop-inventory/pkg/logger"
)

// MinPasswordLength longitud mínima de contraseña, validada también en el servidor.
const MinPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	jwtCfg     JWTConfig
	bcryptCost int
	log        *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. bcryptCost <= 0 usa bcrypt.DefaultCost.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, bcryptCost int, log *logger.Logger) *AuthUseCase {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, bcryptCost: bcryptCost, log: log}
}

// Register crea un usuario: valida rol y password, verifica unicidad de email y username,
// hashea con bcrypt y persiste. Devuelve los campos públicos más un token recién emitido.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(in.Username)
	email := NormalizeEmail(in.Email)
	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if username == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.IsValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.log.Info().Str("email", email).Msg("registro rechazado: email ya registrado")
		return nil, domain.ErrEmailAlreadyExists
	}
	existing, err = uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		uc.log.Info().Str("username", username).Msg("registro rechazado: username en uso")
		return nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// La unicidad también la garantizan los índices: una carrera entre dos registros
	// termina aquí con ErrEmailAlreadyExists / ErrUsernameTaken.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuario registrado")
	return uc.issue(user)
}

// Login verifica email/password y emite un token. Usuario inexistente y password incorrecto
// devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warn().Str("user_id", user.ID).Msg("login fallido")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.TTL)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Token:    token,
	}, nil
}

// NormalizeEmail recorta espacios y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
