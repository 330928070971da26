package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/shop-inventory/internal/application/auth"
	"github.com/jhoicas/shop-inventory/internal/application/dto"
	"github.com/jhoicas/shop-inventory/internal/domain"
	"github.com/jhoicas/shop-inventory/internal/domain/entity"
	"github.com/jhoicas/shop-inventory/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/shop-inventory/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.UserRepo) {
	t.Helper()
	repo := memory.NewUserRepository()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret: testSecret,
		TTL:    30 * 24 * time.Hour,
		Issuer: "shop-inventory-test",
	}, bcrypt.MinCost, nil)
	return uc, repo
}

func alice() dto.RegisterRequest {
	return dto.RegisterRequest{Username: "alice", Email: "alice@shop.com", Password: "secret1"}
}

func TestRegister_RolPorDefectoEmployeeYToken(t *testing.T) {
	uc, repo := newAuth(t)

	res, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)

	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "alice@shop.com", res.Email)
	assert.Equal(t, entity.RoleEmployee, res.Role)
	require.NotEmpty(t, res.Token)

	sub, err := pkgjwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.ID, sub, "el subject del token es el id del usuario")

	stored, err := repo.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret1", stored.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestRegister_NormalizaEmail(t *testing.T) {
	uc, _ := newAuth(t)
	in := alice()
	in.Email = "  Alice@Shop.COM "

	res, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "alice@shop.com", res.Email)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ALICE@shop.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestRegister_EmailDuplicadoNoCreaRegistro(t *testing.T) {
	uc, repo := newAuth(t)
	_, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)

	dup := alice()
	dup.Username = "alice2"
	_, err = uc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, 1, repo.Count())
}

func TestRegister_UsernameDuplicado(t *testing.T) {
	uc, repo := newAuth(t)
	_, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)

	dup := alice()
	dup.Email = "otra@shop.com"
	_, err = uc.Register(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Equal(t, 1, repo.Count())
}

func TestRegister_Validaciones(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*dto.RegisterRequest)
		want error
	}{
		{"password corto", func(r *dto.RegisterRequest) { r.Password = "12345" }, domain.ErrPasswordTooShort},
		{"rol desconocido", func(r *dto.RegisterRequest) { r.Role = "owner" }, domain.ErrInvalidRole},
		{"username vacío", func(r *dto.RegisterRequest) { r.Username = "   " }, domain.ErrInvalidInput},
		{"email vacío", func(r *dto.RegisterRequest) { r.Email = "" }, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, repo := newAuth(t)
			in := alice()
			tc.mod(&in)
			_, err := uc.Register(context.Background(), in)
			assert.ErrorIs(t, err, tc.want)
			assert.Zero(t, repo.Count())
		})
	}
}

func TestRegister_Admin(t *testing.T) {
	uc, _ := newAuth(t)
	in := alice()
	in.Role = entity.RoleAdmin

	res, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.Role)
}

func TestLogin_Exitoso(t *testing.T) {
	uc, _ := newAuth(t)
	reg, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Email: "alice@shop.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, res.ID)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, entity.RoleEmployee, res.Role)
	assert.NotEmpty(t, res.Token)
}

func TestLogin_CredencialesInvalidasMismoError(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Register(context.Background(), alice())
	require.NoError(t, err)

	_, errPwd := uc.Login(context.Background(), dto.LoginRequest{Email: "alice@shop.com", Password: "wrong-pass"})
	_, errUser := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@shop.com", Password: "secret1"})

	assert.ErrorIs(t, errPwd, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUser, domain.ErrInvalidCredentials)
	assert.Equal(t, errPwd.Error(), errUser.Error(), "no se revela si el email existe")
}
