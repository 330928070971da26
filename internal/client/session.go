package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/jhoicas/shop-inventory/internal/application/dto"
)

// SessionFileEnv permite ubicar el archivo de sesión fuera del directorio de configuración.
const SessionFileEnv = "SHOPCTL_SESSION_FILE"

// Session usuario autenticado y su token. El valor cero representa "sin sesión".
type Session struct {
	User  dto.UserResponse `json:"user"`
	Token string           `json:"token"`
}

// SessionFrom construye la sesión a partir de la respuesta de login o registro.
func SessionFrom(resp *dto.AuthResponse) *Session {
	return &Session{User: resp.User(), Token: resp.Token}
}

// LoggedIn indica si hay token guardado.
func (s *Session) LoggedIn() bool {
	return s != nil && s.Token != ""
}

// IsAdmin indica si el usuario de la sesión tiene rol admin.
func (s *Session) IsAdmin() bool {
	return s.LoggedIn() && s.User.Role == "admin"
}

// SessionStore persiste la sesión entre ejecuciones.
type SessionStore interface {
	Load() (*Session, error)
	Save(s *Session) error
	Clear() error
}

// FileStore guarda la sesión como JSON con permisos 0600.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath $SHOPCTL_SESSION_FILE o <UserConfigDir>/shopctl/session.json.
func DefaultSessionPath() (string, error) {
	if p := os.Getenv(SessionFileEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("directorio de configuración: %w", err)
	}
	return filepath.Join(dir, "shopctl", "session.json"), nil
}

// Load devuelve una sesión vacía si el archivo no existe.
func (f *FileStore) Load() (*Session, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer sesión: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("sesión corrupta en %s: %w", f.path, err)
	}
	return &s, nil
}

func (f *FileStore) Save(s *Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("crear directorio de sesión: %w", err)
	}
	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}
