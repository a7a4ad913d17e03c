// Package session mantiene la identidad autenticada de un workspace: usuario,
// token del backend, bandera de sesión concurrente y el cierre de sesión que
// limpia todo el estado de la aplicación.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/application/ports"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/entity"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/repository"
	pkgjwt "github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/jwt"
	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/pkg/logger"
)

// LoginRoute ruta a la que se navega tras cerrar sesión.
const LoginRoute = "/login"

const loginFailedMessage = "Login failed"

// State estado del ciclo de vida de la sesión.
type State string

const (
	StateAnonymous         State = "anonymous"
	StateAuthenticating    State = "authenticating"
	StateAuthenticated     State = "authenticated"
	StateConcurrentSession State = "concurrent-session-detected"
)

// Authenticator operaciones de autenticación contra el backend.
type Authenticator interface {
	Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResult, error)
	Logout(ctx context.Context) error
}

// Clearable store de dominio que se vacía al cerrar sesión.
type Clearable interface {
	Clear()
}

// MessageFunc traduce un error de transporte a un mensaje apto para la UI.
type MessageFunc func(error) string

// View copia inmutable del estado de la sesión.
type View struct {
	State          State        `json:"state"`
	User           *entity.User `json:"user,omitempty"`
	ErrorMessage   string       `json:"errorMessage,omitempty"`
	NewDeviceLogin bool         `json:"newDeviceLogin"`
	TokenExpiresAt *time.Time   `json:"tokenExpiresAt,omitempty"`
}

// Store sesión de un workspace. Implementa restclient.TokenSource y
// restclient.SessionGuard.
type Store struct {
	mu             sync.RWMutex
	state          State
	user           *entity.User
	token          string
	errorMessage   string
	newDeviceLogin bool
	loggingOut     bool
	clearables     []Clearable

	auth      Authenticator
	persisted *repository.ScopedState
	nav       ports.Navigator
	messageOf MessageFunc
	log       *logger.Logger
}

// New construye la sesión. auth puede asignarse después con SetAuthenticator
// porque el cliente REST necesita a la sesión como TokenSource.
func New(persisted *repository.ScopedState, nav ports.Navigator, log *logger.Logger) *Store {
	if nav == nil {
		nav = ports.NopNavigator{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		state:     StateAnonymous,
		persisted: persisted,
		nav:       nav,
		log:       log.Component("session"),
		messageOf: func(err error) string { return err.Error() },
	}
}

// SetMessageFunc reemplaza la traducción de errores a mensajes.
func (s *Store) SetMessageFunc(fn MessageFunc) {
	if fn != nil {
		s.messageOf = fn
	}
}

// SetAuthenticator asigna el cliente de autenticación.
func (s *Store) SetAuthenticator(a Authenticator) { s.auth = a }

// Register agrega stores que se vacían en Logout.
func (s *Store) Register(c ...Clearable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearables = append(s.clearables, c...)
}

// Login autentica contra el backend, guarda usuario y token y los persiste.
// En fallo deja ErrorMessage, vuelve a anonymous y retorna el error.
func (s *Store) Login(ctx context.Context, creds entity.Credentials) (*entity.User, error) {
	if s.auth == nil {
		return nil, errors.New("session: sin autenticador")
	}
	s.mu.Lock()
	s.state = StateAuthenticating
	s.errorMessage = ""
	s.mu.Unlock()

	res, err := s.auth.Login(ctx, creds)
	if err == nil && (res == nil || res.Token == "") {
		err = domain.ErrUnauthorized
	}
	if err != nil {
		msg := s.messageOf(err)
		if msg == "" {
			msg = loginFailedMessage
		}
		s.mu.Lock()
		s.state = StateAnonymous
		s.errorMessage = msg
		s.mu.Unlock()
		s.log.Warn().Err(err).Str("email", creds.Email).Msg("login rechazado")
		return nil, err
	}

	user := res.User
	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = &user
	s.token = res.Token
	s.newDeviceLogin = false
	s.mu.Unlock()

	if err := s.persist(ctx, res.Token, &user); err != nil {
		// el estado persistido es solo una pista; la sesión en memoria sigue válida
		s.log.Warn().Err(err).Msg("no se pudo persistir la sesión")
	}
	s.log.Info().Str("user_id", user.ID).Msg("sesión iniciada")
	return &user, nil
}

func (s *Store) persist(ctx context.Context, token string, user *entity.User) error {
	if s.persisted == nil {
		return nil
	}
	if err := s.persisted.SetString(ctx, repository.KeyToken, token); err != nil {
		return err
	}
	if err := s.persisted.SetJSON(ctx, repository.KeyUser, user); err != nil {
		return err
	}
	if user.CompanyID != "" {
		return s.persisted.SetString(ctx, repository.KeyDefaultCompany, user.CompanyID)
	}
	return nil
}

// Logout avisa al backend (best effort) y limpia todo sin condiciones: stores
// registrados, estado persistido y memoria. Termina navegando a /login.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	if s.loggingOut {
		s.mu.Unlock()
		return
	}
	s.loggingOut = true
	hadToken := s.token != ""
	clearables := append([]Clearable(nil), s.clearables...)
	s.mu.Unlock()

	if hadToken && s.auth != nil {
		if err := s.auth.Logout(ctx); err != nil {
			s.log.Warn().Err(err).Msg("logout en backend falló; se limpia igual")
		}
	}

	for _, c := range clearables {
		c.Clear()
	}
	if s.persisted != nil {
		if err := s.persisted.Clear(context.WithoutCancel(ctx)); err != nil {
			s.log.Error().Err(err).Msg("no se pudo limpiar el estado persistido")
		}
	}

	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.token = ""
	s.errorMessage = ""
	s.newDeviceLogin = false
	s.loggingOut = false
	s.mu.Unlock()

	s.log.Info().Msg("sesión cerrada")
	s.nav.Navigate(LoginRoute)
}

// ForceLogout atiende un 401 ordinario. Se ignora si no hay sesión o si ya se
// está cerrando (evita recursión cuando el propio logout recibe 401).
func (s *Store) ForceLogout(ctx context.Context) {
	s.mu.RLock()
	skip := s.loggingOut || s.state == StateAnonymous || s.state == StateAuthenticating
	s.mu.RUnlock()
	if skip {
		return
	}
	s.Logout(ctx)
}

// SetNewDeviceLogin activa o desactiva la bandera de sesión concurrente.
// Con la bandera activa la única acción ofrecida es Logout.
func (s *Store) SetNewDeviceLogin(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loggingOut {
		return
	}
	s.newDeviceLogin = active
	switch {
	case active:
		s.state = StateConcurrentSession
	case s.user != nil:
		s.state = StateAuthenticated
	default:
		s.state = StateAnonymous
	}
}

// Token devuelve el token vigente: memoria primero, luego estado persistido.
func (s *Store) Token() string {
	s.mu.RLock()
	tok := s.token
	s.mu.RUnlock()
	if tok != "" || s.persisted == nil {
		return tok
	}
	tok, err := s.persisted.GetString(context.Background(), repository.KeyToken)
	if err != nil {
		s.log.Debug().Err(err).Msg("lectura de token persistido")
		return ""
	}
	return tok
}

// Restore rehidrata token y usuario desde el estado persistido.
func (s *Store) Restore(ctx context.Context) error {
	if s.persisted == nil {
		return nil
	}
	tok, err := s.persisted.GetString(ctx, repository.KeyToken)
	if err != nil {
		return err
	}
	if tok == "" {
		return nil
	}
	var user entity.User
	found, err := s.persisted.GetJSON(ctx, repository.KeyUser, &user)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = tok
	if found {
		s.user = &user
	}
	s.state = StateAuthenticated
	return nil
}

// User usuario autenticado o nil.
func (s *Store) User() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// CompanyID empresa por defecto de la sesión.
func (s *Store) CompanyID() string {
	s.mu.RLock()
	u := s.user
	s.mu.RUnlock()
	if u != nil && u.CompanyID != "" {
		return u.CompanyID
	}
	if s.persisted == nil {
		return ""
	}
	id, _ := s.persisted.GetString(context.Background(), repository.KeyDefaultCompany)
	return id
}

// SetDefaultCompany cambia la empresa activa y la persiste.
func (s *Store) SetDefaultCompany(ctx context.Context, companyID string) error {
	s.mu.Lock()
	if s.user != nil {
		s.user.CompanyID = companyID
	}
	s.mu.Unlock()
	if s.persisted == nil {
		return nil
	}
	return s.persisted.SetString(ctx, repository.KeyDefaultCompany, companyID)
}

// Snapshot vista de la sesión para la UI.
func (s *Store) Snapshot() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v := View{
		State:          s.state,
		ErrorMessage:   s.errorMessage,
		NewDeviceLogin: s.newDeviceLogin,
	}
	if s.user != nil {
		u := *s.user
		v.User = &u
	}
	if exp, ok := pkgjwt.PeekExpiry(s.token); ok {
		v.TokenExpiresAt = &exp
	}
	return v
}
