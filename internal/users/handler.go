package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/treinoapp/backend/internal/auth"
	"github.com/treinoapp/backend/internal/middleware"
	"github.com/treinoapp/backend/internal/telemetry/metrics"
	"github.com/treinoapp/backend/internal/telemetry/tracing"
	"github.com/treinoapp/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=users_mocks_test.go -package=users_test

type usersRepo interface {
	Add(ctx context.Context, user User) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, user *User) error
}

type RegisterRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type Handler struct {
	repo           usersRepo
	authService    *auth.Service
	metricsManager *metrics.Manager
}

func NewHandler(
	repo usersRepo,
	authService *auth.Service,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		authService:    authService,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginRateLimitAllowedPerMin int,
) {
	mainRouter.HandleFunc("/cadastro", handler.handleRegister).Methods("POST", "OPTIONS").Name("cadastro")
	mainRouter.HandleFunc("/logout", handler.handleLogout).Methods("POST", "OPTIONS").Name("logout")
	mainRouter.HandleFunc("/perfil", handler.handleGetProfile).Methods("GET", "OPTIONS").Name("perfil")
	mainRouter.HandleFunc("/atualizar-perfil", handler.handleUpdateProfile).Methods("POST", "OPTIONS").Name("atualizar-perfil")

	loginRouter := mainRouter.Path("/login").Subrouter()
	loginRouter.HandleFunc("", handler.handleLogin).Methods("POST", "OPTIONS").Name("login")

	// rate limit the /login endpoint to slow down credential guessing
	loginRouter.Use(middleware.RateLimit(
		rateLimiter, "login", loginRateLimitAllowedPerMin, handler.metricsManager,
	))
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.register")
	defer span.End()

	var registerReq RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "dados de cadastro invalidos", http.StatusBadRequest)
		return
	}

	if registerReq.Name == "" || registerReq.Email == "" || registerReq.Password == "" {
		pkg.WriteJSONError(w, "nome, email e senha sao obrigatorios", http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(registerReq.Email); err != nil {
		pkg.WriteJSONError(w, "email invalido", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(registerReq.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		pkg.WriteJSONError(w, "erro ao cadastrar usuario", http.StatusInternalServerError)
		return
	}

	addedUser, err := handler.repo.Add(ctx, User{
		Name:         registerReq.Name,
		Email:        registerReq.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	})
	switch {
	case errors.Is(err, ErrEmailTaken):
		pkg.WriteJSONError(w, "email ja cadastrado", http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("register user [%s]: %s", registerReq.Email, err)
		pkg.WriteJSONError(w, "erro ao cadastrar usuario", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("user.id", addedUser.ID))
	handler.metricsManager.CounterRegisteredUsers.Inc()

	log.Debugf("new user registered: %d", addedUser.ID)
	pkg.WriteResponse(
		w, pkg.ContentType.JSON,
		fmt.Sprintf(`{"mensagem":"usuario cadastrado com sucesso","id":%d}`, addedUser.ID),
		http.StatusCreated,
	)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.login")
	defer span.End()

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "dados de login invalidos", http.StatusBadRequest)
		return
	}

	if loginReq.Email == "" || loginReq.Password == "" {
		pkg.WriteJSONError(w, "email e senha sao obrigatorios", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByEmail(ctx, loginReq.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		log.Errorf("login, get user [%s]: %s", loginReq.Email, err)
		pkg.WriteJSONError(w, "erro ao fazer login", http.StatusInternalServerError)
		return
	}

	// same response for unknown email and wrong password
	if errors.Is(err, ErrUserNotFound) || !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		log.Tracef("failed login attempt for: %s", loginReq.Email)
		pkg.WriteJSONError(w, "credenciais invalidas", http.StatusUnauthorized)
		return
	}

	token, err := handler.authService.Login(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("login, generate token: %s", err)
		pkg.WriteJSONError(w, "erro ao fazer login", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))
	handler.metricsManager.CounterLogins.Inc()

	log.Tracef("new login success: user %d", user.ID)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token":%q}`, token))
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.logout")
	defer span.End()

	authToken := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if authToken == "" {
		pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
		return
	}

	if err := handler.authService.Logout(ctx, authToken); err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
			return
		}
		log.Errorf("logout: %s", err)
		pkg.WriteJSONError(w, "erro ao fazer logout", http.StatusInternalServerError)
		return
	}

	log.Tracef("logout success")
	pkg.WriteJSONResponseOK(w, `{"mensagem":"logout efetuado com sucesso"}`)
}

func (handler *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.profile")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.Get(ctx, userID)
	switch {
	case errors.Is(err, ErrUserNotFound):
		pkg.WriteJSONError(w, "usuario nao encontrado", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("get profile for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "erro ao buscar perfil", http.StatusInternalServerError)
		return
	}

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("marshal user %d: %s", userID, err)
		pkg.WriteJSONError(w, "erro ao buscar perfil", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, userJson)
}

func (handler *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "usersHandler.updateProfile")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
		return
	}

	var update ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Tracef("update profile, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "dados de perfil invalidos", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.Get(ctx, userID)
	switch {
	case errors.Is(err, ErrUserNotFound):
		pkg.WriteJSONError(w, "usuario nao encontrado", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("update profile, get user %d: %s", userID, err)
		pkg.WriteJSONError(w, "erro ao atualizar perfil", http.StatusInternalServerError)
		return
	}

	// fields absent from the request keep their stored value
	user.Profile.Apply(update)

	if err := handler.repo.UpdateProfile(ctx, user); err != nil {
		log.Errorf("update profile for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "erro ao atualizar perfil", http.StatusInternalServerError)
		return
	}

	log.Debugf("profile updated for user %d", userID)
	pkg.WriteJSONResponseOK(w, `{"mensagem":"perfil atualizado com sucesso"}`)
}
