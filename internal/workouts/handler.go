package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/treinoapp/backend/internal/auth"
	"github.com/treinoapp/backend/internal/exercises"
	"github.com/treinoapp/backend/internal/telemetry/metrics"
	"github.com/treinoapp/backend/internal/telemetry/tracing"
	"github.com/treinoapp/backend/internal/users"
	"github.com/treinoapp/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=workouts_mocks_test.go -package=workouts_test

type workoutsRepo interface {
	Create(ctx context.Context, workout Workout, workoutExercises []WorkoutExercise) (*Workout, error)
	Get(ctx context.Context, id int) (*Workout, error)
	GetDetail(ctx context.Context, id int) (*Detail, error)
	Update(ctx context.Context, workout *Workout, workoutExercises *[]WorkoutExercise) error
	List(ctx context.Context, privacy string) ([]Summary, error)
	Search(ctx context.Context, query string) ([]Summary, error)
	ListByIntensity(ctx context.Context, intensity string) ([]Summary, error)
	Favorite(ctx context.Context, userID, workoutID int) error
	Unfavorite(ctx context.Context, userID, workoutID int) error
	ListFavorites(ctx context.Context, userID int) ([]Summary, error)
}

type CreateRequest struct {
	Name        string            `json:"nome"`
	Description string            `json:"descricao"`
	Intensity   string            `json:"intensidade"`
	Privacy     string            `json:"privacidade"`
	Exercises   []WorkoutExercise `json:"exercicios"`
}

type FavoriteRequest struct {
	WorkoutID int `json:"treino_id"`
}

type Handler struct {
	repo           workoutsRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo workoutsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/treino", handler.handleCreate).Methods("POST", "OPTIONS").Name("treino-criar")
	mainRouter.HandleFunc("/treinos", handler.handleList).Methods("GET", "OPTIONS").Name("treinos")
	mainRouter.HandleFunc("/treinos/pesquisa", handler.handleSearch).Methods("GET", "OPTIONS").Name("treinos-pesquisa")
	mainRouter.HandleFunc("/treinos/intensidade", handler.handleListByIntensity).Methods("GET", "OPTIONS").Name("treinos-intensidade")
	mainRouter.HandleFunc("/treinos/favoritar", handler.handleFavorite).Methods("POST", "OPTIONS").Name("treinos-favoritar")
	mainRouter.HandleFunc("/treinos/desfavoritar", handler.handleUnfavorite).Methods("POST", "OPTIONS").Name("treinos-desfavoritar")
	mainRouter.HandleFunc("/treinos/favoritos", handler.handleListFavorites).Methods("GET", "OPTIONS").Name("treinos-favoritos")
	mainRouter.HandleFunc("/treinos/editar/{id:[0-9]+}", handler.handleUpdate).Methods("PUT", "OPTIONS").Name("treinos-editar")
	mainRouter.HandleFunc("/treinos/{id:[0-9]+}", handler.handleGet).Methods("GET", "OPTIONS").Name("treino-detalhe")
	mainRouter.HandleFunc("/validar/{id:[0-9]+}", handler.handleValidateOwnership).Methods("POST", "OPTIONS").Name("validar")
}

func (handler *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.create")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
		return
	}

	var createReq CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		log.Tracef("create workout, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "dados de treino invalidos", http.StatusBadRequest)
		return
	}

	if createReq.Name == "" || createReq.Intensity == "" {
		pkg.WriteJSONError(w, "nome e intensidade sao obrigatorios", http.StatusBadRequest)
		return
	}
	if len(createReq.Exercises) == 0 {
		pkg.WriteJSONError(w, "dados de exercicios invalidos ou nao fornecidos", http.StatusBadRequest)
		return
	}

	createdWorkout, err := handler.repo.Create(ctx, Workout{
		Name:        createReq.Name,
		Description: createReq.Description,
		Intensity:   createReq.Intensity,
		Privacy:     createReq.Privacy,
		OwnerID:     userID,
	}, createReq.Exercises)
	switch {
	case errors.Is(err, exercises.ErrExerciseNotFound):
		pkg.WriteJSONError(w, "um ou mais exercicios nao foram encontrados", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("create workout for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "erro ao criar treino", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("workout.id", createdWorkout.ID))
	handler.metricsManager.CounterWorkoutsCreated.Inc()

	log.Debugf("new workout created: %d [user %d]", createdWorkout.ID, userID)
	pkg.WriteResponse(
		w, pkg.ContentType.JSON,
		fmt.Sprintf(`{"mensagem":"treino criado com sucesso","id":%d}`, createdWorkout.ID),
		http.StatusCreated,
	)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.get")
	defer span.End()

	id, err := workoutIDFromPath(r)
	if err != nil {
		pkg.WriteJSONError(w, "id de treino invalido", http.StatusBadRequest)
		return
	}

	detail, err := handler.repo.GetDetail(ctx, id)
	switch {
	case errors.Is(err, ErrWorkoutNotFound):
		pkg.WriteJSONError(w, "treino nao encontrado", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("get workout %d: %s", id, err)
		pkg.WriteJSONError(w, "erro ao buscar treino", http.StatusInternalServerError)
		return
	}

	detailJson, err := json.Marshal(detail)
	if err != nil {
		log.Errorf("marshal workout %d: %s", id, err)
		pkg.WriteJSONError(w, "erro ao buscar treino", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, detailJson)
}

func (handler *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.update")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
		return
	}

	id, err := workoutIDFromPath(r)
	if err != nil {
		pkg.WriteJSONError(w, "id de treino invalido", http.StatusBadRequest)
		return
	}

	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Tracef("update workout, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "dados de treino invalidos", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, id)
	switch {
	case errors.Is(err, ErrWorkoutNotFound):
		pkg.WriteJSONError(w, "treino nao encontrado", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("update workout, get %d: %s", id, err)
		pkg.WriteJSONError(w, "erro ao atualizar treino", http.StatusInternalServerError)
		return
	}

	if workout.OwnerID != userID {
		log.Tracef("user %d denied edit of workout %d [owner %d]", userID, id, workout.OwnerID)
		pkg.WriteJSONError(w, "acesso negado: voce nao tem permissao para editar este treino", http.StatusForbidden)
		return
	}

	workout.Apply(update)

	err = handler.repo.Update(ctx, workout, update.Exercises)
	switch {
	case errors.Is(err, exercises.ErrExerciseNotFound):
		pkg.WriteJSONError(w, "um ou mais exercicios nao foram encontrados", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("update workout %d: %s", id, err)
		pkg.WriteJSONError(w, "erro ao atualizar treino", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout %d updated [user %d]", id, userID)
	pkg.WriteJSONResponseOK(w, `{"mensagem":"treino atualizado com sucesso"}`)
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.list")
	defer span.End()

	privacy := r.URL.Query().Get("privacidade")
	if privacy == "" {
		privacy = PrivacyPublic
	}

	summaries, err := handler.repo.List(ctx, privacy)
	if err != nil {
		log.Errorf("list workouts [%s]: %s", privacy, err)
		pkg.WriteJSONError(w, "erro ao buscar treinos", http.StatusInternalServerError)
		return
	}

	handler.writeSummaries(w, summaries)
}

func (handler *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.search")
	defer span.End()

	query := r.URL.Query().Get("query")
	span.SetAttributes(attribute.String("query", query))

	summaries, err := handler.repo.Search(ctx, query)
	if err != nil {
		log.Errorf("search workouts [%s]: %s", query, err)
		pkg.WriteJSONError(w, "erro ao buscar treinos", http.StatusInternalServerError)
		return
	}

	handler.writeSummaries(w, summaries)
}

func (handler *Handler) handleListByIntensity(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.listByIntensity")
	defer span.End()

	intensity := r.URL.Query().Get("intensidade")
	if intensity == "" {
		pkg.WriteJSONError(w, "intensidade e obrigatoria", http.StatusBadRequest)
		return
	}

	summaries, err := handler.repo.ListByIntensity(ctx, intensity)
	if err != nil {
		log.Errorf("list workouts by intensity [%s]: %s", intensity, err)
		pkg.WriteJSONError(w, "erro ao buscar treinos", http.StatusInternalServerError)
		return
	}

	handler.writeSummaries(w, summaries)
}

func (handler *Handler) handleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.favorite")
	defer span.End()

	userID, workoutID, ok := handler.favoriteParams(w, r)
	if !ok {
		return
	}

	if err := handler.repo.Favorite(ctx, userID, workoutID); err != nil {
		handler.writeFavoriteError(w, userID, workoutID, err)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"mensagem":"treino favoritado com sucesso"}`)
}

func (handler *Handler) handleUnfavorite(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.unfavorite")
	defer span.End()

	userID, workoutID, ok := handler.favoriteParams(w, r)
	if !ok {
		return
	}

	if err := handler.repo.Unfavorite(ctx, userID, workoutID); err != nil {
		handler.writeFavoriteError(w, userID, workoutID, err)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"mensagem":"treino removido dos favoritos com sucesso"}`)
}

func (handler *Handler) favoriteParams(w http.ResponseWriter, r *http.Request) (userID, workoutID int, ok bool) {
	userID, loggedIn := auth.UserIDFromContext(r.Context())
	if !loggedIn {
		pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
		return 0, 0, false
	}

	var favoriteReq FavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&favoriteReq); err != nil {
		log.Tracef("favorite workout, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "dados invalidos", http.StatusBadRequest)
		return 0, 0, false
	}
	if favoriteReq.WorkoutID == 0 {
		pkg.WriteJSONError(w, "treino_id e obrigatorio", http.StatusBadRequest)
		return 0, 0, false
	}

	return userID, favoriteReq.WorkoutID, true
}

func (handler *Handler) writeFavoriteError(w http.ResponseWriter, userID, workoutID int, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		pkg.WriteJSONError(w, "usuario nao encontrado", http.StatusNotFound)
	case errors.Is(err, ErrWorkoutNotFound):
		pkg.WriteJSONError(w, "treino nao encontrado", http.StatusNotFound)
	default:
		log.Errorf("favorite workout %d [user %d]: %s", workoutID, userID, err)
		pkg.WriteJSONError(w, "erro ao atualizar favoritos", http.StatusInternalServerError)
	}
}

func (handler *Handler) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.listFavorites")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
		return
	}

	summaries, err := handler.repo.ListFavorites(ctx, userID)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		pkg.WriteJSONError(w, "usuario nao encontrado", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("list favorites for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "erro ao buscar favoritos", http.StatusInternalServerError)
		return
	}

	handler.writeSummaries(w, summaries)
}

// handleValidateOwnership lets the app check upfront whether the current
// user may edit a workout, without sending the edit itself.
func (handler *Handler) handleValidateOwnership(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "workoutsHandler.validateOwnership")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
		return
	}

	id, err := workoutIDFromPath(r)
	if err != nil {
		pkg.WriteJSONError(w, "id de treino invalido", http.StatusBadRequest)
		return
	}

	workout, err := handler.repo.Get(ctx, id)
	switch {
	case errors.Is(err, ErrWorkoutNotFound):
		pkg.WriteJSONError(w, "treino nao encontrado", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("validate ownership, get workout %d: %s", id, err)
		pkg.WriteJSONError(w, "erro ao validar treino", http.StatusInternalServerError)
		return
	}

	if workout.OwnerID != userID {
		pkg.WriteJSONError(w, "acesso negado: voce nao tem permissao para editar este treino", http.StatusForbidden)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"mensagem":"usuario e dono do treino"}`)
}

func (handler *Handler) writeSummaries(w http.ResponseWriter, summaries []Summary) {
	if summaries == nil {
		summaries = []Summary{}
	}

	summariesJson, err := json.Marshal(summaries)
	if err != nil {
		log.Errorf("marshal workout summaries: %s", err)
		pkg.WriteJSONError(w, "erro ao buscar treinos", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, summariesJson)
}

func workoutIDFromPath(r *http.Request) (int, error) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		return 0, errors.New("empty workout id")
	}
	return strconv.Atoi(idStr)
}
