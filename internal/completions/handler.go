package completions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/treinoapp/backend/internal/auth"
	"github.com/treinoapp/backend/internal/exercises"
	"github.com/treinoapp/backend/internal/telemetry/metrics"
	"github.com/treinoapp/backend/internal/telemetry/tracing"
	"github.com/treinoapp/backend/internal/users"
	"github.com/treinoapp/backend/internal/workouts"
	"github.com/treinoapp/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=completions_mocks_test.go -package=completions_test

type completionsRepo interface {
	Add(ctx context.Context, completion Completion, timings []ExerciseTiming) (*Completion, error)
	ListForUser(ctx context.Context, userID int) ([]Summary, error)
	ListCompletionTimes(ctx context.Context, userID int) ([]time.Time, error)
}

type FinalizeRequest struct {
	WorkoutID int              `json:"treino_id"`
	TotalTime int              `json:"total_time"`
	Timings   []ExerciseTiming `json:"exercicios_tempo"`
}

type Handler struct {
	repo           completionsRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo completionsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/treinos/finalizar", handler.handleFinalize).Methods("POST", "OPTIONS").Name("treinos-finalizar")
	mainRouter.HandleFunc("/treinos/finalizados", handler.handleListCompleted).Methods("GET", "OPTIONS").Name("treinos-finalizados")
	mainRouter.HandleFunc("/treinos/frequencia", handler.handleFrequency).Methods("GET", "OPTIONS").Name("treinos-frequencia")
}

func (handler *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "completionsHandler.finalize")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
		return
	}

	var finalizeReq FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&finalizeReq); err != nil {
		log.Tracef("finalize workout, unmarshal json params: %s", err)
		pkg.WriteJSONError(w, "dados invalidos", http.StatusBadRequest)
		return
	}
	if finalizeReq.WorkoutID == 0 {
		pkg.WriteJSONError(w, "treino_id e obrigatorio", http.StatusBadRequest)
		return
	}

	completion, err := handler.repo.Add(ctx, Completion{
		WorkoutID: finalizeReq.WorkoutID,
		UserID:    userID,
		TotalTime: finalizeReq.TotalTime,
	}, finalizeReq.Timings)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		pkg.WriteJSONError(w, "usuario nao encontrado", http.StatusNotFound)
		return
	case errors.Is(err, workouts.ErrWorkoutNotFound):
		pkg.WriteJSONError(w, "treino nao encontrado", http.StatusNotFound)
		return
	case errors.Is(err, exercises.ErrExerciseNotFound):
		pkg.WriteJSONError(w, "um ou mais exercicios nao foram encontrados", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("finalize workout %d [user %d]: %s", finalizeReq.WorkoutID, userID, err)
		pkg.WriteJSONError(w, "erro ao finalizar treino", http.StatusInternalServerError)
		return
	}

	span.SetAttributes(attribute.Int("completion.id", completion.ID))
	handler.metricsManager.CounterWorkoutsFinalized.Inc()

	log.Debugf("workout %d finalized by user %d: completion %d", finalizeReq.WorkoutID, userID, completion.ID)
	pkg.WriteJSONResponseOK(w, `{"mensagem":"treino finalizado com sucesso"}`)
}

func (handler *Handler) handleListCompleted(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "completionsHandler.listCompleted")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
		return
	}

	summaries, err := handler.repo.ListForUser(ctx, userID)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		pkg.WriteJSONError(w, "usuario nao encontrado", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("list completions for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "erro ao buscar treinos finalizados", http.StatusInternalServerError)
		return
	}

	if summaries == nil {
		summaries = []Summary{}
	}

	summariesJson, err := json.Marshal(summaries)
	if err != nil {
		log.Errorf("marshal completions for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "erro ao buscar treinos finalizados", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, summariesJson)
}

func (handler *Handler) handleFrequency(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "completionsHandler.frequency")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		pkg.WriteJSONError(w, "nao autorizado", http.StatusUnauthorized)
		return
	}

	completedAts, err := handler.repo.ListCompletionTimes(ctx, userID)
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		pkg.WriteJSONError(w, "usuario nao encontrado", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("completion frequency for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "erro ao calcular frequencia", http.StatusInternalServerError)
		return
	}

	groupByMonth := r.URL.Query().Get("porMes") == "true"
	span.SetAttributes(attribute.Bool("by.month", groupByMonth))

	var frequency any
	if groupByMonth {
		frequency = FrequencyByMonth(completedAts)
	} else {
		frequency = Frequency(completedAts)
	}

	frequencyJson, err := json.Marshal(frequency)
	if err != nil {
		log.Errorf("marshal frequency for user %d: %s", userID, err)
		pkg.WriteJSONError(w, "erro ao calcular frequencia", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, frequencyJson)
}
