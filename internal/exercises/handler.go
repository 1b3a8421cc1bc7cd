package exercises

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/treinoapp/backend/internal/telemetry/tracing"
	"github.com/treinoapp/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type exercisesLister interface {
	ListByBodyPart(ctx context.Context, bodyPart string) ([]Exercise, error)
}

type Handler struct {
	catalog exercisesLister
}

func NewHandler(catalog exercisesLister) *Handler {
	return &Handler{
		catalog: catalog,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/exercicios", handler.handleList).Methods("GET", "OPTIONS").Name("exercicios")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.list")
	defer span.End()

	// no body part filter means the whole catalog
	bodyPart := r.URL.Query().Get("tipo")

	exercises, err := handler.catalog.ListByBodyPart(ctx, bodyPart)
	if err != nil {
		log.Errorf("list exercises [tipo=%s]: %s", bodyPart, err)
		pkg.WriteJSONError(w, "erro ao buscar exercicios", http.StatusInternalServerError)
		return
	}

	if exercises == nil {
		exercises = []Exercise{}
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("marshal exercises: %s", err)
		pkg.WriteJSONError(w, "erro ao buscar exercicios", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, exercisesJson)
}
