package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/treinoapp/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrExerciseNotFound = errors.New("exercise not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if exercise.Difficulty == "" {
		exercise.Difficulty = DefaultDifficulty
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO exercise (name, body_part, category, description, equipment, difficulty)
			VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;`,
		exercise.Name, exercise.BodyPart, exercise.Category,
		exercise.Description, exercise.Equipment, exercise.Difficulty,
	).Scan(&exercise.ID)
	if err != nil {
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	return &exercise, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.scanExercise(r.db.QueryRow(
		ctx,
		`SELECT id, name, body_part, category, description, equipment, difficulty
			FROM exercise WHERE id = $1;`,
		id,
	))
}

func (r *Repo) GetByName(ctx context.Context, name string) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.getbyname")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.scanExercise(r.db.QueryRow(
		ctx,
		`SELECT id, name, body_part, category, description, equipment, difficulty
			FROM exercise WHERE name = $1;`,
		name,
	))
}

// List returns catalog entries, optionally filtered by body part. An empty
// body part returns the whole catalog.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, name, body_part, category, description, equipment, difficulty
			FROM exercise
			WHERE ($1::text = '' OR body_part = $1)
			ORDER BY id;`,
		params.BodyPart,
	)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(
			&e.ID, &e.Name, &e.BodyPart, &e.Category,
			&e.Description, &e.Equipment, &e.Difficulty,
		); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list exercises rows: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(exercises)))

	return exercises, nil
}

// UpdateMediaByName patches the stored media reference of the entry with
// the given exact name. Returns false when no such entry exists.
func (r *Repo) UpdateMediaByName(ctx context.Context, name, mediaURL string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.updatemedia")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE exercise SET description = $1 WHERE name = $2;`,
		mediaURL, name,
	)
	if err != nil {
		return false, fmt.Errorf("update exercise media: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *Repo) scanExercise(row pgx.Row) (*Exercise, error) {
	var e Exercise
	err := row.Scan(
		&e.ID, &e.Name, &e.BodyPart, &e.Category,
		&e.Description, &e.Equipment, &e.Difficulty,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("scan exercise: %w", err)
	}
	return &e, nil
}
