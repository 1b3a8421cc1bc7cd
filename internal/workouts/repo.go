package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/treinoapp/backend/internal/exercises"
	"github.com/treinoapp/backend/internal/telemetry/tracing"
	"github.com/treinoapp/backend/internal/users"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create stores the workout, its exercise associations, and the creator's
// favorite link as one transaction. Fails without persisting anything when
// any of the exercise ids is unknown.
func (r *Repo) Create(ctx context.Context, workout Workout, workoutExercises []WorkoutExercise) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if workout.CreatedAt.IsZero() {
		workout.CreatedAt = time.Now()
	}
	if workout.Privacy == "" {
		workout.Privacy = PrivacyPrivate
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if err = checkExercisesExist(ctx, tx, workoutExercises); err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO workout (name, description, intensity, created_at, owner_id, privacy)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`,
		workout.Name, workout.Description, workout.Intensity,
		workout.CreatedAt, workout.OwnerID, workout.Privacy,
	).Scan(&workout.ID)
	if err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	for _, we := range workoutExercises {
		if _, err = tx.Exec(ctx, `
			INSERT INTO workout_exercise (workout_id, exercise_id, sets, reps, weight)
			VALUES ($1, $2, $3, $4, $5)
		`,
			workout.ID, we.ExerciseID, we.Sets, we.Reps, we.Weight,
		); err != nil {
			return nil, fmt.Errorf("insert workout exercise %d: %w", we.ExerciseID, err)
		}
	}

	// the creator starts with their own workout favorited
	if _, err = tx.Exec(ctx, `
		INSERT INTO favorite (user_id, workout_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`,
		workout.OwnerID, workout.ID,
	); err != nil {
		return nil, fmt.Errorf("insert creator favorite: %w", err)
	}

	span.SetAttributes(attribute.Int("workout.id", workout.ID))

	return &workout, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var workout Workout
	err = r.db.QueryRow(ctx, `
		SELECT id, name, description, intensity, created_at, owner_id, privacy
		FROM workout
		WHERE id = $1
	`, id).Scan(
		&workout.ID, &workout.Name, &workout.Description, &workout.Intensity,
		&workout.CreatedAt, &workout.OwnerID, &workout.Privacy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, fmt.Errorf("get workout: %w", err)
	}

	return &workout, nil
}

// GetDetail returns the workout together with its exercises, joined with
// the catalog data of each one.
func (r *Repo) GetDetail(ctx context.Context, id int) (_ *Detail, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.getdetail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	workout, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT we.exercise_id, e.name, e.description, e.category, e.equipment,
			we.sets, we.reps, we.weight
		FROM workout_exercise we
		JOIN exercise e ON e.id = we.exercise_id
		WHERE we.workout_id = $1
		ORDER BY we.exercise_id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get workout exercises: %w", err)
	}
	defer rows.Close()

	exerciseDetails := make([]ExerciseDetail, 0)
	for rows.Next() {
		var ed ExerciseDetail
		if err := rows.Scan(
			&ed.ExerciseID, &ed.Name, &ed.Description, &ed.Category, &ed.Equipment,
			&ed.Sets, &ed.Reps, &ed.Weight,
		); err != nil {
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		exerciseDetails = append(exerciseDetails, ed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get workout exercises rows: %w", err)
	}

	return &Detail{
		ID:          workout.ID,
		Name:        workout.Name,
		Description: workout.Description,
		Intensity:   workout.Intensity,
		CreatedAt:   workout.CreatedAt,
		Privacy:     workout.Privacy,
		Exercises:   exerciseDetails,
	}, nil
}

// Update writes the workout fields and, when exercises is non-nil, diffs
// the stored associations against the given ones: removed rows are deleted,
// kept rows updated, new rows inserted. All in one transaction.
func (r *Repo) Update(ctx context.Context, workout *Workout, workoutExercises *[]WorkoutExercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("workout.id", workout.ID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE workout
		SET name = $1, description = $2, intensity = $3, privacy = $4
		WHERE id = $5
	`,
		workout.Name, workout.Description, workout.Intensity, workout.Privacy, workout.ID,
	)
	if err != nil {
		return fmt.Errorf("update workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}

	if workoutExercises == nil {
		// associations stay as they are
		return nil
	}

	if err = checkExercisesExist(ctx, tx, *workoutExercises); err != nil {
		return err
	}

	return diffExercises(ctx, tx, workout.ID, *workoutExercises)
}

func diffExercises(ctx context.Context, tx pgx.Tx, workoutID int, workoutExercises []WorkoutExercise) error {
	rows, err := tx.Query(ctx, `
		SELECT exercise_id, sets, reps, weight
		FROM workout_exercise
		WHERE workout_id = $1
	`, workoutID)
	if err != nil {
		return fmt.Errorf("get current workout exercises: %w", err)
	}

	current := make(map[int]WorkoutExercise)
	for rows.Next() {
		var we WorkoutExercise
		if err := rows.Scan(&we.ExerciseID, &we.Sets, &we.Reps, &we.Weight); err != nil {
			rows.Close()
			return fmt.Errorf("scan current workout exercise: %w", err)
		}
		current[we.ExerciseID] = we
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("current workout exercises rows: %w", err)
	}

	wanted := make(map[int]WorkoutExercise, len(workoutExercises))
	for _, we := range workoutExercises {
		wanted[we.ExerciseID] = we
	}

	for exerciseID := range current {
		if _, keep := wanted[exerciseID]; keep {
			continue
		}
		if _, err := tx.Exec(ctx, `
			DELETE FROM workout_exercise WHERE workout_id = $1 AND exercise_id = $2
		`, workoutID, exerciseID); err != nil {
			return fmt.Errorf("delete workout exercise %d: %w", exerciseID, err)
		}
	}

	for exerciseID, we := range wanted {
		currentWe, exists := current[exerciseID]
		switch {
		case !exists:
			if _, err := tx.Exec(ctx, `
				INSERT INTO workout_exercise (workout_id, exercise_id, sets, reps, weight)
				VALUES ($1, $2, $3, $4, $5)
			`, workoutID, exerciseID, we.Sets, we.Reps, we.Weight); err != nil {
				return fmt.Errorf("insert workout exercise %d: %w", exerciseID, err)
			}
		case currentWe != we:
			if _, err := tx.Exec(ctx, `
				UPDATE workout_exercise
				SET sets = $1, reps = $2, weight = $3
				WHERE workout_id = $4 AND exercise_id = $5
			`, we.Sets, we.Reps, we.Weight, workoutID, exerciseID); err != nil {
				return fmt.Errorf("update workout exercise %d: %w", exerciseID, err)
			}
		}
	}

	return nil
}

func checkExercisesExist(ctx context.Context, tx pgx.Tx, workoutExercises []WorkoutExercise) error {
	if len(workoutExercises) == 0 {
		return nil
	}

	idSet := make(map[int]struct{}, len(workoutExercises))
	ids := make([]int, 0, len(workoutExercises))
	for _, we := range workoutExercises {
		if _, ok := idSet[we.ExerciseID]; ok {
			continue
		}
		idSet[we.ExerciseID] = struct{}{}
		ids = append(ids, we.ExerciseID)
	}

	var count int
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM exercise WHERE id = ANY($1)
	`, ids).Scan(&count); err != nil {
		return fmt.Errorf("count exercises: %w", err)
	}
	if count != len(ids) {
		return exercises.ErrExerciseNotFound
	}

	return nil
}

// List returns workout summaries filtered by privacy flag.
func (r *Repo) List(ctx context.Context, privacy string) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("privacy", privacy))

	return r.querySummaries(ctx, `
		SELECT id, name, description, intensity
		FROM workout
		WHERE privacy = $1
		ORDER BY id
	`, privacy)
}

// Search matches the query case-insensitively against workout name or
// description. Only public workouts are searchable.
func (r *Repo) Search(ctx context.Context, query string) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.querySummaries(ctx, `
		SELECT id, name, description, intensity
		FROM workout
		WHERE privacy = 'publico'
			AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id
	`, query)
}

// ListByIntensity returns public workouts with the given intensity.
func (r *Repo) ListByIntensity(ctx context.Context, intensity string) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listbyintensity")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("intensity", intensity))

	return r.querySummaries(ctx, `
		SELECT id, name, description, intensity
		FROM workout
		WHERE privacy = 'publico' AND intensity = $1
		ORDER BY id
	`, intensity)
}

// Favorite adds the workout to the user's favorites. Favoriting an already
// favorited workout is a no-op.
func (r *Repo) Favorite(ctx context.Context, userID, workoutID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.favorite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.checkUserAndWorkoutExist(ctx, userID, workoutID); err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO favorite (user_id, workout_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, workoutID); err != nil {
		return fmt.Errorf("insert favorite: %w", err)
	}

	return nil
}

// Unfavorite removes the workout from the user's favorites. Removing a
// workout that is not favorited is a no-op.
func (r *Repo) Unfavorite(ctx context.Context, userID, workoutID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.unfavorite")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.checkUserAndWorkoutExist(ctx, userID, workoutID); err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, `
		DELETE FROM favorite WHERE user_id = $1 AND workout_id = $2
	`, userID, workoutID); err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	return nil
}

func (r *Repo) ListFavorites(ctx context.Context, userID int) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.listfavorites")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	if err := r.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	return r.querySummaries(ctx, `
		SELECT w.id, w.name, w.description, w.intensity
		FROM workout w
		JOIN favorite f ON f.workout_id = w.id
		WHERE f.user_id = $1
		ORDER BY w.id
	`, userID)
}

func (r *Repo) querySummaries(ctx context.Context, query string, args ...any) ([]Summary, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Intensity); err != nil {
			return nil, fmt.Errorf("scan workout summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("workouts rows: %w", err)
	}

	return summaries, nil
}

func (r *Repo) checkUserExists(ctx context.Context, userID int) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM fituser WHERE id = $1)
	`, userID).Scan(&exists); err != nil {
		return fmt.Errorf("check user exists: %w", err)
	}
	if !exists {
		return users.ErrUserNotFound
	}
	return nil
}

func (r *Repo) checkUserAndWorkoutExist(ctx context.Context, userID, workoutID int) error {
	if err := r.checkUserExists(ctx, userID); err != nil {
		return err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM workout WHERE id = $1)
	`, workoutID).Scan(&exists); err != nil {
		return fmt.Errorf("check workout exists: %w", err)
	}
	if !exists {
		return ErrWorkoutNotFound
	}
	return nil
}
