package completions

import (
	"context"
	"fmt"
	"time"

	"github.com/treinoapp/backend/internal/exercises"
	"github.com/treinoapp/backend/internal/telemetry/tracing"
	"github.com/treinoapp/backend/internal/users"
	"github.com/treinoapp/backend/internal/workouts"
	"github.com/treinoapp/backend/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Add records a finished session and its per-exercise timings as one
// transaction. Fails when the user, the workout or a timed exercise does
// not exist, and then nothing is persisted.
func (r *Repo) Add(ctx context.Context, completion Completion, timings []ExerciseTiming) (_ *Completion, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.completions.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = time.Now()
	}

	if err = r.checkUserAndWorkoutExist(ctx, completion.UserID, completion.WorkoutID); err != nil {
		return nil, err
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

	err = tx.QueryRow(ctx, `
		INSERT INTO completed_workout (workout_id, user_id, completed_at, total_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		completion.WorkoutID, completion.UserID, completion.CompletedAt, completion.TotalTime,
	).Scan(&completion.ID)
	if err != nil {
		return nil, fmt.Errorf("insert completed workout: %w", err)
	}

	for _, timing := range timings {
		if _, err = tx.Exec(ctx, `
			INSERT INTO exercise_time (completed_workout_id, exercise_id, seconds, started_at, ended_at)
			VALUES ($1, $2, $3, $4, $5)
		`,
			completion.ID, timing.ExerciseID, timing.Seconds, timing.StartedAt, timing.EndedAt,
		); err != nil {
			if pkg.IsForeignKeyViolationError(err) {
				err = exercises.ErrExerciseNotFound
				return nil, err
			}
			return nil, fmt.Errorf("insert exercise time %d: %w", timing.ExerciseID, err)
		}
	}

	span.SetAttributes(attribute.Int("completion.id", completion.ID))

	return &completion, nil
}

// ListForUser returns the user's completion history, newest first, each
// entry with its timings resolved to exercise names.
func (r *Repo) ListForUser(ctx context.Context, userID int) (_ []Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.completions.listforuser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	if err := r.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT cw.id, cw.workout_id, w.name, w.description, cw.completed_at, cw.total_time
		FROM completed_workout cw
		JOIN workout w ON w.id = cw.workout_id
		WHERE cw.user_id = $1
		ORDER BY cw.completed_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	summaries := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(
			&s.ID, &s.WorkoutID, &s.WorkoutName, &s.WorkoutDescription,
			&s.CompletedAt, &s.TotalTime,
		); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		s.Timings = make([]TimingDetail, 0)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list completions rows: %w", err)
	}

	if len(summaries) == 0 {
		return summaries, nil
	}

	byID := make(map[int]*Summary, len(summaries))
	completionIDs := make([]int, 0, len(summaries))
	for i := range summaries {
		byID[summaries[i].ID] = &summaries[i]
		completionIDs = append(completionIDs, summaries[i].ID)
	}

	timingRows, err := r.db.Query(ctx, `
		SELECT et.completed_workout_id, et.exercise_id, e.name, et.seconds
		FROM exercise_time et
		JOIN exercise e ON e.id = et.exercise_id
		WHERE et.completed_workout_id = ANY($1)
		ORDER BY et.id
	`, completionIDs)
	if err != nil {
		return nil, fmt.Errorf("list exercise times: %w", err)
	}
	defer timingRows.Close()

	for timingRows.Next() {
		var completionID int
		var td TimingDetail
		if err := timingRows.Scan(&completionID, &td.ExerciseID, &td.ExerciseName, &td.Seconds); err != nil {
			return nil, fmt.Errorf("scan exercise time: %w", err)
		}
		if s, ok := byID[completionID]; ok {
			s.Timings = append(s.Timings, td)
		}
	}
	if err := timingRows.Err(); err != nil {
		return nil, fmt.Errorf("list exercise times rows: %w", err)
	}

	return summaries, nil
}

// ListCompletionTimes returns just the completion timestamps of the user,
// the input of the frequency analyzer.
func (r *Repo) ListCompletionTimes(ctx context.Context, userID int) (_ []time.Time, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.completions.listtimes")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", userID))

	if err := r.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT completed_at FROM completed_workout WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list completion times: %w", err)
	}
	defer rows.Close()

	var completedAts []time.Time
	for rows.Next() {
		var completedAt time.Time
		if err := rows.Scan(&completedAt); err != nil {
			return nil, fmt.Errorf("scan completion time: %w", err)
		}
		completedAts = append(completedAts, completedAt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion times rows: %w", err)
	}

	return completedAts, nil
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
		return workouts.ErrWorkoutNotFound
	}
	return nil
}
