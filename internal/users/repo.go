package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/treinoapp/backend/internal/telemetry/tracing"
	"github.com/treinoapp/backend/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already taken")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, user User) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO fituser (name, email, password_hash, created_at)
			VALUES ($1, $2, $3, $4)
		RETURNING id;`,
		user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	span.SetAttributes(attribute.Int("user.id", user.ID))

	return &user, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	user, err := r.scanUser(r.db.QueryRow(
		ctx,
		userSelectColumns+`WHERE id = $1;`,
		id,
	))
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.getbyemail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := r.scanUser(r.db.QueryRow(
		ctx,
		userSelectColumns+`WHERE email = $1;`,
		email,
	))
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile writes the full set of profile columns. The caller is
// expected to have merged a partial update into the stored profile first.
func (r *Repo) UpdateProfile(ctx context.Context, user *User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateprofile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", user.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE fituser SET
			gender = $1, age = $2, goal = $3, body_type = $4, body_goal = $5,
			motivations = $6, target_areas = $7, fitness_level = $8,
			training_location = $9, height = $10, weight = $11, weight_goal = $12
		WHERE id = $13;`,
		user.Gender, user.Age, user.Goal, user.BodyType, user.BodyGoal,
		user.Motivations, user.TargetAreas, user.FitnessLevel,
		user.TrainingLocation, user.Height, user.Weight, user.WeightGoal,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

const userSelectColumns = `
	SELECT
		id, name, email, password_hash, created_at,
		COALESCE(gender, ''), COALESCE(age, 0), COALESCE(goal, ''),
		COALESCE(body_type, ''), COALESCE(body_goal, ''),
		COALESCE(motivations, ''), COALESCE(target_areas, ''),
		COALESCE(fitness_level, ''), COALESCE(training_location, ''),
		COALESCE(height, 0), COALESCE(weight, 0), COALESCE(weight_goal, 0)
	FROM fituser
`

func (r *Repo) scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt,
		&user.Gender, &user.Age, &user.Goal,
		&user.BodyType, &user.BodyGoal,
		&user.Motivations, &user.TargetAreas,
		&user.FitnessLevel, &user.TrainingLocation,
		&user.Height, &user.Weight, &user.WeightGoal,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &user, nil
}
