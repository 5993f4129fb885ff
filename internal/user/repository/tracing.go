package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/dairy-ledger/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// TracedUserRepository adds spans to the account lookups and writes that
// sit on the login path.
type TracedUserRepository struct {
	domain.UserRepository
}

func NewTracedUserRepository(next domain.UserRepository) *TracedUserRepository {
	return &TracedUserRepository{UserRepository: next}
}

func (r *TracedUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("user.username", user.Username),
			attribute.String("user.type", user.UserType),
		),
	)
	defer span.End()

	if err := r.UserRepository.Create(ctx, user); err != nil {
		fail(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return nil
}

func (r *TracedUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)
	defer span.End()

	user, err := r.UserRepository.FindByID(ctx, id)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	return user, nil
}

func (r *TracedUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByUsername",
		trace.WithAttributes(attribute.String("user.username", username)),
	)
	defer span.End()

	user, err := r.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		fail(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	return user, nil
}

func (r *TracedUserRepository) SetPassword(ctx context.Context, id uint, hash string) error {
	ctx, span := tracer.Start(ctx, "repository.SetPassword",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)
	defer span.End()

	if err := r.UserRepository.SetPassword(ctx, id, hash); err != nil {
		fail(span, err)
		return err
	}
	return nil
}

func fail(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
