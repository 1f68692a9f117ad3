package competitionservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Black-And-White-Club/competitions/app/eventbus"
	competitiondb "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/observability"
	"github.com/Black-And-White-Club/competitions/app/observability/attr"
	"github.com/Black-And-White-Club/competitions/app/shared/apperr"
	"github.com/Black-And-White-Club/competitions/app/shared/persistence"
	"github.com/Black-And-White-Club/competitions/app/shared/results"
	"github.com/Black-And-White-Club/competitions/app/shared/validation"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "CompetitionService"

// CompetitionService implements the Service interface.
type CompetitionService struct {
	repo      competitiondb.Repository
	publisher eventbus.Publisher
	logger    *slog.Logger
	metrics   observability.OperationMetrics
	tracer    trace.Tracer
	db        *bun.DB
}

// NewCompetitionService creates a new CompetitionService.
func NewCompetitionService(
	repo competitiondb.Repository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *CompetitionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompetitionService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
	}
}

// List returns every competition, earliest deadline first.
func (s *CompetitionService) List(ctx context.Context) ([]Competition, error) {
	result, err := withTelemetry(s, ctx, "ListCompetitions", "all", func(ctx context.Context) (results.OperationResult[[]Competition, error], error) {
		rows, err := s.repo.List(ctx, nil)
		if err != nil {
			return results.OperationResult[[]Competition, error]{}, fmt.Errorf("failed to list competitions: %w", err)
		}
		out := make([]Competition, 0, len(rows))
		for _, row := range rows {
			out = append(out, toCompetition(row))
		}
		return results.SuccessResult[[]Competition, error](out), nil
	})
	return unwrap(result, err)
}

// Get returns one competition.
func (s *CompetitionService) Get(ctx context.Context, rawID string) (*Competition, error) {
	result, err := withTelemetry(s, ctx, "GetCompetition", rawID, func(ctx context.Context) (results.OperationResult[*Competition, error], error) {
		id, err := validation.ParseID("id", rawID)
		if err != nil {
			return results.FailureResult[*Competition, error](err), nil
		}
		return s.getLogic(ctx, nil, id)
	})
	return unwrap(result, err)
}

func (s *CompetitionService) getLogic(ctx context.Context, db bun.IDB, id int64) (results.OperationResult[*Competition, error], error) {
	row, err := s.repo.GetByID(ctx, db, id)
	if err != nil {
		if errors.Is(err, competitiondb.ErrNotFound) {
			return results.FailureResult[*Competition, error](ErrCompetitionNotFound), nil
		}
		return results.OperationResult[*Competition, error]{}, fmt.Errorf("failed to get competition: %w", err)
	}
	c := toCompetition(row)
	return results.SuccessResult[*Competition, error](&c), nil
}

// Create validates input and stores a competition authored by authorID.
func (s *CompetitionService) Create(ctx context.Context, authorID int64, input validation.CompetitionInput) (*Competition, error) {
	createTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*Competition, error], error) {
		fields, err := validation.ValidateCompetition(input)
		if err != nil {
			return validationFailure[*Competition](err)
		}

		row := &competitiondb.Competition{
			Name:        fields.Name,
			Description: fields.Description,
			AuthorID:    authorID,
			ApplyTill:   fields.ApplyTill,
		}
		if err := s.repo.Insert(ctx, db, row); err != nil {
			if persistence.IsRowCountViolation(err) {
				return results.FailureResult[*Competition, error](ErrCompetitionNotSaved), nil
			}
			return results.OperationResult[*Competition, error]{}, fmt.Errorf("failed to create competition: %w", err)
		}
		return s.getLogic(ctx, db, row.ID)
	}

	result, err := withTelemetry(s, ctx, "CreateCompetition", strconv.FormatInt(authorID, 10), func(ctx context.Context) (results.OperationResult[*Competition, error], error) {
		return runInTx(s, ctx, createTx)
	})
	c, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, eventbus.CompetitionCreated, competitionEvent(c, authorID))
	return c, nil
}

// Update validates input and rewrites the competition identified by rawID.
func (s *CompetitionService) Update(ctx context.Context, rawID string, input validation.CompetitionInput) (*Competition, error) {
	updateTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*Competition, error], error) {
		id, idErr := validation.ParseID("id", rawID)
		fields, fieldsErr := validation.ValidateCompetition(input)
		if err := validation.Merge(idErr, fieldsErr); err != nil {
			return validationFailure[*Competition](err)
		}

		row := &competitiondb.Competition{
			ID:          id,
			Name:        fields.Name,
			Description: fields.Description,
			ApplyTill:   fields.ApplyTill,
		}
		if err := s.repo.Update(ctx, db, row); err != nil {
			if persistence.IsRowCountViolation(err) {
				return results.FailureResult[*Competition, error](ErrCompetitionNotUpdated), nil
			}
			return results.OperationResult[*Competition, error]{}, fmt.Errorf("failed to update competition: %w", err)
		}
		return s.getLogic(ctx, db, id)
	}

	result, err := withTelemetry(s, ctx, "UpdateCompetition", rawID, func(ctx context.Context) (results.OperationResult[*Competition, error], error) {
		return runInTx(s, ctx, updateTx)
	})
	c, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, eventbus.CompetitionUpdated, competitionEvent(c, 0))
	return c, nil
}

// Delete removes the competition identified by rawID.
func (s *CompetitionService) Delete(ctx context.Context, rawID string) error {
	deleteTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[int64, error], error) {
		id, err := validation.ParseID("id", rawID)
		if err != nil {
			return results.FailureResult[int64, error](err), nil
		}
		if err := s.repo.Delete(ctx, db, id); err != nil {
			if persistence.IsRowCountViolation(err) {
				return results.FailureResult[int64, error](ErrCompetitionNotDeleted), nil
			}
			return results.OperationResult[int64, error]{}, fmt.Errorf("failed to delete competition: %w", err)
		}
		return results.SuccessResult[int64, error](id), nil
	}

	result, err := withTelemetry(s, ctx, "DeleteCompetition", rawID, func(ctx context.Context) (results.OperationResult[int64, error], error) {
		return runInTx(s, ctx, deleteTx)
	})
	if err != nil {
		return err
	}
	if result.IsFailure() {
		return *result.Failure
	}
	s.publish(ctx, eventbus.CompetitionDeleted, eventbus.CompetitionEvent{CompetitionID: *result.Success})
	return nil
}

func competitionEvent(c *Competition, actorID int64) eventbus.CompetitionEvent {
	evt := eventbus.CompetitionEvent{CompetitionID: c.ID, Name: c.Name, ActorID: actorID}
	if t, err := time.Parse(validation.DateLayout, c.ApplyTill); err == nil {
		evt.ApplyTill = &t
	}
	return evt
}

// publish emits an event for a committed mutation. Failures are logged only.
func (s *CompetitionService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

// validationFailure turns a validation error into a failure result and lets
// anything else through as an infrastructure error.
func validationFailure[S any](err error) (results.OperationResult[S, error], error) {
	if errors.Is(err, apperr.ErrValidation) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, err
}

func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if !result.IsSuccess() {
		return zero, errors.New("operation returned an empty result")
	}
	return *result.Success, nil
}

// -----------------------------------------------------------------------------
// Generic Helpers (Defined as functions because methods cannot have type params)
// -----------------------------------------------------------------------------

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *CompetitionService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	// Start span
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	// Record attempt
	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	// Track duration
	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

	// Panic recovery
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("identifier", identifier),
				attr.Error(err),
			)
			if s.metrics != nil {
				s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			}
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	// Handle Infrastructure Error
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Error(wrappedErr),
		)
		if s.metrics != nil {
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		}
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	// Handle Domain Failure
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	// Handle Success
	if result.IsSuccess() {
		s.logger.InfoContext(ctx, "Operation completed successfully",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *CompetitionService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {

	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]

	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
