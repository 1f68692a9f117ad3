package participantservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/competitions/app/eventbus"
	competitiondb "github.com/Black-And-White-Club/competitions/app/modules/competition/infrastructure/repositories"
	participantdb "github.com/Black-And-White-Club/competitions/app/modules/participant/infrastructure/repositories"
	"github.com/Black-And-White-Club/competitions/app/observability"
	"github.com/Black-And-White-Club/competitions/app/observability/attr"
	"github.com/Black-And-White-Club/competitions/app/shared/persistence"
	"github.com/Black-And-White-Club/competitions/app/shared/results"
	"github.com/Black-And-White-Club/competitions/app/shared/validation"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ParticipantService"

// ParticipantService implements the Service interface.
type ParticipantService struct {
	repo         participantdb.Repository
	competitions competitiondb.Repository
	publisher    eventbus.Publisher
	logger       *slog.Logger
	metrics      observability.OperationMetrics
	tracer       trace.Tracer
	db           *bun.DB
}

// NewParticipantService creates a new ParticipantService.
func NewParticipantService(
	repo participantdb.Repository,
	competitions competitiondb.Repository,
	publisher eventbus.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ParticipantService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParticipantService{
		repo:         repo,
		competitions: competitions,
		publisher:    publisher,
		logger:       logger,
		metrics:      metrics,
		tracer:       tracer,
		db:           db,
	}
}

// Signup enrolls userID in the competition named by rawCompetitionID. Calling
// it again for the same pair reports AlreadyEnrolled and stores nothing.
func (s *ParticipantService) Signup(ctx context.Context, userID int64, rawCompetitionID string) (SignupOutcome, error) {
	signupTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[SignupOutcome, error], error) {
		competitionID, err := validation.ParseID("id", rawCompetitionID)
		if err != nil {
			return results.FailureResult[SignupOutcome, error](err), nil
		}

		exists, err := s.competitions.Exists(ctx, db, competitionID)
		if err != nil {
			return results.OperationResult[SignupOutcome, error]{}, fmt.Errorf("failed to check competition: %w", err)
		}
		if !exists {
			return results.FailureResult[SignupOutcome, error](ErrCompetitionNotFound), nil
		}

		existing, err := s.repo.FindByUserAndCompetition(ctx, db, userID, competitionID)
		switch {
		case err == nil:
			p := toParticipant(existing, "")
			return results.SuccessResult[SignupOutcome, error](SignupOutcome{Status: AlreadyEnrolled, Participant: &p}), nil
		case !errors.Is(err, participantdb.ErrNotFound):
			return results.OperationResult[SignupOutcome, error]{}, fmt.Errorf("failed to look up enrollment: %w", err)
		}

		row := &participantdb.Participant{CompetitionID: competitionID, UserID: userID}
		if err := s.repo.Insert(ctx, db, row); err != nil {
			switch {
			case errors.Is(err, participantdb.ErrDuplicateEnrollment):
				return results.SuccessResult[SignupOutcome, error](SignupOutcome{Status: AlreadyEnrolled}), nil
			case persistence.IsRowCountViolation(err):
				return results.FailureResult[SignupOutcome, error](ErrEnrollmentNotSaved), nil
			}
			return results.OperationResult[SignupOutcome, error]{}, fmt.Errorf("failed to enroll participant: %w", err)
		}

		p := toParticipant(row, "")
		return results.SuccessResult[SignupOutcome, error](SignupOutcome{Status: NewlyEnrolled, Participant: &p}), nil
	}

	result, err := withTelemetry(s, ctx, "Signup", rawCompetitionID, func(ctx context.Context) (results.OperationResult[SignupOutcome, error], error) {
		return runInTx(s, ctx, signupTx)
	})
	outcome, err := unwrap(result, err)
	if err != nil {
		return SignupOutcome{}, err
	}
	if outcome.Status == NewlyEnrolled && outcome.Participant != nil {
		s.publish(ctx, eventbus.ParticipantEnrolled, eventbus.ParticipantEvent{
			ParticipantID: outcome.Participant.ID,
			CompetitionID: outcome.Participant.CompetitionID,
			UserID:        outcome.Participant.UserID,
		})
	}
	return outcome, nil
}

// ListParticipants returns every enrollment ordered by participant id.
func (s *ParticipantService) ListParticipants(ctx context.Context) ([]Participant, error) {
	result, err := withTelemetry(s, ctx, "ListParticipants", "all", func(ctx context.Context) (results.OperationResult[[]Participant, error], error) {
		rows, err := s.repo.ListAll(ctx, nil)
		if err != nil {
			return results.OperationResult[[]Participant, error]{}, fmt.Errorf("failed to list participants: %w", err)
		}
		out := make([]Participant, 0, len(rows))
		for _, row := range rows {
			out = append(out, toParticipant(&row.Participant, row.UserName))
		}
		return results.SuccessResult[[]Participant, error](out), nil
	})
	return unwrap(result, err)
}

// Leaderboard returns the participants of one competition, lowest points
// first. Participants without a score come before scored ones.
func (s *ParticipantService) Leaderboard(ctx context.Context, rawCompetitionID string) ([]LeaderboardEntry, error) {
	result, err := withTelemetry(s, ctx, "Leaderboard", rawCompetitionID, func(ctx context.Context) (results.OperationResult[[]LeaderboardEntry, error], error) {
		return s.leaderboardLogic(ctx, rawCompetitionID)
	})
	return unwrap(result, err)
}

func (s *ParticipantService) leaderboardLogic(ctx context.Context, rawCompetitionID string) (results.OperationResult[[]LeaderboardEntry, error], error) {
	competitionID, err := validation.ParseID("id", rawCompetitionID)
	if err != nil {
		return results.FailureResult[[]LeaderboardEntry, error](err), nil
	}
	rows, err := s.repo.ListByCompetition(ctx, nil, competitionID)
	if err != nil {
		return results.OperationResult[[]LeaderboardEntry, error]{}, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	out := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, toEntry(row))
	}
	return results.SuccessResult[[]LeaderboardEntry, error](out), nil
}

// UpdateScore records the score of the participant named by update.PathID.
// Any invalid input leaves the stored points untouched.
func (s *ParticipantService) UpdateScore(ctx context.Context, update ScoreUpdate) (*Participant, error) {
	updateTx := func(ctx context.Context, db bun.IDB) (results.OperationResult[*Participant, error], error) {
		participantID, points, err := parseScoreUpdate(update)
		if err != nil {
			return validationFailure[*Participant](err)
		}

		if err := s.repo.UpdatePoints(ctx, db, participantID, points); err != nil {
			if persistence.IsRowCountViolation(err) {
				return results.FailureResult[*Participant, error](ErrScoreNotSaved), nil
			}
			return results.OperationResult[*Participant, error]{}, fmt.Errorf("failed to update score: %w", err)
		}

		row, err := s.repo.GetByID(ctx, db, participantID)
		if err != nil {
			if errors.Is(err, participantdb.ErrNotFound) {
				return results.FailureResult[*Participant, error](ErrParticipantNotFound), nil
			}
			return results.OperationResult[*Participant, error]{}, fmt.Errorf("failed to reload participant: %w", err)
		}
		p := toParticipant(&row.Participant, row.UserName)
		return results.SuccessResult[*Participant, error](&p), nil
	}

	result, err := withTelemetry(s, ctx, "UpdateScore", update.PathID, func(ctx context.Context) (results.OperationResult[*Participant, error], error) {
		return runInTx(s, ctx, updateTx)
	})
	p, err := unwrap(result, err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, eventbus.ParticipantScoreSet, eventbus.ParticipantEvent{
		ParticipantID: p.ID,
		CompetitionID: p.CompetitionID,
		UserID:        p.UserID,
		Points:        p.Points,
	})
	return p, nil
}

func parseScoreUpdate(update ScoreUpdate) (int64, int, error) {
	participantID, idErr := validation.ParseID("id", update.PathID)
	points, scoreErr := validation.ParseScore(update.RawScore)

	var bodyErr error
	if update.BodyID != "" {
		bodyID, err := validation.ParseID("participant_id", update.BodyID)
		switch {
		case err != nil:
			bodyErr = err
		case idErr == nil && bodyID != participantID:
			bodyErr = &validation.Error{Violations: []validation.Violation{
				{Field: "participant_id", Rule: "eqfield", Param: "id"},
			}}
		}
	}

	if err := validation.Merge(idErr, bodyErr, scoreErr); err != nil {
		return 0, 0, err
	}
	return participantID, points, nil
}

// ExportLeaderboardXLSX renders the leaderboard of one competition as a workbook.
func (s *ParticipantService) ExportLeaderboardXLSX(ctx context.Context, rawCompetitionID string) ([]byte, error) {
	result, err := withTelemetry(s, ctx, "ExportLeaderboardXLSX", rawCompetitionID, func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		return s.render(ctx, rawCompetitionID, RenderLeaderboardXLSX)
	})
	return unwrap(result, err)
}

// LeaderboardChartPNG renders the scored participants of one competition as a bar chart.
func (s *ParticipantService) LeaderboardChartPNG(ctx context.Context, rawCompetitionID string) ([]byte, error) {
	result, err := withTelemetry(s, ctx, "LeaderboardChartPNG", rawCompetitionID, func(ctx context.Context) (results.OperationResult[[]byte, error], error) {
		return s.render(ctx, rawCompetitionID, RenderLeaderboardChart)
	})
	return unwrap(result, err)
}

func (s *ParticipantService) render(
	ctx context.Context,
	rawCompetitionID string,
	renderFn func([]LeaderboardEntry) ([]byte, error),
) (results.OperationResult[[]byte, error], error) {
	board, err := s.leaderboardLogic(ctx, rawCompetitionID)
	if err != nil {
		return results.OperationResult[[]byte, error]{}, err
	}
	if board.IsFailure() {
		return results.FailureResult[[]byte, error](*board.Failure), nil
	}
	out, err := renderFn(*board.Success)
	if err != nil {
		return results.OperationResult[[]byte, error]{}, fmt.Errorf("failed to render leaderboard: %w", err)
	}
	return results.SuccessResult[[]byte, error](out), nil
}

// publish emits an event for a committed mutation. Failures are logged only.
func (s *ParticipantService) publish(ctx context.Context, topic string, payload any) {
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

func validationFailure[S any](err error) (results.OperationResult[S, error], error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
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

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *ParticipantService,
	ctx context.Context,
	operationName string,
	identifier string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
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

	if s.metrics != nil {
		s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)
	}

	startTime := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
		}
	}()

	s.logger.InfoContext(ctx, "Operation triggered", attr.ExtractCorrelationID(ctx), attr.String("operation", operationName))

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

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("identifier", identifier),
			attr.Any("failure_payload", *result.Failure),
		)
	}

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
	s *ParticipantService,
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
