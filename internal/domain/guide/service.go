package guide

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/scapet/scapet-go/internal/domain/questionnaire"
)

// Service runs the questionnaire-to-itinerary workflow.
type Service interface {
	Generate(ctx context.Context, form questionnaire.Form) (Itinerary, error)
}

// GenerateClient calls the remote guide generation endpoint.
type GenerateClient interface {
	GenerateGuide(ctx context.Context, req questionnaire.GuideRequest) (Itinerary, error)
}

// SessionReader exposes the slice of session state the workflow needs:
// the credit balance up front, a profile refresh once credits were spent.
type SessionReader interface {
	Credits() int
	RefreshProfile(ctx context.Context) error
}

// ValidationError carries the field-keyed messages of a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		keys = append(keys, field)
	}
	return fmt.Sprintf("questionnaire rejected: %s", strings.Join(keys, ", "))
}

type service struct {
	client  GenerateClient
	session SessionReader
	logger  *slog.Logger
}

// NewService wires up the guide workflow.
func NewService(client GenerateClient, session SessionReader, logger *slog.Logger) Service {
	return &service{
		client:  client,
		session: session,
		logger:  logger.With("component", "guide.service"),
	}
}

// Generate validates the form, transforms it to the wire request and calls
// the guide endpoint. The profile is refreshed afterwards because credits
// were debited; a refresh failure is logged but does not fail a guide the
// user already paid for.
func (s *service) Generate(ctx context.Context, form questionnaire.Form) (Itinerary, error) {
	result := questionnaire.Validate(form, s.session.Credits())
	if !result.Valid {
		return Itinerary{}, &ValidationError{Fields: result.Errors}
	}

	req := questionnaire.ToGuideRequest(form)
	s.logger.Info("generating guide", "city", req.City, "days", req.Days, "interests", len(req.Interests))

	// Transport errors already carry a normalized human-readable message,
	// so they pass through untouched.
	itinerary, err := s.client.GenerateGuide(ctx, req)
	if err != nil {
		return Itinerary{}, err
	}
	if itinerary.City == "" {
		itinerary.City = req.City
	}

	if err := s.session.RefreshProfile(ctx); err != nil {
		s.logger.Warn("profile refresh after generation failed", "error", err)
	}

	return itinerary, nil
}
