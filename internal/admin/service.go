package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wellnesscare/wellness-platform/internal/feedback"
	"github.com/wellnesscare/wellness-platform/internal/keywords"
	"github.com/wellnesscare/wellness-platform/internal/patients"
)

// Service backs the console: login, bootstrap and analytics.
type Service struct {
	repo     Repository
	auth     *Authenticator
	patients patients.Repository
	feedback feedback.Repository
	keywords keywords.Repository
	logger   *slog.Logger
}

// NewService wires the console service.
func NewService(
	repo Repository,
	auth *Authenticator,
	patientRepo patients.Repository,
	feedbackRepo feedback.Repository,
	keywordRepo keywords.Repository,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		auth:     auth,
		patients: patientRepo,
		feedback: feedbackRepo,
		keywords: keywordRepo,
		logger:   logger,
	}
}

// EnsureDefault creates the bootstrap admin account when none with that
// email exists. Called once at startup.
func (s *Service) EnsureDefault(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("admin: default lookup: %w", err)
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = s.repo.Create(ctx, Admin{Name: "admin", Email: email, PasswordHash: hash})
	if errors.Is(err, ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info("default admin created", "email", email)
	return nil
}

// Login verifies credentials and issues a console token.
func (s *Service) Login(ctx context.Context, email, password string) (string, Admin, error) {
	adm, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", Admin{}, ErrInvalidCredentials
		}
		return "", Admin{}, err
	}
	if !s.auth.CheckPassword(adm.PasswordHash, password) {
		return "", Admin{}, ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(adm)
	if err != nil {
		return "", Admin{}, err
	}
	return token, adm, nil
}

// Analytics aggregates user, feedback and keyword counts. The counts are
// read from live collections without a transaction.
func (s *Service) Analytics(ctx context.Context) (Stats, error) {
	all, err := s.patients.List(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("admin: patient counts: %w", err)
	}
	approved := 0
	for _, p := range all {
		if p.IsApproved {
			approved++
		}
	}

	feedbackCount, average, err := s.feedback.MessageStats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("admin: feedback stats: %w", err)
	}

	snapshot, err := s.keywords.GetAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("admin: keyword count: %w", err)
	}

	return Stats{
		TotalUsers:      len(all),
		ApprovedUsers:   approved,
		PendingUsers:    len(all) - approved,
		FeedbackCount:   feedbackCount,
		KeywordCount:    len(snapshot),
		AverageFeedback: average,
	}, nil
}
