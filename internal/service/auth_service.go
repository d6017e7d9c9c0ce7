package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/superstudio/showcase-api/internal/models"
	"github.com/superstudio/showcase-api/internal/token"
	appErrors "github.com/superstudio/showcase-api/pkg/errors"
)

type authSubmissionRepository interface {
	Ensure(ctx context.Context, email string) (string, error)
	Get(ctx context.Context, id string) (*models.Submission, error)
}

type loginLinkConsumer interface {
	Available() bool
	ConsumeLoginLink(ctx context.Context, nonce string, ttl time.Duration) (bool, error)
}

type loginLinkMailer interface {
	SendLoginLink(ctx context.Context, to, loginURL string)
}

type submissionDecorator interface {
	Decorate(doc *models.Submission) *models.Submission
}

// AuthConfig defines configuration for the magic-link flow.
type AuthConfig struct {
	SubmissionBaseURL string
	ExposeLoginURL    bool
}

// AuthService orchestrates the passwordless flow: issue link, verify link,
// issue session. There is no server-side session store; authentication state
// lives entirely in token possession.
type AuthService struct {
	repo      authSubmissionRepository
	codec     *token.Codec
	mailer    loginLinkMailer
	links     loginLinkConsumer
	decorator submissionDecorator
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authSubmissionRepository, codec *token.Codec, mailer loginLinkMailer, links loginLinkConsumer, decorator submissionDecorator, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{
		repo:      repo,
		codec:     codec,
		mailer:    mailer,
		links:     links,
		decorator: decorator,
		validator: validate,
		logger:    logger,
		config:    config,
	}
}

// RequestMagicLink ensures a submission exists for the email and sends (or
// logs) a login link. The response is the same whether or not the document
// already existed and whether or not delivery succeeded.
func (s *AuthService) RequestMagicLink(ctx context.Context, req models.MagicLinkRequest) (*models.MagicLinkResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "a valid email is required")
	}

	submissionID, err := s.repo.Ensure(ctx, req.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to prepare submission")
	}

	magicToken, err := s.codec.Issue(token.KindMagic, req.Email, submissionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create login token")
	}

	loginURL := fmt.Sprintf("%s?token=%s", s.config.SubmissionBaseURL, url.QueryEscape(magicToken))
	s.mailer.SendLoginLink(ctx, req.Email, loginURL)

	res := &models.MagicLinkResponse{
		Message:      "A login link has been generated. Check your email.",
		SubmissionID: submissionID,
	}
	if s.config.ExposeLoginURL {
		res.LoginURL = loginURL
	}
	return res, nil
}

// VerifyMagicLink exchanges a magic token for a session token plus the
// current submission. Expired, forged, wrong-kind, and already-used tokens
// all produce the same unauthorized error.
func (s *AuthService) VerifyMagicLink(ctx context.Context, req models.VerifyMagicLinkRequest) (*models.VerifyMagicLinkResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "token is required")
	}

	claims, err := s.codec.Verify(req.Token, token.KindMagic)
	if err != nil {
		return nil, err
	}

	if err := s.consumeLink(ctx, claims); err != nil {
		return nil, err
	}

	// Defensive re-ensure: the document is the source of truth and may have
	// been created by an older deployment without one.
	submissionID, err := s.repo.Ensure(ctx, claims.Email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to prepare submission")
	}

	sessionToken, err := s.codec.Issue(token.KindSession, claims.Email, submissionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session token")
	}

	doc, err := s.repo.Get(ctx, submissionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "failed to load submission")
	}
	if s.decorator != nil {
		doc = s.decorator.Decorate(doc)
	}

	return &models.VerifyMagicLinkResponse{
		SessionToken: sessionToken,
		Submission:   doc,
		Email:        claims.Email,
		SubmissionID: submissionID,
	}, nil
}

// ValidateSession parses and validates a bearer session token.
func (s *AuthService) ValidateSession(tokenString string) (*models.Session, error) {
	claims, err := s.codec.Verify(tokenString, token.KindSession)
	if err != nil {
		return nil, err
	}
	return &models.Session{Email: claims.Email, SubmissionID: claims.SubmissionID}, nil
}

func (s *AuthService) consumeLink(ctx context.Context, claims *token.Claims) error {
	if s.links == nil || !s.links.Available() {
		return nil
	}

	ttl := time.Minute
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > ttl {
			ttl = remaining
		}
	}

	first, err := s.links.ConsumeLoginLink(ctx, claims.ID, ttl)
	if err != nil {
		// Redis being down should not lock every submitter out; fall back to
		// the replayable behavior and log it.
		s.logger.Warn("failed to record consumed login link", zap.Error(err))
		return nil
	}
	if !first {
		return appErrors.Clone(appErrors.ErrInvalidToken, "")
	}
	return nil
}
