package contact

import (
	"context"
	"errors"
	"strings"

	"github.com/portoo/portoo-backend/internal/apperr"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/repository"
	"github.com/portoo/portoo-backend/internal/validation"
)

// SendMessageRequest is the public contact form body
type SendMessageRequest struct {
	Name              string `json:"name" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Message           string `json:"message" validate:"required"`
	PortfolioUsername string `json:"portfolio_username" validate:"required"`
}

type ContactUseCase struct {
	portfolios repository.PortfolioRepository
	contacts   repository.ContactRepository
	validator  *validation.Validator
	log        *logger.Logger
}

func NewContactUseCase(
	portfolios repository.PortfolioRepository,
	contacts repository.ContactRepository,
	validator *validation.Validator,
	log *logger.Logger,
) *ContactUseCase {
	return &ContactUseCase{
		portfolios: portfolios,
		contacts:   contacts,
		validator:  validator,
		log:        log.With("usecase", "contact"),
	}
}

// Send stores a message addressed to the owner of req.PortfolioUsername.
func (uc *ContactUseCase) Send(ctx context.Context, req *SendMessageRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	req.PortfolioUsername = strings.TrimSpace(req.PortfolioUsername)
	if err := uc.validator.Struct(req); err != nil {
		return err
	}
	username := req.PortfolioUsername

	p, err := uc.portfolios.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrPortfolioNotFound) {
			return apperr.NotFound("Portfolio not found", err)
		}
		uc.log.Error("Contact portfolio lookup failed", "username", username, "error", err)
		return apperr.Internal("Something went wrong", err)
	}

	msg := &domain.ContactMessage{
		PortfolioID: p.ID,
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Message:     req.Message,
	}
	if err := uc.contacts.Create(ctx, msg); err != nil {
		uc.log.Error("Error inserting contact message", "username", username, "error", err)
		return apperr.Internal("Failed to send message", err)
	}
	uc.log.Info("Contact message stored", "username", username)
	return nil
}
