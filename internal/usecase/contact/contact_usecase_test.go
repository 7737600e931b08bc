package contact

import (
	"context"
	"net/http"
	"testing"

	"github.com/portoo/portoo-backend/internal/apperr"
	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/repository/memory"
	"github.com/portoo/portoo-backend/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	owner := &domain.Portfolio{Username: "alex", Email: "alex@example.com"}
	require.NoError(t, repos.Portfolios.Create(ctx, owner))

	uc := NewContactUseCase(repos.Portfolios, repos.Contacts, validation.New(), logger.NewNop())

	err := uc.Send(ctx, &SendMessageRequest{Name: " Sam ", Email: "sam@example.com", Message: "Hi!", PortfolioUsername: "alex"})
	require.NoError(t, err)

	msgs := store.Contacts()
	require.Len(t, msgs, 1)
	assert.Equal(t, owner.ID, msgs[0].PortfolioID)
	assert.Equal(t, "Sam", msgs[0].SenderName)
}

func TestSendRejections(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	require.NoError(t, repos.Portfolios.Create(ctx, &domain.Portfolio{Username: "alex", Email: "alex@example.com"}))
	uc := NewContactUseCase(repos.Portfolios, repos.Contacts, validation.New(), logger.NewNop())

	cases := []struct {
		name    string
		req     SendMessageRequest
		status  int
		msg     string
		details []validation.Issue
	}{
		{
			"blank message", SendMessageRequest{Name: "Sam", Email: "sam@example.com", Message: "   ", PortfolioUsername: "alex"},
			http.StatusBadRequest, "Validation error",
			[]validation.Issue{{Field: "message", Message: "Message is required"}},
		},
		{
			"bad email", SendMessageRequest{Name: "Sam", Email: "sam.example.com", Message: "Hi", PortfolioUsername: "alex"},
			http.StatusBadRequest, "Validation error",
			[]validation.Issue{{Field: "email", Message: "Invalid email address"}},
		},
		{
			"unknown portfolio", SendMessageRequest{Name: "Sam", Email: "sam@example.com", Message: "Hi", PortfolioUsername: "ghost"},
			http.StatusNotFound, "Portfolio not found", nil,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := uc.Send(ctx, &tc.req)
			require.Error(t, err)
			ae := apperr.From(err)
			assert.Equal(t, tc.status, ae.Status)
			assert.Equal(t, tc.msg, ae.Message)
			if tc.details != nil {
				assert.Equal(t, tc.details, ae.Details)
			}
		})
	}
	assert.Empty(t, store.Contacts())
}
