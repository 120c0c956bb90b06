package service

import (
	"context"
	"fmt"

	"finis-oculus/internal/auth"
	"finis-oculus/internal/dashboard/repository"
)

// SignIn builds the session for token. The user id is read from the token
// and the plan from the profile endpoint, which also proves the token is
// accepted by the server.
func SignIn(ctx context.Context, api repository.APIRepository, token string) (*auth.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	userID, err := auth.SubjectUnverified(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	profile, err := api.GetProfile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &auth.Session{UserID: userID, Token: token, Premium: profile.Premium}, nil
}
