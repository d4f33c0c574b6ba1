package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/ecommerce_backend/internal/cart"
	"github.com/Skotchmaster/ecommerce_backend/internal/hash"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/mykafka"
	"github.com/Skotchmaster/ecommerce_backend/internal/store"
	"github.com/Skotchmaster/ecommerce_backend/internal/tokens"
)

type AuthService struct {
	Users     store.UserStore
	Tokens    *tokens.Issuer
	Events    mykafka.Publisher
	CartSlots int
}

func (s *AuthService) Signup(ctx context.Context, name, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	_, err := s.Users.UserByEmail(ctx, email)
	switch {
	case err == nil:
		return "", ErrDuplicateEmail
	case !errors.Is(err, store.ErrNotFound):
		return "", fmt.Errorf("lookup user: %w", err)
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	slots := s.CartSlots
	if slots <= 0 {
		slots = cart.DefaultSlots
	}
	u := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		CartData: cart.New(slots),
	}
	if err := s.Users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return "", ErrDuplicateEmail
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return "", err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, u.ID, map[string]any{
		"type":   "user_signed_up",
		"userID": u.ID,
	})
	return token, nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.Users.UserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if !hash.CheckPassword(u.Password, password) {
		return "", ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		return "", err
	}

	publish(ctx, s.Events, mykafka.TopicUserEvents, u.ID, map[string]any{
		"type":   "user_logged_in",
		"userID": u.ID,
	})
	return token, nil
}
