package client

import (
	"context"
	"fmt"

	"dealspot/client/internal/domain"
)

// UserService covers authentication and profile endpoints.
type UserService interface {
	Login(ctx context.Context, email, password string) (*domain.AuthData, error)
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthData, error)
	Profile(ctx context.Context) (*domain.AuthData, error)
	UpdateLocation(ctx context.Context, latitude, longitude float64) error
	Logout(ctx context.Context) error
}

type userService struct {
	gateway *Gateway
}

func NewUserService(gateway *Gateway) UserService {
	return &userService{gateway: gateway}
}

func (s *userService) Login(ctx context.Context, email, password string) (*domain.AuthData, error) {
	env, err := s.gateway.Post(ctx, "/users/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var auth domain.AuthData
	if err := env.Decode(&auth); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &auth, nil
}

func (s *userService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthData, error) {
	env, err := s.gateway.Post(ctx, "/users/signup", req)
	if err != nil {
		return nil, err
	}
	var auth domain.AuthData
	if err := env.Decode(&auth); err != nil {
		return nil, fmt.Errorf("failed to decode signup response: %w", err)
	}
	return &auth, nil
}

func (s *userService) Profile(ctx context.Context) (*domain.AuthData, error) {
	env, err := s.gateway.Get(ctx, "/users/profile")
	if err != nil {
		return nil, err
	}
	var auth domain.AuthData
	if err := env.Decode(&auth); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}
	return &auth, nil
}

func (s *userService) UpdateLocation(ctx context.Context, latitude, longitude float64) error {
	_, err := s.gateway.Put(ctx, "/users/updatelocation", map[string]float64{
		"latitude":  latitude,
		"longitude": longitude,
	})
	return err
}

func (s *userService) Logout(ctx context.Context) error {
	_, err := s.gateway.Post(ctx, "/users/logout", map[string]string{})
	return err
}
