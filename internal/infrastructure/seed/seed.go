// Package seed loads the default development accounts and spaces.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zerotrace/smart-facility/internal/core/domain"
	"github.com/zerotrace/smart-facility/internal/core/ports"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "ChangeMe123!"

var defaultUsers = []ports.RegisterInput{
	{Email: "admin@example.com", FullName: "Admin User", Role: domain.RoleAdmin},
	{Email: "manager@example.com", FullName: "Manager User", Role: domain.RoleManager},
	{Email: "member@example.com", FullName: "Member User", Role: domain.RoleMember},
}

var defaultSpaces = []ports.SpaceInput{
	{Name: "Orion Lab", Location: "Floor 2", Capacity: 20, Features: []string{"Projector", "Whiteboard"}, Active: true},
	{Name: "Nova Room", Location: "Floor 3", Capacity: 12, Features: []string{"TV", "Conference Phone"}, Active: true},
	{Name: "Atlas Hall", Location: "Floor 1", Capacity: 50, Features: []string{"Stage", "PA System"}, Active: true},
}

// Seeder fills empty user and space tables. Tables that already hold rows
// are left untouched.
type Seeder struct {
	users    ports.UserRepository
	spaces   ports.SpaceRepository
	auth     ports.AuthService
	spaceSvc ports.SpaceService
	log      zerolog.Logger
}

func NewSeeder(
	users ports.UserRepository,
	spaces ports.SpaceRepository,
	auth ports.AuthService,
	spaceSvc ports.SpaceService,
	log zerolog.Logger,
) *Seeder {
	return &Seeder{users: users, spaces: spaces, auth: auth, spaceSvc: spaceSvc, log: log}
}

func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	return s.seedSpaces(ctx)
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	n, err := s.users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, in := range defaultUsers {
		in.Password = DefaultPassword
		if _, err := s.auth.Register(ctx, in); err != nil {
			return fmt.Errorf("seed user %s: %w", in.Email, err)
		}
	}
	s.log.Info().Int("count", len(defaultUsers)).Msg("seeded default users (password: " + DefaultPassword + ")")
	return nil
}

func (s *Seeder) seedSpaces(ctx context.Context) error {
	n, err := s.spaces.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed spaces: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, in := range defaultSpaces {
		if _, err := s.spaceSvc.Create(ctx, in); err != nil {
			return fmt.Errorf("seed space %s: %w", in.Name, err)
		}
	}
	s.log.Info().Int("count", len(defaultSpaces)).Msg("seeded default spaces")
	return nil
}
