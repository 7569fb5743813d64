package inmemory

import (
	"context"
	"fmt"
)

// SeedDemo fills an empty store with a few users and posts for local runs.
func (s *Store) SeedDemo(ctx context.Context) error {
	alice := s.AddUser("Alice", "alice@example.com")
	bob := s.AddUser("Bob", "bob@example.com")
	s.AddUser("Carol", "carol@example.com")

	welcome, err := s.CreatePost(ctx, alice.ID, "Welcome", "First post on the blog.")
	if err != nil {
		return fmt.Errorf("seed post: %w", err)
	}
	if _, err := s.CreatePost(ctx, bob.ID, "Second thoughts", "Another post, by Bob."); err != nil {
		return fmt.Errorf("seed post: %w", err)
	}
	if _, err := s.CreateComment(ctx, welcome.ID, bob.ID, "Nice to be here."); err != nil {
		return fmt.Errorf("seed comment: %w", err)
	}
	if _, err := s.CreateLike(ctx, welcome.ID, bob.ID); err != nil {
		return fmt.Errorf("seed like: %w", err)
	}
	return nil
}
