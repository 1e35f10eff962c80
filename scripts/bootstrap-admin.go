// Command bootstrap-admin promotes an existing user to admin.
// Run once after the first real user signs up, so the moderation
// endpoints have someone who can reach them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tastebase/tastebase/internal/model"
	"github.com/tastebase/tastebase/internal/repository"
)

type output struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		userID      = flag.String("user-id", "", "User ID to promote")
		email       = flag.String("email", "", "User email to promote (used when -user-id is empty)")
		demote      = flag.Bool("demote", false, "Clear the admin flag instead of setting it")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *userID == "" && *email == "" {
		fmt.Fprintln(os.Stderr, "one of -user-id or -email is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	user, err := findUser(ctx, repo, *userID, *email)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if err := repo.SetAdmin(ctx, user.ID, !*demote); err != nil {
		fmt.Fprintln(os.Stderr, "set admin flag:", err)
		os.Exit(1)
	}

	out := output{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		IsAdmin:  !*demote,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Printf("%s is_admin=%t\n", out.UserID, out.IsAdmin)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

func findUser(ctx context.Context, repo *repository.Repository, userID, email string) (*model.User, error) {
	if userID != "" {
		user, err := repo.GetUserByID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("lookup user %s: %w", userID, err)
		}
		return user, nil
	}

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user by email %s: %w", email, err)
	}
	return user, nil
}
