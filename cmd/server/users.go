package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lessonboard/lessonboard/internal/domain"
	"github.com/lessonboard/lessonboard/internal/platform/postgres"
	"github.com/lessonboard/lessonboard/internal/store"
	"github.com/spf13/cobra"
)

// userOptions are the flags of the user create command.
type userOptions struct {
	name     string
	email    string
	password string
	verified bool
}

func newUserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var opts userOptions
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := initializeApp()
			if err != nil {
				return err
			}

			db, err := setupAppDatabase(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			users := postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, log)
			user, err := createUser(cmd.Context(), users, opts, time.Now())
			if err != nil {
				return err
			}

			log.Info("User created",
				slog.String("user_id", user.ID.String()),
				slog.String("email", user.Email),
				slog.Bool("verified", user.IsVerified()))
			return nil
		},
	}

	createCmd.Flags().StringVar(&opts.name, "name", "", "display name")
	createCmd.Flags().StringVar(&opts.email, "email", "", "login e-mail address")
	createCmd.Flags().StringVar(&opts.password, "password", "", "password (12 to 72 characters)")
	createCmd.Flags().BoolVar(&opts.verified, "verified", false, "mark the e-mail address as verified")
	for _, flag := range []string{"name", "email", "password"} {
		_ = createCmd.MarkFlagRequired(flag)
	}

	userCmd.AddCommand(createCmd)
	return userCmd
}

// createUser validates opts and stores the new account.
func createUser(ctx context.Context, users store.UserStore, opts userOptions, now time.Time) (*domain.User, error) {
	user, err := domain.NewUser(opts.name, opts.email, opts.password)
	if err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	if opts.verified {
		user.MarkVerified(now)
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
