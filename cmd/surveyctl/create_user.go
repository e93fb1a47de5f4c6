package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"menshealth-backend/internal/shared/auth"
	"menshealth-backend/internal/shared/config"
	"menshealth-backend/internal/shared/storage/db"
	"menshealth-backend/internal/shared/validation"
	"menshealth-backend/internal/users"
)

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a clinician account",
	Long:  "Creates a clinician account in the configured database. The password is read from --password or SURVEYCTL_PASSWORD.",
	RunE:  runCreateUser,
}

var (
	createUserEmail    string
	createUserName     string
	createUserRole     string
	createUserPassword string
	createUserDBURL    string
)

func init() {
	createUserCmd.Flags().StringVar(&createUserEmail, "email", "", "Account email (required)")
	createUserCmd.Flags().StringVar(&createUserName, "name", "", "Display name (required)")
	createUserCmd.Flags().StringVar(&createUserRole, "role", users.RoleDoctor, "Role: doctor, staff or admin")
	createUserCmd.Flags().StringVar(&createUserPassword, "password", "", "Password (overrides SURVEYCTL_PASSWORD env var)")
	createUserCmd.Flags().StringVar(&createUserDBURL, "db-url", "", "Database URL (overrides DATABASE_URL env var)")

	for _, name := range []string{"email", "name"} {
		if err := createUserCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(createUserCmd)
}

func runCreateUser(cmd *cobra.Command, _ []string) error {
	password := createUserPassword
	if password == "" {
		password = os.Getenv("SURVEYCTL_PASSWORD")
	}
	in := users.CreateInput{
		Email:    createUserEmail,
		Password: password,
		Name:     createUserName,
		Role:     createUserRole,
	}
	if err := validation.MustNew().Struct(in); err != nil {
		return fmt.Errorf("invalid account: %v", validation.FieldErrors(err))
	}

	cfg := config.Load()
	ctx := context.Background()
	sqlDB, err := db.Connect(ctx, firstNonEmpty(createUserDBURL, cfg.DatabaseURL), db.OptionsFromEnv(db.DefaultCLIOptions()))
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer sqlDB.Close()

	return createUser(ctx, cmd, &users.PGRepo{DB: sqlDB}, cfg, in)
}

func createUser(ctx context.Context, cmd *cobra.Command, repo users.Repo, cfg config.Config, in users.CreateInput) error {
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpirationHours, false)
	if err != nil {
		return err
	}
	svc := users.NewService(repo, tokens, auth.NewPasswordHasher(cfg.BcryptCost))
	user, err := svc.Create(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return writeJSON(cmd, user)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
