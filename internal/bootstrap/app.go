package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"menshealth-backend/internal/audit"
	googleauth "menshealth-backend/internal/auth"
	"menshealth-backend/internal/patients"
	"menshealth-backend/internal/services/health"
	"menshealth-backend/internal/shared/auth"
	"menshealth-backend/internal/shared/config"
	"menshealth-backend/internal/shared/server"
	"menshealth-backend/internal/shared/storage/db"
	"menshealth-backend/internal/shared/telemetry"
	"menshealth-backend/internal/surveyrecs"
	"menshealth-backend/internal/surveys"
	"menshealth-backend/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	Tokens                 *auth.TokenService
	UsersService           *users.Service
	PatientsService        *patients.Service
	SurveysService         *surveys.Service
	RecommendationsService *surveyrecs.Service
	AuditService           *audit.Service
}

// Build connects storage, wires services and handlers, and builds the router.
// Dev-like environments fall back to in-memory repositories when no database
// is configured or reachable.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if sqlDB != nil && cfg.RunMigrations {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpirationHours, cfg.Env == "production")
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB, Tokens: tokens}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Tokens:          tokens,
		Health:          health.NewService(sqlDB),
		Users:           users.NewHandler(app.UsersService),
		Patients:        patients.NewHandler(app.PatientsService, app.AuditService),
		Surveys:         surveys.NewHandler(app.SurveysService),
		Recommendations: surveyrecs.NewHandler(app.RecommendationsService, app.AuditService),
		Audit:           audit.NewHandler(app.AuditService),
		GoogleAuth: googleauth.NewGoogleService(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleRedirectURL,
			cfg.UIRedirectURL,
			app.UsersService,
		),
	})
	return app, nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_storage", map[string]any{"reason": "connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildServices(app *App) {
	var (
		userRepo    users.Repo
		patientRepo patients.Repo
		surveyRepo  surveys.Repo
		recRepo     surveyrecs.Repo
		auditRepo   audit.Repo
	)

	var onPatientDelete func(ctx context.Context, patientID string)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		patientRepo = &patients.PGRepo{DB: app.DB}
		surveyRepo = &surveys.PGRepo{DB: app.DB}
		recRepo = &surveyrecs.PGRepo{DB: app.DB}
		auditRepo = &audit.PGRepo{DB: app.DB}
	} else {
		memSurveys := surveys.NewMemoryRepo()
		memRecs := surveyrecs.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
		patientRepo = patients.NewMemoryRepo()
		surveyRepo = memSurveys
		recRepo = memRecs
		auditRepo = audit.NewMemoryRepo()
		onPatientDelete = memoryCascade(memSurveys, memRecs)
	}

	hasher := auth.NewPasswordHasher(app.Config.BcryptCost)
	app.UsersService = users.NewService(userRepo, app.Tokens, hasher)
	app.PatientsService = patients.NewService(patientRepo)
	app.PatientsService.OnDelete = onPatientDelete
	app.SurveysService = surveys.NewService(surveyRepo, app.PatientsService)
	app.RecommendationsService = surveyrecs.NewService(recRepo, surveyRepo)
	app.AuditService = audit.NewService(auditRepo)
}

// memoryCascade mirrors the ON DELETE CASCADE chain patients -> surveys ->
// survey_recommendations for in-memory storage.
func memoryCascade(surveyRepo *surveys.MemoryRepo, recRepo *surveyrecs.MemoryRepo) func(context.Context, string) {
	return func(ctx context.Context, patientID string) {
		items, err := surveyRepo.ListByPatient(ctx, patientID)
		if err != nil {
			telemetry.Error("bootstrap.cascade_failed", map[string]any{"patient_id": patientID, "error": err})
			return
		}
		for _, s := range items {
			recRepo.DeleteBySurvey(s.ID)
		}
		surveyRepo.DeleteByPatient(patientID)
	}
}
