package main

import (
	"context"
	"os"
	"strings"

	"mural/internal/domain/policy"
	"mural/internal/domain/sqlite"
	"mural/internal/domain/sqlite/repository"
	handler2 "mural/internal/http/handler"
	middleware2 "mural/internal/http/middleware"
	"mural/internal/service"
	"mural/internal/service/jobs"
	"mural/internal/utils"
	"mural/internal/utils/uid"
	"mural/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

const envVarsPrefix = "/mural/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		err := godotenv.Load()
		if err != nil {
			panic(err)
		}
	}

	uid.Init(1)

	// Init SQLite
	db, err := sqlite.Init(envOr("DB_PATH", "database.db"))
	if err != nil {
		panic(err)
	}

	// Staff tokens are verified against the external IDP's key set
	if err := utils.InitJWKS(os.Getenv("STAFF_JWKS_URL")); err != nil {
		log.Fatalf("unable to initialize JWKS: %v", err)
	}

	visibility := policy.NewVisibilityPolicy(reservedDomains())

	// Getting repos
	suggestionRepo := repository.NewSuggestionRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Getting services
	boardService := service.NewBoardService(suggestionRepo, voteRepo, visibility, validate)
	commentService := service.NewCommentService(commentRepo, validate)

	// Getting handlers
	suggestionRoutes := handler2.NewSuggestionDefault(boardService)
	commentRoutes := handler2.NewCommentDefault(commentService)

	// Counter drift repair cron
	reconciler := jobs.NewCounterReconciler(db)
	go reconciler.Start(context.Background())

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	// Public board
	e.GET("/api/suggestions", suggestionRoutes.GetBoard)
	e.GET("/api/suggestions/:id", suggestionRoutes.GetSuggestion)
	e.POST("/api/suggestions", suggestionRoutes.CreateSuggestion)
	e.POST("/api/suggestions/:id/votes", suggestionRoutes.ToggleVote)

	// Comments
	e.GET("/api/suggestions/:id/comments", commentRoutes.GetComments)
	e.POST("/api/suggestions/:id/comments", commentRoutes.CreateComment)

	// Staff authority path
	staff := e.Group("/api/admin", middleware2.NewStaffMiddleware(&middleware2.StaffMiddlewareConfig{
		Visibility: visibility,
	}))
	staff.GET("/suggestions", suggestionRoutes.GetFullBoard)
	staff.PATCH("/suggestions/:id/status", suggestionRoutes.UpdateStatus)
	staff.PATCH("/suggestions/:id/pin", suggestionRoutes.UpdatePin)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)

	if err := e.Start(":" + envOr("SERVER_PORT", "7070")); err != nil {
		panic(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("suggestionmodule", validators.SuggestionModule)
}

func reservedDomains() []string {
	raw := os.Getenv("RESERVED_DOMAINS")
	if raw == "" {
		return nil // policy falls back to its default set
	}

	domains := strings.Split(raw, ",")
	for i, d := range domains {
		domains[i] = strings.TrimSpace(d)
	}
	return domains
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion("us-east-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}

func healthCheckRoute(c echo.Context) error {
	return c.String(200, "OK")
}
