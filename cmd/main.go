package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tatarby/backend/internal/data/db"
	authrepo "github.com/tatarby/backend/internal/data/repos/auth"
	dialogrepo "github.com/tatarby/backend/internal/data/repos/dialog"
	progressrepo "github.com/tatarby/backend/internal/data/repos/progress"
	userrepo "github.com/tatarby/backend/internal/data/repos/user"
	httpserver "github.com/tatarby/backend/internal/http"
	httpH "github.com/tatarby/backend/internal/http/handlers"
	httpMW "github.com/tatarby/backend/internal/http/middleware"
	"github.com/tatarby/backend/internal/pkg/envutil"
	"github.com/tatarby/backend/internal/pkg/logger"
	"github.com/tatarby/backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := envutil.String("JWT_SECRET_KEY", "defaultsecret")
	port := envutil.Int("PORT", 8000)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	thePG := postgresService.DB()
	if err = db.AutoMigrateAll(thePG); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}

	// Repos
	log.Info("Setting up repos...")
	userRepo := userrepo.NewUserRepo(thePG, log)
	userTokenRepo := authrepo.NewUserTokenRepo(thePG, log)
	dialogRepo := dialogrepo.NewDialogRepo(thePG, log)
	voteRepo := dialogrepo.NewVoteRepo(thePG, log)
	questionRepo := dialogrepo.NewQuestionRepo(thePG, log)
	answerRepo := dialogrepo.NewAnswerRepo(thePG, log)
	userAnswerRepo := progressrepo.NewUserAnswerRepo(thePG, log)
	cursorRepo := progressrepo.NewUserDialogQuestionRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey)
	dialogService := services.NewDialogService(thePG, log, dialogRepo, voteRepo, questionRepo, answerRepo, userAnswerRepo, cursorRepo, userRepo)
	userService := services.NewUserService(thePG, log, userRepo, userTokenRepo, voteRepo, userAnswerRepo, cursorRepo, dialogRepo, dialogService)
	voteService := services.NewVoteService(thePG, log, voteRepo, dialogRepo)
	questionService := services.NewQuestionService(thePG, log, questionRepo, answerRepo, dialogRepo, userAnswerRepo, cursorRepo)
	answerService := services.NewAnswerService(thePG, log, answerRepo, questionRepo, userAnswerRepo)
	userAnswerService := services.NewUserAnswerService(thePG, log, userAnswerRepo, answerRepo, userRepo)
	cursorService := services.NewCursorService(thePG, log, cursorRepo, dialogRepo, questionRepo, userRepo)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := httpH.NewAuthHandler(authService)
	userHandler := httpH.NewUserHandler(userService)
	dialogHandler := httpH.NewDialogHandler(dialogService)
	voteHandler := httpH.NewVoteHandler(voteService)
	questionHandler := httpH.NewQuestionHandler(questionService)
	answerHandler := httpH.NewAnswerHandler(answerService)
	userAnswerHandler := httpH.NewUserAnswerHandler(userAnswerService)
	cursorHandler := httpH.NewCursorHandler(cursorService)
	healthHandler := httpH.NewHealthHandler()

	authMiddleware := httpMW.NewAuthMiddleware(log, authService)

	server := httpserver.NewServer(httpserver.RouterConfig{
		Logger:            log,
		AuthHandler:       authHandler,
		AuthMiddleware:    authMiddleware,
		UserHandler:       userHandler,
		DialogHandler:     dialogHandler,
		VoteHandler:       voteHandler,
		QuestionHandler:   questionHandler,
		AnswerHandler:     answerHandler,
		UserAnswerHandler: userAnswerHandler,
		CursorHandler:     cursorHandler,
		HealthHandler:     healthHandler,
	})

	address := fmt.Sprintf(":%d", port)
	log.Info("Starting HTTP server", "address", address)
	if err := server.Run(address); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
