package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"ceyquest-server/internal/ai"
	"ceyquest-server/internal/auth"
	"ceyquest-server/internal/dashboard"
	"ceyquest-server/internal/models"
	"ceyquest-server/internal/quiz"
	"ceyquest-server/internal/subject"
	"ceyquest-server/pkg/cache"
	"ceyquest-server/pkg/database"
	"ceyquest-server/pkg/websocket"

	"github.com/gorilla/mux"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize database
	dbConfig := &database.Config{
		Host:     envOr("DB_HOST", "localhost"),
		Port:     envOr("DB_PORT", "5432"),
		User:     envOr("DB_USER", "postgres"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   envOr("DB_NAME", "ceyquest"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Subject{},
		&models.Resource{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAttempt{},
		&models.XPRecord{},
		&models.Leaderboard{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize Redis cache for leaderboard snapshots
	redisCache := cache.NewRedisCache(envOr("REDIS_ADDR", "localhost:6379"))
	if err := redisCache.Ping(); err != nil {
		log.Printf("Warning: redis unavailable, leaderboard reads go straight to the database: %v", err)
	}

	// Initialize WebSocket activity feed
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Initialize repositories
	authRepo := auth.NewRepository(db)
	subjectRepo := subject.NewRepository(db)
	quizRepo := quiz.NewRepository(db)
	dashboardRepo := dashboard.NewRepository(db)

	// Initialize services
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET is required")
	}
	authService := auth.NewService(authRepo, jwtSecret)
	subjectService := subject.NewService(subjectRepo)
	quizService := quiz.NewService(quizRepo, wsHub)
	dashboardService := dashboard.NewService(dashboardRepo, redisCache)

	// Generation API client (injected config, no globals)
	aiClient := ai.NewClient(os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_BASE_URL"))

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	subjectHandler := subject.NewHandler(subjectService)
	quizHandler := quiz.NewHandler(quizService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	aiHandler := ai.NewHandler(aiClient, db)

	// Setup router
	router := mux.NewRouter()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	handler := corsMiddleware.Handler(router)

	// Auth routes - no JWT required
	router.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Authenticated routes
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(auth.Middleware(authService))

	apiRouter.HandleFunc("/me", authHandler.GetMe).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/me", authHandler.UpdateMe).Methods("PUT")

	apiRouter.HandleFunc("/subjects", subjectHandler.ListSubjects).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/subjects/{id}", subjectHandler.GetSubject).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/subjects/{id}/resources", subjectHandler.ListResources).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/resources/{id}", subjectHandler.GetResource).Methods("GET", "OPTIONS")

	apiRouter.HandleFunc("/quizzes", quizHandler.ListQuizzes).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/quizzes/attempts/my", quizHandler.GetMyAttempts).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/quizzes/{id}", quizHandler.GetQuiz).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/quizzes/{id}/questions", quizHandler.GetQuestions).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/quizzes/{id}/submit", quizHandler.SubmitAttempt).Methods("POST", "OPTIONS")

	apiRouter.HandleFunc("/dashboard/stats", dashboardHandler.GetStats).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/dashboard/leaderboard", dashboardHandler.GetLeaderboard).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/dashboard/xp-history", dashboardHandler.GetXPHistory).Methods("GET", "OPTIONS")
	apiRouter.HandleFunc("/dashboard/recent-activity", dashboardHandler.GetRecentActivity).Methods("GET", "OPTIONS")

	apiRouter.HandleFunc("/ai/chat", aiHandler.Chat).Methods("POST", "OPTIONS")
	apiRouter.HandleFunc("/ai/generate-question", aiHandler.GenerateQuestion).Methods("POST", "OPTIONS")

	// WebSocket endpoint - live XP activity per grade cohort
	router.HandleFunc("/ws/activity/{grade}", wsHub.HandleWebSocket)

	// Setup server with CORS handler
	srv := &http.Server{
		Addr:         envOr("ADDR", ":8080"),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown setup
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
