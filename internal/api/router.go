package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hpandey/instaclone-be/internal/api/handlers"
	"github.com/hpandey/instaclone-be/internal/auth"
	"github.com/hpandey/instaclone-be/internal/services"
	"github.com/hpandey/instaclone-be/internal/store"
	"github.com/hpandey/instaclone-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	clientURL string,
	tokens *auth.TokenService,
	users store.UserStore,
	authService services.AuthServiceProvider,
	userService services.UserServiceProvider,
	postService services.PostServiceProvider,
	hub *websocket.Hub,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{clientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService)
	wsHandler := handlers.NewWebSocketHandler(hub)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
		r.Post("/reset-password", authHandler.ResetPassword)
		r.Post("/new-password", authHandler.NewPassword)
		r.Post("/search-users", userHandler.Search)

		// Live activity feed. Browsers cannot set the Authorization header
		// on websocket upgrades, so the feed sits outside the guard.
		r.Get("/ws", wsHandler.Serve)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens, users))

			r.Get("/allpost", postHandler.GetAll)
			r.Get("/getsubpost", postHandler.GetFollowing)
			r.Post("/createpost", postHandler.Create)
			r.Get("/mypost", postHandler.GetMine)
			r.Put("/like", postHandler.Like)
			r.Put("/unlike", postHandler.Unlike)
			r.Put("/comment", postHandler.Comment)
			r.Delete("/deletepost/{postId}", postHandler.Delete)

			r.Get("/user/{id}", userHandler.GetProfile)
			r.Put("/follow", userHandler.Follow)
			r.Put("/unfollow", userHandler.Unfollow)
			r.Put("/updatepic", userHandler.UpdatePic)
			r.Put("/updatebio", userHandler.UpdateBio)
		})
	})

	return r
}
