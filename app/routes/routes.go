// Package routes wires the controllers, guard and middleware onto the
// router. The route table is the HTTP surface of the forum core.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"oasis/app/auth"
	"oasis/app/controllers"
	"oasis/app/middleware"
	"oasis/app/repositories"
	"oasis/app/services"
)

// Setup builds the router over the given store and session manager.
func Setup(store *repositories.Store, sessions auth.Manager, log zerolog.Logger) *mux.Router {
	hasher := auth.NewPasswordHasher()
	authService := services.NewAuthService(store.Users(), hasher)
	postService := services.NewPostService(store.Posts(), store.Comments())
	commentService := services.NewCommentService(store.Comments(), store.Posts())

	authController := controllers.NewAuthController(authService, sessions)
	postController := controllers.NewPostController(postService)
	commentController := controllers.NewCommentController(commentService)
	guard := middleware.NewGuard(authService)

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.Metrics)
	router.Use(middleware.Session(sessions))

	router.HandleFunc("/", postController.Index).Methods(http.MethodGet)

	router.HandleFunc("/signup", authController.SignupForm).Methods(http.MethodGet)
	router.HandleFunc("/signup", authController.Signup).Methods(http.MethodPost)
	router.HandleFunc("/login", authController.LoginForm).Methods(http.MethodGet)
	router.HandleFunc("/login", authController.Login).Methods(http.MethodPost)
	router.Handle("/logout",
		guard.RequireLogin(http.HandlerFunc(authController.Logout))).Methods(http.MethodPost)

	router.Handle("/submission",
		guard.RequireLogin(http.HandlerFunc(postController.SubmissionForm))).Methods(http.MethodGet)
	router.Handle("/submission",
		guard.RequireLogin(http.HandlerFunc(postController.Create))).Methods(http.MethodPost)

	router.HandleFunc("/post/{post_id:[0-9]+}", postController.Show).Methods(http.MethodGet)
	router.Handle("/post/{post_id:[0-9]+}",
		guard.RequireLogin(http.HandlerFunc(commentController.Create))).Methods(http.MethodPost)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return router
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
