package routes

import (
	"employeedir/app/controllers"
	"employeedir/app/middleware"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SetupPageRoutes defines the directory page routes
func SetupPageRoutes(pageController *controllers.PageController, log *zap.Logger) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))

	router.HandleFunc("/", pageController.Show).Methods("GET")
	router.HandleFunc("/select", pageController.Select).Methods("POST")
	router.HandleFunc("/toggle", pageController.Toggle).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.HandleFunc("/state", pageController.State).Methods("GET")

	return router
}

// SetupMirrorRoutes defines the read-only directory API served by the mirror
func SetupMirrorRoutes(mirrorController *controllers.MirrorController, log *zap.Logger) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))

	router.HandleFunc("/users", mirrorController.Users).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}", mirrorController.User).Methods("GET")
	router.HandleFunc("/posts", mirrorController.Posts).Methods("GET")
	router.HandleFunc("/comments", mirrorController.Comments).Methods("GET")

	return router
}
