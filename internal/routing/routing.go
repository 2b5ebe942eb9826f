package routing

import (
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"uigallery/pkg/gallery"
	"uigallery/pkg/handlers"
	"uigallery/pkg/middleware"
	"uigallery/pkg/ratelimit"
	"uigallery/pkg/session"
	"uigallery/pkg/user"
)

const (
	staticPath = "./static"
	deniedPath = "/denied"
)

func InitRoutes(api *mux.Router, db *sql.DB, mongoDB *mongo.Database, redisClient *redis.Client, logger *slog.Logger) *middleware.Guard {

	userRepo := user.NewMySQLRepo(db)
	userService := user.NewService(userRepo)
	limiter := ratelimit.NewLoginLimiter(redisClient)
	userHandler := handlers.NewUserHandler(userService, limiter, logger)

	galleryService := gallery.NewService(gallery.NewMongoRepo(mongoDB))
	galleryHandler := handlers.NewGalleryHandler(galleryService, logger)

	adminHandler := handlers.NewAdminHandler(userService, logger)

	validator := session.NewValidator(userRepo)
	guard := middleware.NewGuard(validator, logger, deniedPath)

	/* -+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+ */

	/* auth routes, no session required */
	api.HandleFunc("/register", userHandler.Register).Methods("POST").Name("register")
	api.HandleFunc("/login", userHandler.Login).Methods("POST").Name("login")
	api.HandleFunc("/logout", userHandler.Logout).Methods("POST").Name("logout")

	/* public gallery reads */
	api.HandleFunc("/items", galleryHandler.GetAllItems).Methods("GET")
	api.HandleFunc("/items/{category:(?:"+gallery.CategoryPattern+")}", galleryHandler.GetItemsByCategory).Methods("GET")
	api.HandleFunc("/item/slug/{slug:[a-z0-9-]+}", galleryHandler.GetItemBySlug).Methods("GET")
	api.HandleFunc("/item/{item_id:[a-fA-F0-9]+}", galleryHandler.GetItemByID).Methods("GET")

	/* authenticated */
	meRouter := api.PathPrefix("").Subrouter()
	meRouter.Use(guard.RequireAPI(session.StateAuthenticated))
	meRouter.HandleFunc("/me", userHandler.Me).Methods("GET")

	/* admin API: item mutations and user administration */
	adminAPI := api.PathPrefix("").Subrouter()
	adminAPI.Use(guard.RequireAPI(session.StateAdmin))
	adminAPI.HandleFunc("/items", galleryHandler.CreateItem).Methods("POST")
	adminAPI.HandleFunc("/item/{item_id:[a-fA-F0-9]+}", galleryHandler.UpdateItem).Methods("PUT")
	adminAPI.HandleFunc("/item/{item_id:[a-fA-F0-9]+}", galleryHandler.DeleteItem).Methods("DELETE")
	adminAPI.HandleFunc("/item/{item_id:[a-fA-F0-9]+}/feature", galleryHandler.FeatureItem).Methods("PUT")
	adminAPI.HandleFunc("/admin/users", adminHandler.ListUsers).Methods("GET")
	adminAPI.HandleFunc("/admin/user/{user_id:[a-zA-Z0-9-]+}", adminHandler.DeleteUser).Methods("DELETE")
	adminAPI.HandleFunc("/admin/user/{user_id:[a-zA-Z0-9-]+}/{action:(?:"+handlers.AdminActionPattern+")}", adminHandler.UserAction).Methods("PUT")

	return guard
}

// ServeAdminPages puts the admin UI behind the cheap claim-cookie prefilter
// and the full page guard; the prefilter alone never admits anyone.
func ServeAdminPages(r *mux.Router, guard *middleware.Guard) {
	adminPage := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, staticPath+"/html/admin.html")
	})

	wrapped := middleware.AdminPrefilter(deniedPath)(guard.RequirePage(session.StateAdmin)(adminPage))
	r.PathPrefix("/admin").Handler(wrapped)
}

func ServeStaticFiles(r *mux.Router) {
	fs := http.FileServer(http.Dir(staticPath))
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", fs))

	r.HandleFunc(deniedPath, func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, staticPath+"/html/denied.html")
	})
}

func ServeFallback(r *mux.Router, logger *slog.Logger) {
	r.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/static/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			if _, err := w.Write([]byte("[]")); err != nil {
				logger.Error("failed to write fallback JSON", slog.String("path", r.URL.Path), slog.Any("error", err))
			}
			return
		}
		http.ServeFile(w, r, "static/html/index.html")
	})
}

func StartServer(r *mux.Router, addr string) {
	fmt.Println("\n\033[32m", "The server is running on http://localhost"+addr, "\033[0m")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("Server failed:", err)
	}
}
