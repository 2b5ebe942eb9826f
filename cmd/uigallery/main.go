package main

import (
	"uigallery/internal/config"
	"uigallery/internal/logger"
	"uigallery/internal/mongo"
	"uigallery/internal/mysql"
	"uigallery/internal/redisdb"
	"uigallery/internal/routing"
	"uigallery/pkg/middleware"

	"github.com/gorilla/mux"
)

func main() {
	config.Load() // load env var from .env

	db := mysql.LoadDB()
	defer db.Close()

	mongoDB := mongo.LoadDB()
	redisClient := redisdb.LoadDB()

	logger := logger.Load()

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Panic(logger))

	guard := routing.InitRoutes(api, db, mongoDB, redisClient, logger)
	routing.ServeAdminPages(r, guard)
	routing.ServeStaticFiles(r)
	routing.ServeFallback(r, logger)
	routing.StartServer(r, config.HTTPAddr())
}
