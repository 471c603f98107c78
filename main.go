// Package main provides the main entry point for the movie tracker server.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"movietracker/cache"
	"movietracker/config"
	"movietracker/library"
	"movietracker/models"
	"movietracker/resolver"
	"movietracker/services"
	"movietracker/store"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

// App represents the application with its dependencies
type App struct {
	library    *library.Library
	collection *store.Store
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	configPath := os.Getenv("MOVIETRACKER_CONFIG")
	if configPath == "" {
		configPath = "movietracker.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid config:", err)
	}

	tmdbClient := services.NewTMDBClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.HTTPTimeout())

	// The rating service is optional; without a key enrichment fields
	// stay empty.
	var ratingSource resolver.RatingSource
	if cfg.OMDB.APIKey != "" {
		ratingSource = services.NewOMDBClient(cfg.OMDB.APIKey, cfg.OMDB.BaseURL, cfg.HTTPTimeout())
		log.Println("OMDb rating enrichment enabled")
	} else {
		log.Println("Warning: OMDB_API_KEY not set - rating enrichment will be disabled")
	}

	var resolveCache library.ResolveCache
	if cfg.CachePath != "" {
		c, err := cache.Open(cfg.CachePath)
		if err != nil {
			log.Printf("Warning: resolve cache unavailable: %v", err)
		} else {
			defer func() {
				if err := c.Close(); err != nil {
					log.Printf("Failed to close cache: %v", err)
				}
			}()
			resolveCache = c
			log.Println("Resolve cache enabled")
		}
	}

	collection := store.New(cfg.DataFile)
	res := resolver.New(tmdbClient, ratingSource, cfg.MatchThreshold)

	app := &App{
		library:    library.New(res, collection, resolveCache),
		collection: collection,
	}

	r := mux.NewRouter()

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods("GET")

	// API routes
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/movies", app.listMoviesHandler).Methods("GET")
	api.HandleFunc("/movies", app.addMoviesHandler).Methods("POST")
	api.HandleFunc("/movies", app.clearMoviesHandler).Methods("DELETE")
	api.HandleFunc("/movies/top", app.topMoviesHandler).Methods("GET")
	api.HandleFunc("/movies/top", app.importTopHandler).Methods("POST")
	api.HandleFunc("/movies/rank", app.setRankHandler).Methods("PUT")
	api.HandleFunc("/movies/rank", app.clearRanksHandler).Methods("DELETE")

	log.Printf("Server starting on %s", cfg.Bind)
	server := &http.Server{
		Addr:         cfg.Bind,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Fatal(server.ListenAndServe())
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (app *App) listMoviesHandler(w http.ResponseWriter, _ *http.Request) {
	records, err := app.collection.Load()
	if err != nil {
		log.Printf("Error loading collection: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.MovieRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// addMoviesHandler processes a batch of titles and reports the per-title
// outcome summary.
func (app *App) addMoviesHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Titles []string `json:"titles"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(request.Titles) == 0 {
		http.Error(w, "At least one title is required", http.StatusBadRequest)
		return
	}

	summary, err := app.library.AddMovies(r.Context(), request.Titles)
	if err != nil {
		log.Printf("Error adding movies: %v", err)
		http.Error(w, "Failed to add movies", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

func (app *App) clearMoviesHandler(w http.ResponseWriter, _ *http.Request) {
	if err := app.collection.Clear(); err != nil {
		log.Printf("Error clearing collection: %v", err)
		http.Error(w, "Failed to clear collection", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Collection cleared"})
}

func (app *App) topMoviesHandler(w http.ResponseWriter, _ *http.Request) {
	records, err := app.collection.Top()
	if err != nil {
		log.Printf("Error loading ranked movies: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.MovieRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (app *App) importTopHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Entries []library.TopEntry `json:"entries"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(request.Entries) == 0 {
		http.Error(w, "At least one entry is required", http.StatusBadRequest)
		return
	}

	summary, err := app.library.ImportTop(r.Context(), request.Entries)
	if err != nil {
		log.Printf("Error importing ranked movies: %v", err)
		http.Error(w, "Failed to import ranked movies", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, summary)
}

func (app *App) setRankHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Title string `json:"title"`
		Rank  *int   `json:"rank"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if request.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	if err := app.collection.SetRank(request.Title, request.Rank); err != nil {
		log.Printf("Error setting rank: %v", err)
		http.Error(w, "Movie not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Rank updated"})
}

func (app *App) clearRanksHandler(w http.ResponseWriter, _ *http.Request) {
	if err := app.collection.ClearRanks(); err != nil {
		log.Printf("Error clearing ranks: %v", err)
		http.Error(w, "Failed to clear ranks", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Rankings cleared"})
}
