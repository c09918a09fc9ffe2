package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"poemarket-backend/services/ninja"
	"poemarket-backend/services/poedb"
)

const defaultLeague = "Standard"

type Server struct {
	ninja ninja.Service
	poedb poedb.Service
}

func (s Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("POST /api/scrape/builds", s.handleScrapeBuilds)
	mux.HandleFunc("POST /api/scrape/mods", s.handleScrapeMods)
	mux.HandleFunc("GET /api/builds/{league}", s.handleBuilds)
	mux.HandleFunc("GET /api/mods/{itemClass}", s.handleMods)
	mux.HandleFunc("GET /api/market/{league}/{category}", s.handleMarket)
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Warn("failed to encode response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJson(w, status, map[string]string{"error": err.Error()})
}

func (s Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]string{
		"service": "poemarket-backend",
		"status":  "ok",
	})
}

func (s Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats, err := s.poedb.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]any{
		"status": "ok",
		"mods":   stats,
	})
}

func (s Server) handleScrapeBuilds(w http.ResponseWriter, r *http.Request) {
	league := r.URL.Query().Get("league")
	if league == "" {
		league = defaultLeague
	}

	records, attempts, err := s.ninja.ScrapeBuilds(r.Context(), league)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]any{
		"league":   league,
		"count":    len(records),
		"attempts": attempts,
		"builds":   records,
	})
}

func (s Server) handleScrapeMods(w http.ResponseWriter, r *http.Request) {
	result, err := s.poedb.ScrapeMods(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJson(w, http.StatusOK, result)
}

func (s Server) handleBuilds(w http.ResponseWriter, r *http.Request) {
	league := r.PathValue("league")
	limit := queryInt(r, "limit", 100)

	records, err := s.ninja.Builds(r.Context(), league, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]any{
		"league": league,
		"count":  len(records),
		"builds": records,
	})
}

func (s Server) handleMods(w http.ResponseWriter, r *http.Request) {
	query := poedb.ModsQuery{
		ItemClass:    r.PathValue("itemClass"),
		Kind:         poedb.AffixKind(r.URL.Query().Get("kind")),
		MinItemLevel: queryInt(r, "minIlvl", 1),
		MaxItemLevel: queryInt(r, "maxIlvl", 100),
		Search:       r.URL.Query().Get("search"),
	}
	if query.Kind != "" && query.Kind != poedb.AffixPrefix && query.Kind != poedb.AffixSuffix {
		writeJson(w, http.StatusBadRequest, map[string]string{
			"error": "kind must be prefix or suffix",
		})
		return
	}

	records, err := s.poedb.Mods(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]any{
		"itemClass": query.ItemClass,
		"count":     len(records),
		"mods":      records,
	})
}

func (s Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	league := r.PathValue("league")
	category := r.PathValue("category")

	// refresh on demand, serve the stored snapshot when fetching fails
	lines, err := s.ninja.ScrapeMarket(r.Context(), league, category)
	if err != nil {
		slog.WarnContext(r.Context(), "market fetch failed, serving stored snapshot",
			"league", league, "category", category, "err", err)
		lines, err = s.ninja.Market(r.Context(), league, category)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
	}
	writeJson(w, http.StatusOK, map[string]any{
		"league":   league,
		"category": category,
		"count":    len(lines),
		"lines":    lines,
	})
}

func queryInt(r *http.Request, key string, fallback int64) int64 {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
