package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hazyhaar/tanzil-search/pkg/kit"
	"github.com/hazyhaar/tanzil-search/pkg/quran"
)

// NewRouter returns an http.Handler with all API routes.
func NewRouter(svc *Service) http.Handler {
	mux := http.NewServeMux()
	h := &handler{
		resolve:      resolveEndpoint(svc),
		getVerse:     getVerseEndpoint(svc),
		listChapters: listChaptersEndpoint(svc),
		svc:          svc,
	}

	mux.HandleFunc("GET /v1/chapters", h.handleListChapters)
	mux.HandleFunc("GET /v1/chapters/{number}/verses/{position}", h.handleGetVerse)
	mux.HandleFunc("GET /v1/chapters/{number}/resolve", h.handleResolve)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(mux)
}

type handler struct {
	resolve      kit.Endpoint
	getVerse     kit.Endpoint
	listChapters kit.Endpoint
	svc          *Service
}

// --- resolve ---

func (h *handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	chapter, ok := pathInt(w, r, "number")
	if !ok {
		return
	}
	q := r.URL.Query()

	resp, err := h.resolve(r.Context(), &resolveReq{
		Chapter: chapter,
		Query:   q.Get("q"),
		Recite:  q.Get("recite") == "1" || q.Get("recite") == "true",
	})
	if err != nil {
		writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- get verse ---

func (h *handler) handleGetVerse(w http.ResponseWriter, r *http.Request) {
	chapter, ok := pathInt(w, r, "number")
	if !ok {
		return
	}
	position, ok := pathInt(w, r, "position")
	if !ok {
		return
	}

	resp, err := h.getVerse(r.Context(), &verseReq{Chapter: chapter, Position: position})
	if err != nil {
		writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- list chapters ---

func (h *handler) handleListChapters(w http.ResponseWriter, r *http.Request) {
	resp, err := h.listChapters(r.Context(), nil)
	if err != nil {
		writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status       string `json:"status"`
	OpenChapters []int  `json:"open_chapters"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		OpenChapters: h.svc.OpenChapters(),
	})
}

// --- helpers ---

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return n, true
}

func writeProviderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quran.ErrNoChapter), errors.Is(err, errNoVerse):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, quran.ErrDataUnavailable):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
