package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/fofdata/internal/api/respond"
	"github.com/albapepper/fofdata/internal/cache"
	"github.com/albapepper/fofdata/internal/codec"
	"github.com/albapepper/fofdata/internal/savegame"
)

// errNotFound marks lookups inside a decoded file that came up empty.
var errNotFound = errors.New("not found")

func marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// serveFile answers with the JSON of build's result. The response is cached
// under key for as long as the file at path keeps the same size and mtime.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, key, path string, ttl time.Duration, build func() (interface{}, error)) {
	fi, err := os.Stat(path)
	if err != nil {
		h.writeFileError(w, path, err)
		return
	}
	stamp := cache.StampOf(fi)

	if data, etag, ok := h.cache.Get(key, stamp); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	data, etag, err := h.cache.Load(key, stamp, ttl, func() ([]byte, error) {
		v, err := build()
		if err != nil {
			return nil, err
		}
		return marshal(v)
	})
	if err != nil {
		h.writeLoadError(w, path, err)
		return
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

func (h *Handler) writeFileError(w http.ResponseWriter, path string, err error) {
	if savegame.IsNotExist(err) {
		respond.WriteError(w, http.StatusNotFound, "FILE_NOT_FOUND",
			fmt.Sprintf("%s does not exist", relName(h.cfg.SavedGamesDir, path)))
		return
	}
	h.logger.Error("Stat save file", "path", path, "error", err)
	respond.WriteError(w, http.StatusInternalServerError, "READ_FAILED", "Save file could not be read")
}

func (h *Handler) writeLoadError(w http.ResponseWriter, path string, err error) {
	switch {
	case errors.Is(err, errNotFound):
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case codec.Kind(err) != nil:
		h.logger.Warn("Decode failed", "path", path, "error", err)
		respond.WriteDecodeError(w, "Save file could not be decoded", err)
	case savegame.IsNotExist(err):
		h.writeFileError(w, path, err)
	default:
		h.logger.Error("Load save file", "path", path, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "READ_FAILED", "Save file could not be read")
	}
}

// openLeague resolves the {league} URL parameter. It writes the error
// response itself and returns nil on failure.
func (h *Handler) openLeague(w http.ResponseWriter, r *http.Request) *savegame.League {
	name := chi.URLParam(r, "league")
	l, err := savegame.Open(h.cfg.SavedGamesDir, name)
	switch {
	case err == nil:
		return l
	case errors.Is(err, fs.ErrInvalid):
		respond.WriteError(w, http.StatusBadRequest, "INVALID_LEAGUE", "League must be a directory name")
	case savegame.IsNotExist(err):
		respond.WriteError(w, http.StatusNotFound, "LEAGUE_NOT_FOUND", fmt.Sprintf("League %q not found", name))
	default:
		h.logger.Error("Open league", "league", name, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "READ_FAILED", "League could not be opened")
	}
	return nil
}

// intParam parses a numeric URL parameter, writing a 400 on failure.
func intParam(w http.ResponseWriter, r *http.Request, name string, lo, hi int) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v < lo || v > hi {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_"+strings.ToUpper(name),
			fmt.Sprintf("%s must be an integer between %d and %d", name, lo, hi))
		return 0, false
	}
	return v, true
}

func relName(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.Base(path)
}
