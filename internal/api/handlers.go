package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kamusis/scout-cli/internal/candidate"
	"github.com/kamusis/scout-cli/internal/search"
)

const maxSearchLimit = 500

// Highlights holds highlight segments for the displayed candidate fields.
type Highlights struct {
	Name  []search.Segment `json:"name"`
	Title []search.Segment `json:"title"`
}

// SearchHit is one matched candidate.
type SearchHit struct {
	Candidate  candidate.Candidate `json:"candidate"`
	Highlights *Highlights         `json:"highlights,omitempty"`
}

// SearchResponse is the body of GET /api/v1/candidates/search.
type SearchResponse struct {
	Query      string             `json:"query"`
	Parsed     search.ParsedQuery `json:"parsed"`
	Total      int                `json:"total"`
	Candidates []SearchHit        `json:"candidates"`
}

// HighlightRequest is the body of POST /api/v1/highlight.
type HighlightRequest struct {
	Text  string `json:"text"`
	Query string `json:"query"`
}

// HistoryRequest is the body of POST /api/v1/history.
type HistoryRequest struct {
	Query string `json:"query" binding:"required"`
}

// SearchHandler filters the loaded candidates.
// Query params: q, limit (0 = all), highlight (default true), record
// (default true; a non-blank query is saved to history).
func (a *API) SearchHandler(c *gin.Context) {
	query := c.Query("q")

	limit, err := intParam(c, "limit", 0)
	if err != nil || limit < 0 || limit > maxSearchLimit {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "limit must be an integer between 0 and 500")
		return
	}
	withHighlights, err := boolParam(c, "highlight", true)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "highlight must be a boolean")
		return
	}
	record, err := boolParam(c, "record", true)
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "record must be a boolean")
		return
	}

	parsed := search.ParseQuery(query)
	matched := a.snapshot()
	if strings.TrimSpace(query) != "" {
		matched = search.FilterParsed(matched, parsed)
	}

	resp := SearchResponse{
		Query:      query,
		Parsed:     parsed,
		Total:      len(matched),
		Candidates: make([]SearchHit, 0, len(matched)),
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	for _, m := range matched {
		hit := SearchHit{Candidate: m}
		if withHighlights {
			hit.Highlights = &Highlights{
				Name:  search.HighlightTerm(m.Name, parsed),
				Title: search.HighlightTerm(m.Title, parsed),
			}
		}
		resp.Candidates = append(resp.Candidates, hit)
	}

	if record && strings.TrimSpace(query) != "" {
		a.history.Save(query)
	}

	a.logger.Debug("search", "query", query, "total", resp.Total)
	c.JSON(http.StatusOK, resp)
}

// GetCandidateHandler returns one candidate by ID.
func (a *API) GetCandidateHandler(c *gin.Context) {
	id := c.Param("id")
	for _, rec := range a.snapshot() {
		if rec.ID == id {
			c.JSON(http.StatusOK, rec)
			return
		}
	}
	SendError(c, http.StatusNotFound, ErrorCodeCandidateNotFound, "no candidate with id "+id)
}

// ReloadHandler re-reads candidates from disk.
func (a *API) ReloadHandler(c *gin.Context) {
	n, err := a.Reload()
	if err != nil {
		a.logger.Error("reload failed", "error", err)
		SendError(c, http.StatusInternalServerError, ErrorCodeLoadFailed, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": n})
}

// SuggestionsHandler returns ranked suggestions, optionally narrowed by
// prefix and category.
func (a *API) SuggestionsHandler(c *gin.Context) {
	category, err := search.ParseCategory(c.Query("category"))
	if err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, err.Error())
		return
	}
	all := search.GenerateSuggestions(a.snapshot())
	c.JSON(http.StatusOK, gin.H{
		"suggestions": search.FilterSuggestions(all, c.Query("prefix"), category),
	})
}

// HighlightHandler splits text around matches of query.
func (a *API) HighlightHandler(c *gin.Context) {
	var req HighlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "invalid request body: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"segments": search.Highlight(req.Text, req.Query)})
}

// ListHistoryHandler returns recent searches, most recent first.
func (a *API) ListHistoryHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": a.history.List()})
}

// SaveHistoryHandler records a query explicitly.
func (a *API) SaveHistoryHandler(c *gin.Context) {
	var req HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON, "invalid request body: "+err.Error())
		return
	}
	a.history.Save(req.Query)
	c.JSON(http.StatusOK, gin.H{"history": a.history.List()})
}

// ClearHistoryHandler removes all recent searches.
func (a *API) ClearHistoryHandler(c *gin.Context) {
	a.history.Clear()
	c.Status(http.StatusNoContent)
}

func intParam(c *gin.Context, name string, def int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func boolParam(c *gin.Context, name string, def bool) (bool, error) {
	v := c.Query(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, errors.New(name + " must be a boolean")
	}
	return b, nil
}
