package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

const msgInvalidLink = "Please send a valid YouTube link."

type summaryRequest struct {
	URL string `json:"url"`
}

type stageView struct {
	Stage string `json:"stage"`
	Text  string `json:"text"`
	Final bool   `json:"final,omitempty"`
}

type summaryResponse struct {
	Summary string      `json:"summary,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
	Stages  []stageView `json:"stages,omitempty"`
}

func newStageView(p pipeline.Progress) stageView {
	return stageView{Stage: p.Stage.String(), Text: p.Text, Final: p.Final}
}

// GET /health
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /api/summaries
func (s *Server) createSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, summaryResponse{Error: "invalid JSON body"})
		return
	}
	ref, ok := video.Detect(strings.TrimSpace(req.URL))
	if !ok {
		writeJSON(w, http.StatusBadRequest, summaryResponse{Error: msgInvalidLink})
		return
	}

	ctx := logger.WithRequestID(r.Context(), uuid.NewString())
	var stages []stageView
	sink := pipeline.SinkFunc(func(_ context.Context, p pipeline.Progress) error {
		stages = append(stages, newStageView(p))
		return nil
	})

	summary, err := s.pipeline.Run(ctx, ref, sink)
	if err != nil {
		resp := summaryResponse{Error: err.Error(), Stages: stages}
		var pErr *pipeline.Error
		if errors.As(err, &pErr) {
			resp.Error = pErr.Message()
			resp.Kind = pErr.Kind.String()
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{Summary: summary, Stages: stages})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
