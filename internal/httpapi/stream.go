package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/video"
)

const writeWait = 10 * time.Second

// GET /ws
// The client sends {"url": ...}; every progress update comes back as a
// {"stage","text","final"} frame and the socket closes after the final one.
func (s *Server) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), "WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := logger.WithRequestID(r.Context(), uuid.NewString())

	var req summaryRequest
	if err := conn.ReadJSON(&req); err != nil {
		s.logger.Warn(ctx, "Read WebSocket request: %v", err)
		return
	}

	ref, ok := video.Detect(strings.TrimSpace(req.URL))
	if !ok {
		_ = writeFrame(conn, stageView{Stage: pipeline.Failed.String(), Text: msgInvalidLink, Final: true})
		s.close(conn)
		return
	}

	sink := pipeline.SinkFunc(func(_ context.Context, p pipeline.Progress) error {
		return writeFrame(conn, newStageView(p))
	})
	if _, err := s.pipeline.Run(ctx, ref, sink); err != nil {
		s.logger.Warn(ctx, "Streamed summary for %s failed: %v", ref.URL, err)
	}
	s.close(conn)
}

func writeFrame(conn *websocket.Conn, v stageView) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

func (s *Server) close(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}
