package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"segment-aligner/internal/aligner"
	"segment-aligner/internal/contextutil"
	"segment-aligner/internal/playback"
	"segment-aligner/internal/service"
)

const (
	followWriteWait  = 10 * time.Second
	followPongWait   = 60 * time.Second
	followPingPeriod = followPongWait * 9 / 10
)

// Follow message types sent by the client.
const (
	FollowTick        = "tick"
	FollowLoop        = "loop"
	FollowLoopChunk   = "loop_chunk"
	FollowLoopClear   = "loop_clear"
	FollowPunch       = "punch"
	FollowPunchCancel = "punch_cancel"
)

// FollowMessage is a client message on the follow socket.
type FollowMessage struct {
	Type  string   `json:"type"`
	Time  *float64 `json:"time,omitempty"`
	Start *float64 `json:"start,omitempty"`
	End   *float64 `json:"end,omitempty"`
	Chunk *int     `json:"chunk,omitempty"`
	Pad   float64  `json:"pad,omitempty"`
}

// FollowReply is sent after every well-formed client message.
type FollowReply struct {
	Time      float64       `json:"time"`
	Segment   int           `json:"segment"`
	Word      int           `json:"word"`
	InGap     bool          `json:"in_gap"`
	PastWords int           `json:"past_words"`
	Seek      *float64      `json:"seek,omitempty"`
	Loop      *aligner.Span `json:"loop,omitempty"`
	Punch     string        `json:"punch"`
	Recording bool          `json:"recording"`
}

// FollowHandler streams the active segment and word to a player over a
// websocket. The player reports its clock with tick messages and may set a
// loop region or a punch-in window.
type FollowHandler struct {
	alignService service.AlignService
	upgrader     websocket.Upgrader
}

// NewFollowHandler creates a new FollowHandler.
func NewFollowHandler(alignService service.AlignService) *FollowHandler {
	return &FollowHandler{
		alignService: alignService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP handles GET /api/transcripts/{id}/follow.
func (h *FollowHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	// Resolve the transcript before upgrading so a bad id gets a plain 404.
	t, err := h.alignService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load transcript")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an error response.
		logger.WarnContext(ctx, "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	logger = logger.With("transcript_id", t.ID)
	logger.InfoContext(ctx, "follow session started")

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	_ = conn.SetReadDeadline(time.Now().Add(followPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(followPongWait))
	})

	session := newFollowSession(t.Segments, t.Chunks)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WarnContext(ctx, "follow session read failed", "error", err)
			}
			logger.InfoContext(ctx, "follow session ended")
			return
		}

		var reply any
		var msg FollowMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			reply = ErrorResponse{Error: "invalid message: " + err.Error()}
		} else if rep, err := session.apply(msg); err != nil {
			reply = ErrorResponse{Error: err.Error()}
		} else {
			reply = rep
		}

		_ = conn.SetWriteDeadline(time.Now().Add(followWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			logger.WarnContext(ctx, "follow session write failed", "error", err)
			return
		}
	}
}

// keepAlive pings the peer until done is closed. WriteControl may run
// concurrently with the read loop's writes.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(followPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(followWriteWait)); err != nil {
				return
			}
		}
	}
}

// followSession is the playback state of one follow connection. It is owned
// by the connection's read loop.
type followSession struct {
	segments []aligner.Segment
	chunks   []aligner.Chunk
	loop     playback.Loop
	punch    playback.Punch
	time     float64
}

func newFollowSession(segments []aligner.Segment, chunks []aligner.Chunk) *followSession {
	return &followSession{segments: segments, chunks: chunks}
}

// apply handles one client message and returns the reply. Messages other
// than tick update state and report the location at the last tick.
func (s *followSession) apply(msg FollowMessage) (FollowReply, error) {
	var seek playback.Seek

	switch msg.Type {
	case FollowTick:
		if msg.Time == nil {
			return FollowReply{}, errors.New("tick requires time")
		}
		if math.IsNaN(*msg.Time) || math.IsInf(*msg.Time, 0) {
			return FollowReply{}, errors.New("tick time must be a finite number")
		}
		t := math.Max(*msg.Time, 0)
		s.loop, seek = s.loop.Tick(t)
		if seek.OK {
			t = seek.To
		}
		s.punch = s.punch.Tick(t)
		s.time = t

	case FollowLoop:
		if msg.Start == nil || msg.End == nil {
			return FollowReply{}, errors.New("loop requires start and end")
		}
		s.loop = s.loop.Set(*msg.Start, *msg.End)

	case FollowLoopChunk:
		if msg.Chunk == nil || *msg.Chunk < 0 || *msg.Chunk >= len(s.chunks) {
			return FollowReply{}, fmt.Errorf("chunk must be between 0 and %d", len(s.chunks)-1)
		}
		if !s.chunks[*msg.Chunk].Timed() {
			return FollowReply{}, errors.New("chunk has no timing")
		}
		s.loop = s.loop.FromChunk(s.chunks[*msg.Chunk], msg.Pad)

	case FollowLoopClear:
		s.loop = s.loop.Clear()

	case FollowPunch:
		if msg.Start == nil || msg.End == nil {
			return FollowReply{}, errors.New("punch requires start and end")
		}
		s.punch = s.punch.Arm(*msg.Start, *msg.End)

	case FollowPunchCancel:
		s.punch = s.punch.Cancel()

	default:
		return FollowReply{}, fmt.Errorf("unknown message type %q", msg.Type)
	}

	return s.reply(seek), nil
}

func (s *followSession) reply(seek playback.Seek) FollowReply {
	res := service.LocateIn(s.segments, s.time)
	reply := FollowReply{
		Time:      s.time,
		Segment:   res.Segment,
		Word:      res.Word,
		InGap:     res.InGap,
		PastWords: res.PastWords,
		Punch:     s.punch.Phase.String(),
		Recording: s.punch.Recording(),
	}
	if seek.OK {
		to := seek.To
		reply.Seek = &to
	}
	if s.loop.Enabled {
		region := s.loop.Region
		reply.Loop = &region
	}
	return reply
}
