package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hirevox/hirevox/internal/models"
	"github.com/hirevox/hirevox/internal/services"
	"github.com/hirevox/hirevox/internal/utils"
	"github.com/hirevox/hirevox/internal/voice"
)

// WSHandler is the voice-session channel. The browser-side voice agent
// pushes lifecycle and transcript events over the socket; they are decoded
// into typed voice.Event values on a channel that the session runner drains.
// Interviewer replies and status updates travel back via Redis pub/sub,
// bridged onto the same socket.
type WSHandler struct {
	interviews    services.InterviewService
	conversations services.ConversationService
	feedback      services.FeedbackService
	live          services.LiveSessionService
	redis         *redis.Client
	logger        *logrus.Logger
	upgrader      websocket.Upgrader
}

func NewWSHandler(
	interviews services.InterviewService,
	conversations services.ConversationService,
	feedback services.FeedbackService,
	live services.LiveSessionService,
	rdb *redis.Client,
	l *logrus.Logger,
) *WSHandler {
	return &WSHandler{
		interviews:    interviews,
		conversations: conversations,
		feedback:      feedback,
		live:          live,
		redis:         rdb,
		logger:        l,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origin in prod
		},
	}
}

type wsConn struct {
	c  *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) writeText(b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.c.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return w.c.WriteMessage(websocket.TextMessage, b)
}

func (h *WSHandler) SessionWS(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	interviewID := c.Param("interview_id")
	if interviewID == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, "WSHandler.SessionWS", "missing interview_id", nil))
		return
	}

	// ownership check doubles as existence check
	iv, err := h.interviews.Get(c.Request.Context(), userID, interviewID)
	if err != nil {
		writeError(c, err)
		return
	}

	sess := voice.NewSession()
	if err := sess.Begin(); err != nil {
		writeError(c, utils.E(utils.CodeConflict, "WSHandler.SessionWS", "cannot start session", err))
		return
	}
	if _, err := h.live.Start(c.Request.Context(), userID, interviewID); err != nil {
		writeError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// upgrade already wrote response in most cases
		return
	}
	defer conn.Close()

	wc := &wsConn{c: conn}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	log := h.logger.WithFields(logrus.Fields{
		"interview_id": interviewID,
		"user_id":      userID,
	})

	respCh := "interview:" + interviewID + ":response"
	statusCh := "interview:" + interviewID + ":status"

	pubsub := h.redis.Subscribe(ctx, respCh, statusCh)
	defer pubsub.Close()

	// writer: Redis Pub/Sub -> WS
	go func() {
		for m := range pubsub.Channel() {
			if werr := wc.writeText([]byte(m.Payload)); werr != nil {
				cancel()
				return
			}
		}
	}()

	// reader: WS -> typed event channel
	events := make(chan voice.Event, 16)
	go func() {
		defer close(events)
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		for {
			_, data, rerr := conn.ReadMessage()
			if rerr != nil {
				return
			}
			ev, perr := voice.ParseEvent(data)
			if perr != nil {
				_ = wc.writeText([]byte(`{"type":"error","code":"INVALID_ARGUMENT","message":"invalid event"}`))
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	h.runSession(ctx, sess, iv, events, log)
}

// runSession drives the voice session state machine off the event channel.
// It returns when the call ends, errors out, or the socket drops.
func (h *WSHandler) runSession(ctx context.Context, sess *voice.Session, iv *models.Interview, events <-chan voice.Event, log *logrus.Entry) {
	statusCh := "interview:" + iv.ID + ":status"
	respCh := "interview:" + iv.ID + ":response"

	var seq int64
	questionIndex := 0
	finished := false

	// a dropped socket must not leave the interview locked
	defer func() {
		if !finished {
			_ = h.live.SetState(context.WithoutCancel(ctx), iv.ID, voice.StateIdle)
		}
	}()

	finish := func() {
		finished = true
		_ = h.live.End(ctx, iv.ID)

		transcript, err := h.live.Transcript(ctx, iv.ID)
		if err != nil || len(transcript) == 0 {
			h.publish(ctx, statusCh, map[string]any{"type": "status", "status": "finished"})
			return
		}

		// Store-level uniqueness makes this exactly-once even if the client
		// also posts the feedback route.
		fb, err := h.feedback.Create(ctx, iv.UserID, iv.ID, transcript)
		if err != nil {
			log.WithError(err).Error("feedback synthesis failed")
			h.publish(ctx, statusCh, map[string]any{
				"type": "error", "code": utils.CodeFeedbackFailed, "message": "failed to generate feedback",
			})
			return
		}
		h.publish(ctx, respCh, map[string]any{"type": "feedback_ready", "feedback_id": fb.ID})
		h.publish(ctx, statusCh, map[string]any{"type": "status", "status": "finished"})
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				// socket dropped; no further utterances will arrive
				return
			}

			if err := sess.Apply(ev.Type); err != nil {
				log.WithError(err).Warn("event rejected")
				h.publish(ctx, statusCh, map[string]any{
					"type": "error", "code": utils.CodeInvalidArgument, "message": err.Error(),
				})
				continue
			}

			switch ev.Type {
			case voice.EventCallStart:
				_ = h.live.SetState(ctx, iv.ID, voice.StateActive)
				h.publish(ctx, statusCh, map[string]any{"type": "status", "status": "active"})

			case voice.EventSpeechStart:
				h.publish(ctx, statusCh, map[string]any{"type": "status", "status": "speaking"})

			case voice.EventSpeechEnd:
				h.publish(ctx, statusCh, map[string]any{"type": "status", "status": "listening"})

			case voice.EventTranscript:
				if !ev.Final {
					continue
				}

				if ev.Role == models.RoleInterviewer {
					// agent-side speech, record only
					seq++
					if err := h.live.AppendTurn(ctx, iv.ID, seq, ev.Role, ev.Transcript); err != nil {
						log.WithError(err).Error("failed to buffer interviewer turn")
					}
					continue
				}

				history, err := h.live.Transcript(ctx, iv.ID)
				if err != nil {
					log.WithError(err).Error("failed to load transcript")
					continue
				}

				seq++
				if err := h.live.AppendTurn(ctx, iv.ID, seq, models.RoleCandidate, ev.Transcript); err != nil {
					log.WithError(err).Error("failed to buffer candidate turn")
				}

				res, err := h.conversations.Advance(ctx, iv, questionIndex, ev.Transcript, history)
				if err != nil {
					// session stays active; the next utterance retries the turn
					log.WithError(err).Error("conversation turn failed")
					h.publish(ctx, statusCh, map[string]any{
						"type": "error", "code": utils.CodeConversationFailed, "message": "failed to process turn",
					})
					continue
				}

				seq++
				if err := h.live.AppendTurn(ctx, iv.ID, seq, models.RoleInterviewer, res.Message); err != nil {
					log.WithError(err).Error("failed to buffer interviewer turn")
				}

				if res.MoveToNext {
					questionIndex++
					_ = h.live.SetQuestionIndex(ctx, iv.ID, questionIndex)
				}

				h.publish(ctx, respCh, map[string]any{
					"type":           "reply",
					"message":        res.Message,
					"move_to_next":   res.MoveToNext,
					"end_interview":  res.EndInterview,
					"question_index": questionIndex,
				})

				if res.EndInterview {
					finish()
					return
				}

			case voice.EventCallEnd:
				finish()
				return

			case voice.EventError:
				log.WithField("message", ev.Message).Warn("voice channel error")
				_ = h.live.SetState(ctx, iv.ID, voice.StateIdle)
				return
			}
		}
	}
}

func (h *WSHandler) publish(ctx context.Context, channel string, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := h.redis.Publish(ctx, channel, string(b)).Err(); err != nil {
		h.logger.WithError(err).WithField("channel", channel).Warn("publish failed")
	}
}
