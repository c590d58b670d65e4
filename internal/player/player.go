// Package player drives a single quiz over a websocket connection.
package player

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coder/websocket"
	"github.com/jbpratt/wardrobe/internal/wardrobe"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type MsgKind string

// Client frames.
const (
	SelectKindMsg  MsgKind = "SELECTKIND"
	SelectColorMsg MsgKind = "SELECTCOLOR"
	SubmitMsg      MsgKind = "SUBMIT"
	AdvanceMsg     MsgKind = "ADVANCE"
	RestartMsg     MsgKind = "RESTART"
	StateMsg       MsgKind = "STATE"
)

// Server frames. StateMsg is sent back after every client frame.
const (
	EmptyMsg MsgKind = "EMPTY"
	ErrMsg   MsgKind = "ERR"
)

type Msg struct {
	Kind  MsgKind `json:"-"`
	Label string  `json:"label,omitempty"`
}

type WebsocketConn interface {
	Read(ctx context.Context) (websocket.MessageType, []byte, error)
	Write(ctx context.Context, messageType websocket.MessageType, data []byte) error
	Close(code websocket.StatusCode, reason string) error
}

type Player struct {
	logger *zap.SugaredLogger
	conn   WebsocketConn
	quiz   *wardrobe.Quiz
}

// New returns a player for conn. A nil quiz means the pool is empty; the
// player reports that to the client and hangs up.
func New(logger *zap.SugaredLogger, conn WebsocketConn, quiz *wardrobe.Quiz) *Player {
	return &Player{
		logger: logger,
		conn:   conn,
		quiz:   quiz,
	}
}

func (p *Player) Run(ctx context.Context) error {
	defer func() {
		if err := p.Destroy(); err != nil {
			p.logger.Debugw("failed to close connection", "err", err)
		}
	}()

	if p.quiz == nil {
		p.logger.Info("pool is empty, nothing to play")
		return p.send(ctx, EmptyMsg, struct{}{})
	}

	if err := p.sendState(ctx); err != nil {
		return err
	}

	p.logger.Info("player connected")
	rawMsgs := make(chan string)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(rawMsgs)

		for {
			_, data, err := p.conn.Read(egCtx)
			if err != nil {
				if egCtx.Err() != nil {
					return nil
				}
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					p.logger.Info("player disconnected")
					return nil
				}
				return fmt.Errorf("failed while reading message: %w", err)
			}

			p.logger.Debugw("message read", "msg", string(data))
			select {
			case rawMsgs <- string(data):
			case <-egCtx.Done():
				return nil
			}
		}
	})

	eg.Go(func() error {
		for {
			select {
			case <-egCtx.Done():
				p.logger.Info("context canceled, stopping process loop")
				return nil
			case raw, ok := <-rawMsgs:
				if !ok {
					return nil
				}

				msg, err := parseMsg(raw)
				if err != nil {
					p.logger.Infow("failed to parse message", "err", err)
					if err = p.sendErr(egCtx, err.Error()); err != nil {
						return err
					}
					continue
				}

				if err = p.handle(egCtx, msg); err != nil {
					return err
				}
			}
		}
	})

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("failure while running: %w", err)
	}

	return nil
}

func (p *Player) handle(ctx context.Context, msg *Msg) error {
	var accepted bool
	switch msg.Kind {
	case SelectKindMsg:
		accepted = p.quiz.SelectKind(msg.Label)
	case SelectColorMsg:
		accepted = p.quiz.SelectColor(msg.Label)
	case SubmitMsg:
		accepted = p.quiz.Submit()
	case AdvanceMsg:
		accepted = p.quiz.Advance()
	case RestartMsg:
		p.quiz.Restart()
		accepted = true
	case StateMsg:
		accepted = true
	default:
		return p.sendErr(ctx, fmt.Sprintf("unknown message kind %q", msg.Kind))
	}

	if !accepted {
		p.logger.Debugw("action ignored", "kind", msg.Kind, "label", msg.Label, "phase", p.quiz.Phase())
	}

	return p.sendState(ctx)
}

func (p *Player) Destroy() error {
	return p.conn.Close(websocket.StatusNormalClosure, "going away")
}

func (p *Player) sendState(ctx context.Context) error {
	return p.send(ctx, StateMsg, p.quiz.View())
}

func (p *Player) send(ctx context.Context, kind MsgKind, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", kind, err)
	}
	return p.write(ctx, fmt.Sprintf("%s %s", kind, data))
}

func (p *Player) sendErr(ctx context.Context, msg string) error {
	return p.write(ctx, fmt.Sprintf("%s %s", ErrMsg, strconv.Quote(msg)))
}

func (p *Player) write(ctx context.Context, frame string) error {
	p.logger.Debugw("sending message", "msg", frame)
	if err := p.conn.Write(ctx, websocket.MessageText, []byte(frame)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

// parseMsg reads a client frame of the form `KIND {json}`. The JSON body may
// be left out for actions that carry no label.
func parseMsg(raw string) (*Msg, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty message")
	}

	kind, body, _ := strings.Cut(raw, " ")
	msg := &Msg{}
	if body = strings.TrimSpace(body); body != "" {
		if err := json.Unmarshal([]byte(body), msg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %v %w", body, err)
		}
	}
	msg.Kind = MsgKind(kind)

	switch msg.Kind {
	case SelectKindMsg, SelectColorMsg:
		if msg.Label == "" {
			return nil, fmt.Errorf("%s requires a label", msg.Kind)
		}
	}

	return msg, nil
}
