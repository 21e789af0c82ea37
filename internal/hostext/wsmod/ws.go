// Package wsmod registers WebSocket host functions over
// github.com/gorilla/websocket, grounded on the teacher's
// internal/network/websocket.go connection wrapper (spec §3).
package wsmod

import (
	"time"

	"graphscript/internal/context"
	"graphscript/internal/gerrors"
	"graphscript/internal/hostfn"
	"graphscript/internal/value"

	"github.com/gorilla/websocket"
)

// conn adapts *websocket.Conn to value.Resource.
type conn struct {
	c      *websocket.Conn
	closed bool
}

func (w *conn) Close() error {
	w.closed = true
	return w.c.Close()
}

func (w *conn) IsAvailable() bool { return !w.closed }

// Register installs wsConnect, wsSend, and wsRecv.
func Register(reg *hostfn.Registry) {
	reg.Register("wsConnect", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if len(args) != 1 || args[0].Tag() != value.String {
			return value.Nil(), gerrors.New(gerrors.TypeMismatch, "wsConnect requires a single URL string")
		}
		dialer := websocket.DefaultDialer
		dialer.HandshakeTimeout = 10 * time.Second
		c, _, err := dialer.Dial(args[0].AsString(), nil)
		if err != nil {
			return value.Nil(), gerrors.Wrap(err, gerrors.HostError, "wsConnect")
		}
		return value.Res(value.NewResourceRef(&conn{c: c})), nil
	})

	reg.Register("wsSend", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		if len(args) != 2 {
			return value.Nil(), gerrors.New(gerrors.ArityMismatch, "wsSend requires (connection, payload)")
		}
		w, err := resolveConn("wsSend", args)
		if err != nil {
			return value.Nil(), err
		}
		payload := args[1]
		msgType := websocket.TextMessage
		data := []byte(payload.ToString())
		if payload.Tag() == value.Bytes {
			msgType = websocket.BinaryMessage
			data = payload.AsBytes()
		}
		if err := w.c.WriteMessage(msgType, data); err != nil {
			return value.Nil(), gerrors.Wrap(err, gerrors.HostError, "wsSend")
		}
		return value.Nil(), nil
	})

	reg.Register("wsRecv", func(args []value.Value, ctx *context.Context, vm hostfn.VM) (value.Value, error) {
		w, err := resolveConn("wsRecv", args[:1])
		if err != nil {
			return value.Nil(), err
		}
		msgType, data, err := w.c.ReadMessage()
		if err != nil {
			return value.Nil(), gerrors.Wrap(err, gerrors.HostError, "wsRecv")
		}
		if msgType == websocket.BinaryMessage {
			return value.Byt(data), nil
		}
		return value.Str(string(data)), nil
	})
}

func resolveConn(name string, args []value.Value) (*conn, error) {
	if len(args) < 1 || args[0].Tag() != value.ResourceTag {
		return nil, gerrors.New(gerrors.TypeMismatch, "%s requires a websocket connection resource", name)
	}
	w, ok := args[0].AsResource().Unwrap().(*conn)
	if !ok {
		return nil, gerrors.New(gerrors.TypeMismatch, "%s: resource is not a websocket connection", name)
	}
	if !args[0].AsResource().IsAvailable() {
		return nil, gerrors.New(gerrors.HostError, "%s: connection is closed", name)
	}
	return w, nil
}
