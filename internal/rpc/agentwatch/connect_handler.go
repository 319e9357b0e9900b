package agentwatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bufbuild/connect-go"

	"github.com/SamsoftComputers/catsdk/internal/observability"
	"github.com/SamsoftComputers/catsdk/internal/rpc"
	"github.com/SamsoftComputers/catsdk/internal/rpc/connectjson"
)

const ConnectWatchProcedure = "/connect.engine.v1.EngineService/Watch"

// NewConnectHandler builds a Connect bidi stream handler for Watch.
func NewConnectHandler(watcher Watcher, metrics *observability.Metrics) (string, http.Handler) {
	h := &connectWatchHandler{watcher: watcher, metrics: metrics}
	return ConnectWatchProcedure, connect.NewBidiStreamHandler(ConnectWatchProcedure, h.handle, connect.WithCodec(connectjson.Codec{}))
}

type connectWatchHandler struct {
	watcher Watcher
	metrics *observability.Metrics
}

func (h *connectWatchHandler) handle(ctx context.Context, stream *connect.BidiStream[rpc.WatchStreamRequest, rpc.AgentEvent]) error {
	h.metrics.IncActiveStreams("connect")
	defer h.metrics.DecActiveStreams("connect")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	first, err := stream.Receive()
	if err != nil {
		h.metrics.RecordTransportError("connect", "receive_first")
		return err
	}
	if first == nil || first.Watch == nil {
		h.metrics.RecordTransportError("connect", "missing_watch")
		return connect.NewError(connect.CodeInvalidArgument, errors.New("first message must include watch payload"))
	}

	req := *first.Watch
	if req.SessionID == "" {
		req.SessionID = fmt.Sprintf("watch-%d", time.Now().UnixNano())
	}

	// Listen for cancellation messages from the client. EOF on the send
	// side is not a cancel: a watcher may close its request half and keep
	// reading.
	go func() {
		for {
			msg, recvErr := stream.Receive()
			if recvErr != nil {
				if errors.Is(recvErr, io.EOF) {
					return
				}
				if !errors.Is(recvErr, context.Canceled) {
					h.metrics.RecordTransportError("connect", "receive_stream")
				}
				cancel()
				return
			}
			if msg != nil && msg.Cancel {
				cancel()
				return
			}
		}
	}()

	events, stop := h.watcher.Watch(req)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, open := <-events:
			if !open {
				return nil
			}
			if err := stream.Send(&ev); err != nil {
				h.metrics.RecordTransportError("connect", "send")
				return err
			}
		}
	}
}
