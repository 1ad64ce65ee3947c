package http

import (
	"bytes"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"churnpredict/churn"
)

const (
	// socketWriteWait 单条消息写入超时
	socketWriteWait = 10 * time.Second
	// socketIdleTimeout 客户端空闲超时
	socketIdleTimeout = 60 * time.Second
	// socketMaxMessage 单条消息最大字节数
	socketMaxMessage = 8 << 10
)

func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
				return true
			}
			return slices.Contains(allowedOrigins, origin)
		},
	}
}

// handlePredictSocket 处理实时预测WebSocket连接
// 每条文本消息是一组原始输入，每条回复是预测结果或错误
func (h *Handler) handlePredictSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	requestID := GetRequestID(r.Context())
	conn.SetReadLimit(socketMaxMessage)

	for {
		conn.SetReadDeadline(time.Now().Add(socketIdleTimeout))
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", zap.String("request_id", requestID), zap.Error(err))
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
		if err := conn.WriteJSON(h.socketReply(requestID, payload)); err != nil {
			h.logger.Warn("websocket write failed", zap.String("request_id", requestID), zap.Error(err))
			return
		}
	}
}

func (h *Handler) socketReply(requestID string, payload []byte) any {
	in, err := churn.DecodeInput(bytes.NewReader(payload))
	if err != nil {
		_, body := h.failure(err)
		return body
	}
	resp, err := h.predict(in)
	if err != nil {
		status, body := h.failure(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("prediction failed", zap.String("request_id", requestID), zap.Error(err))
		}
		return body
	}
	return resp
}
