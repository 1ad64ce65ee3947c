package http

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"churnpredict/churn"
	"churnpredict/ml"
)

// HandlerOptions 页面与WebSocket选项
type HandlerOptions struct {
	Title          string
	Locale         language.Tag
	AllowedOrigins []string
}

// Handler 预测相关的HTTP处理器，所有请求共享同一个只读模型
type Handler struct {
	predictor *churn.Predictor
	options   HandlerOptions
	page      *template.Template
	upgrader  websocket.Upgrader
	logger    *zap.Logger
}

// predictResponse 单次预测响应
type predictResponse struct {
	Label       int              `json:"label"`
	Probability float64          `json:"probability"`
	Assessment  churn.Assessment `json:"assessment"`
	Features    ml.AlignedRow    `json:"features"`
	Input       churn.Input      `json:"input"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type schemaResponse struct {
	Model    string    `json:"model"`
	Features int       `json:"features"`
	Columns  []string  `json:"columns"`
	LoadedAt time.Time `json:"loaded_at"`
}

// NewHandler 创建处理器
func NewHandler(predictor *churn.Predictor, options HandlerOptions, logger *zap.Logger) (*Handler, error) {
	if predictor == nil {
		return nil, eris.New("http: handler needs a predictor")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.Title == "" {
		options.Title = "Churn Prediction"
	}
	if options.Locale == language.Und {
		options.Locale = language.English
	}
	page, err := parsePage()
	if err != nil {
		return nil, err
	}
	return &Handler{
		predictor: predictor,
		options:   options,
		page:      page,
		upgrader:  newUpgrader(options.AllowedOrigins),
		logger:    logger,
	}, nil
}

// Register 注册路由
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /predict", h.handleFormPredict)
	mux.HandleFunc("POST /api/predict", h.handlePredict)
	mux.HandleFunc("GET /api/schema", h.handleSchema)
	mux.HandleFunc("GET /api/form", h.handleForm)
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /ws/predict", h.handlePredictSocket)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"model":  h.predictor.Artifact().Model.Name(),
	})
}

func (h *Handler) handleSchema(w http.ResponseWriter, r *http.Request) {
	artifact := h.predictor.Artifact()
	writeJSON(w, http.StatusOK, schemaResponse{
		Model:    artifact.Model.Name(),
		Features: artifact.Model.NumFeatures(),
		Columns:  artifact.Schema.Columns(),
		LoadedAt: artifact.LoadedAt,
	})
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, churn.Controls(churn.DefaultInput()))
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	in, err := churn.DecodeInput(r.Body)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	resp, err := h.predict(in)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// predict 构建特征行并评分，每次请求独立计算
func (h *Handler) predict(in churn.Input) (*predictResponse, error) {
	pred, err := h.predictor.Predict(in)
	if err != nil {
		return nil, err
	}
	return &predictResponse{
		Label:       pred.Label,
		Probability: pred.Probability,
		Assessment:  churn.Assess(pred, h.options.Locale),
		Features:    pred.Row,
		Input:       pred.Input,
	}, nil
}

// writeFailure 输入错误返回400，评分错误返回500并记录日志
func (h *Handler) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, body := h.failure(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("prediction failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
	}
	writeJSON(w, status, body)
}

func (h *Handler) failure(err error) (int, errorResponse) {
	if bodyTooLarge(err) {
		return http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large", Field: "body"}
	}
	var inputErr *churn.InputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest, errorResponse{Error: inputErr.Error(), Field: inputErr.Field}
	}
	return http.StatusInternalServerError, errorResponse{Error: "prediction failed"}
}

func bodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
