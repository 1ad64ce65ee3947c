package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"churnpredict/churn"
)

//go:embed templates/index.html
var templateFS embed.FS

var modelDisplayNames = map[string]string{
	"random_forest":       "Random Forest",
	"decision_tree":       "Decision Tree",
	"logistic_regression": "Logistic Regression",
}

// pageData 表单页面渲染数据
type pageData struct {
	Lang     string
	Title    string
	Model    string
	Features int
	Controls []churn.Control
	Result   *churn.Assessment
	Error    string
}

func parsePage() (*template.Template, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, eris.Wrap(err, "http: parse page template")
	}
	return page, nil
}

func (h *Handler) newPageData(controls []churn.Control) pageData {
	model := h.predictor.Artifact().Model
	name, ok := modelDisplayNames[model.Name()]
	if !ok {
		name = model.Name()
	}
	return pageData{
		Lang:     h.options.Locale.String(),
		Title:    h.options.Title,
		Model:    name,
		Features: model.NumFeatures(),
		Controls: controls,
	}
}

// handleIndex 渲染带默认值的表单
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, h.newPageData(churn.Controls(churn.DefaultInput())))
}

// handleFormPredict 处理表单提交，使用提交的值重新渲染页面并显示结果
func (h *Handler) handleFormPredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		status := http.StatusBadRequest
		if bodyTooLarge(err) {
			status = http.StatusRequestEntityTooLarge
		}
		data := h.newPageData(churn.Controls(churn.DefaultInput()))
		data.Error = "could not read form"
		h.renderPage(w, r, status, data)
		return
	}

	in, err := churn.ParseValues(r.PostForm)
	if err != nil {
		status, body := h.failure(err)
		data := h.newPageData(submittedControls(r.PostForm))
		data.Error = body.Error
		h.renderPage(w, r, status, data)
		return
	}

	resp, err := h.predict(in)
	if err != nil {
		status, body := h.failure(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("prediction failed",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.Error(err),
			)
		}
		data := h.newPageData(churn.Controls(in))
		data.Error = body.Error
		h.renderPage(w, r, status, data)
		return
	}

	data := h.newPageData(churn.Controls(in))
	data.Result = &resp.Assessment
	h.renderPage(w, r, http.StatusOK, data)
}

// submittedControls 输入无效时保留用户提交的原始值
func submittedControls(values url.Values) []churn.Control {
	controls := churn.Controls(churn.DefaultInput())
	for i := range controls {
		if values.Has(controls[i].Name) {
			controls[i].Value = values.Get(controls[i].Name)
		}
	}
	return controls
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		h.logger.Error("render page failed",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
