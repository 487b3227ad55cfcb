package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	gomponents "maragu.dev/gomponents"

	"github.com/foriam/console/pkg/httpx"
	"github.com/foriam/console/pkg/iamsdk"
	"github.com/foriam/console/pkg/slogx"
)

// Handler serves the console pages. Every API call goes through Client, whose
// token lives in Tokens.
type Handler struct {
	Client *iamsdk.Client
	Tokens iamsdk.TokenStore
	Logger *slog.Logger

	// Production marks cookies Secure.
	Production bool

	validate *validator.Validate
}

func NewHandler(client *iamsdk.Client, logger *slog.Logger, production bool) *Handler {
	return &Handler{
		Client:     client,
		Tokens:     client.Tokens(),
		Logger:     logger,
		Production: production,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	return slogx.FromContext(r.Context())
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}

// flash carries one-shot messages across a POST/redirect/GET.
type flash struct {
	Notice string
	Error  string
}

func readFlash(r *http.Request) flash {
	q := r.URL.Query()
	return flash{
		Notice: strings.TrimSpace(q.Get("notice")),
		Error:  strings.TrimSpace(q.Get("error")),
	}
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	http.Redirect(w, r, path+"?"+url.Values{"notice": {notice}}.Encode(), http.StatusSeeOther)
}

func redirectWithError(w http.ResponseWriter, r *http.Request, path, msg string) {
	http.Redirect(w, r, path+"?"+url.Values{"error": {msg}}.Encode(), http.StatusSeeOther)
}

// apiMessage turns an SDK error into text fit for a notice.
func apiMessage(err error) string {
	var apiErr *iamsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "The IAM API could not be reached. Please try again."
}
