package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"csvdash/internal/ai"
	"csvdash/internal/config"
	"csvdash/internal/dataset"
	"csvdash/internal/insight"
	"csvdash/internal/parser"
)

// Controller wires the dashboard endpoints to the data pipeline and the
// model generator.
type Controller struct {
	cfg      *config.Global
	gen      *insight.Generator
	sessions *Sessions
}

func NewController(cfg *config.Global, gen *insight.Generator, sessions *Sessions) *Controller {
	return &Controller{cfg: cfg, gen: gen, sessions: sessions}
}

// Home serves the embedded dashboard page.
func (ct *Controller) Home(c echo.Context) error {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		return echo.ErrNotFound
	}
	return c.HTMLBlob(http.StatusOK, page)
}

// Upload accepts a multipart CSV/TSV, parses and normalizes it, and stores
// the typed dataset in a session. Passing an existing session id replaces
// that session's datasets entirely; otherwise a new session is created.
func (ct *Controller) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file was uploaded")
	}
	if !parser.CanParse(fh.Filename) {
		return echo.NewHTTPError(http.StatusBadRequest, "only .csv and .tsv files are supported")
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "the uploaded file could not be read")
	}
	defer src.Close()

	f, err := parser.Parse(src, fh.Filename, parser.Delimiter(fh.Filename))
	if err != nil {
		// One user-visible message per malformed file; the session keeps
		// whatever dataset it had before.
		return echo.NewHTTPError(http.StatusBadRequest, "the file could not be parsed: "+err.Error())
	}

	sess, ok := ct.sessions.Get(c.FormValue("session"))
	if !ok {
		sess = ct.sessions.Create()
	}
	keys := dataset.SelectableKeys(f.Header, ct.cfg.ExcludedKeys)
	sess.Replace(f.Name, f.Header, keys, dataset.Normalize(f.Records))

	return c.JSON(http.StatusOK, map[string]any{
		"session": sess.ID,
		"file":    f.Name,
		"keys":    keys,
		"rows":    len(f.Records),
	})
}

// Data sets the active axis keys and returns the display dataset.
func (ct *Controller) Data(c echo.Context) error {
	sess, ok := ct.sessions.Get(c.QueryParam("session"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown session; upload a file first")
	}
	sess.Select(c.QueryParam("x"), c.QueryParam("y"))
	records, xKey, yKey := sess.Display()
	return c.JSON(http.StatusOK, map[string]any{
		"xKey":    xKey,
		"yKey":    yKey,
		"records": records,
	})
}

// Summary asks the model for a narrative over the current display dataset.
func (ct *Controller) Summary(c echo.Context) error {
	if err := ct.requireAccess(c); err != nil {
		return err
	}
	sess, ok := ct.sessions.Get(c.FormValue("session"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown session; upload a file first")
	}
	records, xKey, yKey := sess.Display()
	if xKey == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "select an X axis before requesting a summary")
	}
	text, err := ct.gen.Summarize(c.Request().Context(), records, xKey, yKey)
	if err != nil {
		return aiHTTPError(err)
	}
	sess.SetSummary(text)
	return c.JSON(http.StatusOK, map[string]any{"summary": text})
}

// Ask answers a free-form question about the uploaded data. With
// mode=review the model is asked for the structured issues/advice shape.
func (ct *Controller) Ask(c echo.Context) error {
	if err := ct.requireAccess(c); err != nil {
		return err
	}
	sess, ok := ct.sessions.Get(c.FormValue("session"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown session; upload a file first")
	}
	question := c.FormValue("question")
	if question == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "question must not be empty")
	}
	ctx := c.Request().Context()
	if c.FormValue("mode") == "review" {
		review, err := ct.gen.Review(ctx, sess.Raw(), question)
		if err != nil {
			return aiHTTPError(err)
		}
		return c.JSON(http.StatusOK, review)
	}
	answer, err := ct.gen.Ask(ctx, sess.Raw(), question)
	if err != nil {
		return aiHTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"answer": answer})
}

// requireAccess enforces the dashboard password gate on the AI actions.
// An empty configured password disables the gate. This protects the
// button, not the data pipeline.
func (ct *Controller) requireAccess(c echo.Context) error {
	if ct.cfg.AccessPassword == "" {
		return nil
	}
	got := c.Request().Header.Get("X-Access-Password")
	if got == "" {
		got = c.FormValue("password")
	}
	if got != ct.cfg.AccessPassword {
		return echo.NewHTTPError(http.StatusUnauthorized, "incorrect access password")
	}
	return nil
}

// aiHTTPError maps provider failures to static user-visible messages.
// Nothing is retried and nothing crashes; the user just sees what went
// wrong.
func aiHTTPError(err error) error {
	var (
		authErr *ai.AuthError
		rlErr   *ai.RateLimitError
	)
	switch {
	case errors.Is(err, ai.ErrMissingAPIKey):
		return echo.NewHTTPError(http.StatusServiceUnavailable, "no API key is configured; set api_key in the config")
	case errors.As(err, &authErr):
		return echo.NewHTTPError(http.StatusBadGateway, "the AI service rejected the configured API key")
	case errors.As(err, &rlErr):
		return echo.NewHTTPError(http.StatusBadGateway, "the AI service is rate limiting requests; try again shortly")
	default:
		return echo.NewHTTPError(http.StatusBadGateway, "the AI request failed; try again")
	}
}
