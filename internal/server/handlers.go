package server

import (
	"errors"
	"fmt"
	"html"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/goliatone/go-knock/internal/knock"
	"github.com/goliatone/go-knock/internal/knockform"
	"github.com/goliatone/go-knock/internal/metrics"
	"github.com/goliatone/go-knock/pkg/form"
	"github.com/goliatone/go-knock/pkg/message"
	"github.com/goliatone/go-knock/pkg/openapi"
	"github.com/goliatone/go-knock/pkg/render"
	"github.com/goliatone/go-knock/pkg/renderers/vanilla"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleIndex renders the knock form and, when it was submitted and passes
// validation, knocks every selected destination first.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := s.logger.With(zap.String("request_id", requestID(r)))

	f, err := knockform.Build(s.cfg, r.RemoteAddr, form.WithAction(s.cfg.PathApplication))
	if err != nil {
		logger.Error("build knock form", zap.Error(err))
		http.Error(w, "unable to build form", http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}
	f.Fetch(form.Input{Request: form.RequestValues(r.Form, form.Namespace)})

	msgs := message.New()
	ready := true
	if err := knock.CheckTmpDir(s.cfg.TmpDir); err != nil {
		logger.Warn("tmp dir unusable", zap.String("dir", s.cfg.TmpDir), zap.Error(err))
		msgs.AddError(fmt.Sprintf(`Temporary directory "%s" is not writable.`, html.EscapeString(s.cfg.TmpDir)))
		ready = false
	}

	var valid *bool
	if ready && knockform.Submitted(f) {
		ok := f.Validate()
		valid = &ok
		if ok {
			s.knock(r, logger, f, msgs)
		} else {
			s.metrics.ValidationFailures(f.Failed()...)
			logger.Debug("knock form rejected", zap.Strings("elements", f.Failed()))
		}
	}

	renderer, err := s.renderers.Negotiate(r.Header.Get("Accept"))
	if err != nil {
		logger.Error("negotiate renderer", zap.Error(err))
		http.Error(w, "no renderer available", http.StatusInternalServerError)
		return
	}
	body, err := renderer.Render(ctx, f, s.renderOptions(r, msgs.Get(message.All, true), valid))
	if err != nil {
		logger.Error("render knock form", zap.String("renderer", renderer.Name()), zap.Error(err))
		http.Error(w, "unable to render form", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	_, _ = w.Write(body)
}

func (s *Server) knock(r *http.Request, logger *zap.Logger, f *form.Form, msgs *message.Messages) {
	req, err := knockform.Request(s.cfg, f)
	if err != nil {
		s.metrics.KnockAttempt(metrics.ResultFailure)
		if errors.Is(err, knock.ErrNoHosts) {
			msgs.AddError("No destination selected.")
			return
		}
		logger.Error("prepare knock", zap.Error(err))
		msgs.AddError("Unable to prepare the knock request.")
		return
	}

	results, err := s.client.Knock(r.Context(), req)
	for _, result := range results {
		outcome := metrics.ResultSuccess
		if !result.OK() {
			outcome = metrics.ResultFailure
		}
		s.metrics.KnockAttempt(outcome)
		logger.Info("knock sent",
			zap.String("host", result.Host),
			zap.String("allow_ip", req.AllowIP),
			zap.Int("exit_code", result.ExitCode),
		)
	}
	knock.Report(results, msgs, s.cfg.Verbose)
	if err != nil {
		s.metrics.KnockAttempt(metrics.ResultFailure)
		logger.Error("knock", zap.Error(err))
		msgs.AddError("Unable to execute fwknop.")
	}
}

func (s *Server) renderOptions(r *http.Request, snapshot message.Snapshot, valid *bool) render.RenderOptions {
	opts := render.RenderOptions{
		Title:    "Knock",
		Locale:   requestLocale(r),
		Messages: snapshot,
		Theme:    s.theme,
		Product:  s.product,
		Version:  s.version,
		Legend:   true,
		Valid:    valid,
	}
	if s.theme == nil {
		opts.Stylesheets = []string{s.staticPrefix() + "/" + vanilla.StylesheetName}
	}
	opts.Buttons.Add("knock", "knock knock", "start knocking")
	return opts
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	f, err := knockform.Build(s.cfg, r.RemoteAddr)
	if err != nil {
		s.logger.Error("build knock form", zap.Error(err))
		http.Error(w, "unable to build form", http.StatusInternalServerError)
		return
	}
	payload, err := openapi.MarshalJSON(f,
		openapi.WithTitle(s.product),
		openapi.WithVersion(s.version),
		openapi.WithDescription("Sends single packet authorization knocks with fwknop."),
		openapi.WithPath(s.cfg.PathApplication),
		openapi.WithOperationID("knock"),
	)
	if err != nil {
		s.logger.Error("describe knock form", zap.Error(err))
		http.Error(w, "unable to describe form", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

// requestLocale returns the preferred Accept-Language tag, or "" when the
// header is missing or malformed.
func requestLocale(r *http.Request) string {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ""
	}
	return tags[0].String()
}
