package app

import (
	"fmt"
	"io"
	"strings"

	"strokerisk/internal/config"
	"strokerisk/internal/model"
)

type StartupSummary struct {
	Env              string
	HTTPAddr         string
	Model            model.Info
	ModelWatch       bool
	StorePath        string
	LegacyFieldOrder bool
	Templates        string
	Static           string
}

func newStartupSummary(cfg *config.Config, info model.Info) *StartupSummary {
	return &StartupSummary{
		Env:              cfg.App.Env,
		HTTPAddr:         cfg.App.HTTPAddr,
		Model:            info,
		ModelWatch:       cfg.Model.Watch,
		StorePath:        cfg.Store.Path,
		LegacyFieldOrder: cfg.API.LegacyFieldOrder,
		Templates:        orEmbedded(cfg.Web.TemplateDir),
		Static:           orEmbedded(cfg.Web.StaticDir),
	}
}

func (s *StartupSummary) Print(w io.Writer) {
	title := "STARTUP SUMMARY"
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "%*s\n", 30+len(title)/2, title)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintln(w, "[HTTP]")
	fmt.Fprintf(w, "  env:        %s\n", s.Env)
	fmt.Fprintf(w, "  listen:     %s\n", s.HTTPAddr)
	fmt.Fprintf(w, "  templates:  %s\n", s.Templates)
	fmt.Fprintf(w, "  static:     %s\n", s.Static)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[MODEL]")
	fmt.Fprintf(w, "  name:       %s v%d\n", s.Model.Name, s.Model.Version)
	fmt.Fprintf(w, "  artifact:   %s\n", formatValue(s.Model.Path))
	fmt.Fprintf(w, "  hot reload: %s\n", onOff(s.ModelWatch))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "[API]")
	fmt.Fprintf(w, "  legacy field order: %s\n", onOff(s.LegacyFieldOrder))
	fmt.Fprintf(w, "  audit log:          %s\n", formatValue(s.StorePath))
	fmt.Fprintln(w, strings.Repeat("=", 60))
}

func orEmbedded(dir string) string {
	if strings.TrimSpace(dir) == "" {
		return "(embedded)"
	}
	return dir
}

func formatValue(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
