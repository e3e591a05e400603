package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/wiverson/life-calendar/internal/calendar"
	"github.com/wiverson/life-calendar/internal/dateutil"
	"github.com/wiverson/life-calendar/internal/export"
	"github.com/wiverson/life-calendar/internal/ics"
	"github.com/wiverson/life-calendar/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"percent": func(weeks, total int) template.CSS {
		if total == 0 {
			return "0%"
		}
		return template.CSS(fmt.Sprintf("%.4f%%", float64(weeks)/float64(total)*100))
	},
	"until": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	},
	"display": dateutil.FormatForDisplay,
	"storage": dateutil.FormatForStorage,
}).ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	HasBirthday bool
	Model       calendar.RenderModel
	Events      []calendar.Form
	DefaultDate string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	data := pageData{DefaultDate: dateutil.FormatForStorage(dateutil.FromTime(s.now()))}
	if rm, err := s.model.Render(); err == nil {
		data.HasBirthday = true
		data.Model = rm
		for _, e := range s.model.Events() {
			f, _ := s.model.Form(e.ID)
			data.Events = append(data.Events, f)
		}
	}
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		logger.Error("rendering page", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	now := s.now()

	s.mu.Lock()
	anchor, hasAnchor := s.model.Anchor()
	events := s.model.Events()
	rm, renderErr := s.model.Render()
	s.mu.Unlock()

	var (
		buf         bytes.Buffer
		contentType string
		err         error
	)
	switch format {
	case export.FormatPDF:
		if renderErr != nil {
			writeError(w, http.StatusConflict, renderErr.Error())
			return
		}
		var data []byte
		data, err = export.PDF(export.BuildSummary(rm, events, now))
		buf.Write(data)
		contentType = "application/pdf"
	case export.FormatICS:
		err = ics.Export(&buf, events, now)
		contentType = "text/calendar; charset=utf-8"
	case export.FormatJSON, export.FormatYAML:
		err = export.WriteBackup(&buf, export.NewBackup(anchor, hasAnchor, events, now), format)
		contentType = "application/json; charset=utf-8"
		if format == export.FormatYAML {
			contentType = "application/yaml; charset=utf-8"
		}
	default:
		writeError(w, http.StatusNotFound, "unknown export format")
		return
	}
	if err != nil {
		logger.Error("export failed", err, "format", format)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.DefaultFileName(format, now)))
	_, _ = w.Write(buf.Bytes())
}
