package app

import (
	"tslabel/app/ingest"
	"tslabel/app/session"
)

// SessionView is everything the frontend renders for the current session.
type SessionView struct {
	Title           string              `json:"title"`
	Labels          []string            `json:"labels"`
	LabelText       string              `json:"labelText"`
	Cursor          int                 `json:"cursor"`   // 0-based
	Position        int                 `json:"position"` // 1-based, 0 when empty
	Total           int                 `json:"total"`
	Progress        session.Progress    `json:"progress"`
	Current         *session.Sample     `json:"current"`
	Files           []session.FileGroup `json:"files"`
	Chart           session.ChartData   `json:"chart"`
	TimeScale       float64             `json:"timeScale"`
	Armed           string              `json:"armed"`
	KeyboardEnabled bool                `json:"keyboardEnabled"`
}

// LoadResult reports one batch of added files.
type LoadResult struct {
	Reports []ingest.Report `json:"reports"`
	Errors  []string        `json:"errors"`
	Added   int             `json:"added"`
	View    SessionView     `json:"view"`
}

// JumpResult carries the position to show in the jump box after a jump.
type JumpResult struct {
	Display string      `json:"display"`
	Moved   bool        `json:"moved"`
	View    SessionView `json:"view"`
}

// ExportResult lists the files written by an export.
type ExportResult struct {
	Files []string `json:"files"`
}

// view snapshots the session for the frontend. Callers hold a.mu.
func (a *App) view() SessionView {
	s := a.session
	v := SessionView{
		Title:           s.Title,
		Labels:          append([]string{}, s.Labels...),
		LabelText:       s.LabelText(),
		Cursor:          s.Cursor,
		Total:           s.Len(),
		Progress:        s.Progress(),
		Files:           s.FileGroups(),
		Chart:           s.ChartData(),
		TimeScale:       s.TimeScale,
		Armed:           a.keys.Armed(),
		KeyboardEnabled: a.keys.Enabled,
	}
	if cur := s.Current(); cur != nil {
		v.Current = cur.Clone()
		v.Position = s.Cursor + 1
	}
	return v
}
