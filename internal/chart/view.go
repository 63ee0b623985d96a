package chart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"TradingAssistant/internal/model"
)

// View displays an analysis result. Each Render replaces what the view
// showed before.
type View interface {
	Render(resp *model.AnalysisResponse) error
}

// JSONView writes the chart config as indented JSON, either to a file
// (replaced atomically) or to a writer.
type JSONView struct {
	Path string
	Out  io.Writer
}

func (v *JSONView) Render(resp *model.AnalysisResponse) error {
	data, err := json.MarshalIndent(BuildConfig(resp), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chart: %w", err)
	}
	if v.Path == "" {
		if v.Out == nil {
			return errors.New("json view: no path or writer")
		}
		_, err := v.Out.Write(append(data, '\n'))
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(v.Path), ".chart-*.json")
	if err != nil {
		return fmt.Errorf("write chart: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write chart: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write chart: %w", err)
	}
	return os.Rename(tmp.Name(), v.Path)
}

// MultiView renders to every view in turn, stopping at the first error.
type MultiView []View

func (m MultiView) Render(resp *model.AnalysisResponse) error {
	for _, v := range m {
		if err := v.Render(resp); err != nil {
			return err
		}
	}
	return nil
}
