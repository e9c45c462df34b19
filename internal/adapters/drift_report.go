package adapters

import (
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"manifest-archive-diff/internal/types"
)

type DriftReportAdapter struct{}

func NewDriftReportAdapter() DriftReportAdapter {
	return DriftReportAdapter{}
}

func (a DriftReportAdapter) WriteDriftReport(path string, report types.DriftReport) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("drift report path is required")
	}
	data, err := yaml.Marshal(report)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to marshal drift report").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write drift report").
			WithCause(err)
	}
	return nil
}
