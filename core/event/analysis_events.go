package event

import (
	"photo-analyzer-go/domain/analysis"
	"photo-analyzer-go/domain/provider"
)

// AnalysisStarted is published when an analysis request begins.
type AnalysisStarted struct {
	baseProviderEvent
	RequestID string
	ImagePath string
}

func NewAnalysisStarted(p provider.Provider, requestID, imagePath string) *AnalysisStarted {
	return &AnalysisStarted{
		baseProviderEvent: baseProviderEvent{provider: p},
		RequestID:         requestID,
		ImagePath:         imagePath,
	}
}

func (e *AnalysisStarted) EventName() string {
	return "AnalysisStarted"
}

// AnalysisCompleted is published when a report is available, either from the
// provider or from the local fallback. Text is the framed report.
type AnalysisCompleted struct {
	baseProviderEvent
	RequestID string
	Result    analysis.Result
	Text      string
	// RemoteError is the provider failure that caused a fallback, if any.
	RemoteError error
}

func NewAnalysisCompleted(p provider.Provider, requestID string, result analysis.Result, text string, remoteErr error) *AnalysisCompleted {
	return &AnalysisCompleted{
		baseProviderEvent: baseProviderEvent{provider: p},
		RequestID:         requestID,
		Result:            result,
		Text:              text,
		RemoteError:       remoteErr,
	}
}

func (e *AnalysisCompleted) EventName() string {
	return "AnalysisCompleted"
}

// UsedFallback returns true if the report came from the local analyzer.
func (e *AnalysisCompleted) UsedFallback() bool {
	return !e.Result.Source.IsRemote()
}

// AnalysisFailed is published when neither the provider nor the fallback
// produced a report. Text is the failure message to display.
type AnalysisFailed struct {
	baseProviderEvent
	RequestID string
	Error     error
	Text      string
}

func NewAnalysisFailed(p provider.Provider, requestID string, err error, text string) *AnalysisFailed {
	return &AnalysisFailed{
		baseProviderEvent: baseProviderEvent{provider: p},
		RequestID:         requestID,
		Error:             err,
		Text:              text,
	}
}

func (e *AnalysisFailed) EventName() string {
	return "AnalysisFailed"
}
