package ui

import (
	"catui/classify"
	"catui/model"
)

// Message type aliases - the canonical types live in the model package
type Message = model.Message
type Category = classify.Category

type analysisCompleteMsg = model.AnalysisCompleteMsg
type analysisErrorMsg = model.AnalysisErrorMsg
type pingResultMsg = model.PingResultMsg
