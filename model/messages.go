package model

import "catui/classify"

// AnalysisCompleteMsg settles the reply placeholder with the service's
// category list.
type AnalysisCompleteMsg struct {
	ID         string
	Categories []classify.Category
}

// AnalysisErrorMsg settles the reply placeholder with a user-visible
// failure description.
type AnalysisErrorMsg struct {
	ID  string
	Err string
}

type PingResultMsg struct {
	Err error
}
