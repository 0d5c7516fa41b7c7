package reflection

type AnalyzeDTO struct {
	JournalText string `json:"journal_text"`
}

type SetAsGoalDTO struct {
	GrowthPath string `json:"growth_path"`
}
