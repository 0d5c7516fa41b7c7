package goal

type CreateGoalDTO struct {
	Text string `json:"text"`
}

type GoalActionResponse struct {
	Goal     *Goal `json:"goal"`
	Rewarded bool  `json:"rewarded"`
}
