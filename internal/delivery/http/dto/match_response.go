package dto

type MatchedUserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

type SuggestedMatchResponse struct {
	User                 MatchedUserResponse `json:"user"`
	YouCanTeachThem      []string            `json:"you_can_teach_them"`
	TheyCanTeachYou      []string            `json:"they_can_teach_you"`
	MatchScore           int                 `json:"match_score"`
	TotalSkillsExchanged int                 `json:"total_skills_exchanged"`
	MinSkillsExchanged   int                 `json:"min_skills_exchanged"`
	Tier                 string              `json:"tier"`
}
