package response_models

type QuizOption struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	ImageURL      string `json:"image_url,omitempty"`
	StyleCategory string `json:"style_category,omitempty"`
	Points        int    `json:"points,omitempty"`
}

type QuizQuestion struct {
	ID          string       `json:"id"`
	Prompt      string       `json:"prompt"`
	MultiSelect int          `json:"multi_select"`
	Strategic   bool         `json:"strategic"`
	Options     []QuizOption `json:"options"`
}

type StyleResult struct {
	Category   string `json:"category"`
	Score      int    `json:"score"`
	Percentage int    `json:"percentage"`
}

type QuizResult struct {
	PrimaryStyle    StyleResult   `json:"primary_style"`
	SecondaryStyles []StyleResult `json:"secondary_styles"`
	TotalSelections int           `json:"total_selections"`
	DisplayName     string        `json:"display_name,omitempty"`
}

type QuizSessionResponse struct {
	SessionID   string        `json:"session_id"`
	CurrentStep int           `json:"current_step"`
	TotalSteps  int           `json:"total_steps"`
	IsComplete  bool          `json:"is_complete"`
	Question    *QuizQuestion `json:"question,omitempty"`
	Result      *QuizResult   `json:"result,omitempty"`
}
