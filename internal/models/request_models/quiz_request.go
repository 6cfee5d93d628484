package request_models

type StartQuizRequest struct {
	DisplayName string `json:"display_name"`
}

type AnswerRequest struct {
	QuestionID string   `json:"question_id"`
	OptionIDs  []string `json:"option_ids"`
}

type ComputeResultRequest struct {
	ClickOrder []string `json:"click_order,omitempty"`
}
