package response_models

type ComponentResponse struct {
	ID    string                 `json:"id"`
	Type  string                 `json:"type"`
	Data  map[string]interface{} `json:"data,omitempty"`
	Style map[string]interface{} `json:"style,omitempty"`
}

type PageResponse struct {
	ID         string              `json:"id"`
	Title      string              `json:"title"`
	Type       string              `json:"type"`
	Progress   int                 `json:"progress"`
	Components []ComponentResponse `json:"components"`
}

type FunnelResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsPublished bool   `json:"is_published"`
	PageCount   int    `json:"page_count"`
}

type FunnelDocument struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Pages             []PageResponse `json:"pages"`
	ActivePage        int            `json:"active_page"`
	SelectedComponent string         `json:"selected_component,omitempty"`
}

type EditorSessionResponse struct {
	SessionID string          `json:"session_id"`
	Document  *FunnelDocument `json:"document"`
}
