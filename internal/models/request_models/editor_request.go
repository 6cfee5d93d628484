package request_models

type OpenEditorRequest struct {
	FunnelID string `json:"funnel_id,omitempty"`
}

type AddPageRequest struct {
	Type        string `json:"type"`
	InsertAfter *int   `json:"insert_after,omitempty"`
}

type ReorderPagesRequest struct {
	FromIndex int `json:"from_index"`
	ToIndex   int `json:"to_index"`
}

type SetActivePageRequest struct {
	Index int `json:"index"`
}

type AddComponentRequest struct {
	PageID      string `json:"page_id"`
	Type        string `json:"type"`
	InsertIndex *int   `json:"insert_index,omitempty"`
}

type UpdateComponentRequest struct {
	Data  map[string]interface{} `json:"data,omitempty"`
	Style map[string]interface{} `json:"style,omitempty"`
}

type MoveComponentRequest struct {
	Direction string `json:"direction"` // "up" or "down"
}
