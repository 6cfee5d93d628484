package request_models

type CreateFunnelRequest struct {
	Name string `json:"name"`
}
