package services

import (
	"github.com/google/uuid"

	"quizfunnel/internal/models/db_models"
	"quizfunnel/pkg/utils"
)

// Fixed library of component templates. Each template supplies the default
// data/style payloads a freshly inserted component starts with.
var componentTemplates = map[string]struct {
	Data  db_models.JSONMap
	Style db_models.JSONMap
}{
	"title": {
		Data:  db_models.JSONMap{"text": "Título"},
		Style: db_models.JSONMap{"fontSize": "2rem", "fontWeight": "bold", "textAlign": "center"},
	},
	"subtitle": {
		Data:  db_models.JSONMap{"text": "Subtítulo"},
		Style: db_models.JSONMap{"fontSize": "1.25rem", "textAlign": "center"},
	},
	"text": {
		Data:  db_models.JSONMap{"text": "Escreva aqui o seu texto."},
		Style: db_models.JSONMap{"fontSize": "1rem", "textAlign": "left"},
	},
	"image": {
		Data:  db_models.JSONMap{"src": "", "alt": ""},
		Style: db_models.JSONMap{"width": "100%", "borderRadius": "8px"},
	},
	"button": {
		Data:  db_models.JSONMap{"text": "Continuar", "action": "next"},
		Style: db_models.JSONMap{"backgroundColor": "#b89b7a", "color": "#ffffff", "borderRadius": "8px"},
	},
	"input": {
		Data:  db_models.JSONMap{"label": "Seu nome", "placeholder": "Digite aqui", "required": true},
		Style: db_models.JSONMap{"width": "100%"},
	},
	"options": {
		Data:  db_models.JSONMap{"questionId": "", "columns": 2, "showImages": true},
		Style: db_models.JSONMap{"gap": "1rem"},
	},
	"spacer": {
		Data:  db_models.JSONMap{"height": 32},
		Style: db_models.JSONMap{},
	},
	"logo": {
		Data:  db_models.JSONMap{"src": "", "alt": "Logo"},
		Style: db_models.JSONMap{"width": "120px", "margin": "0 auto"},
	},
	"video": {
		Data:  db_models.JSONMap{"url": "", "autoplay": false},
		Style: db_models.JSONMap{"width": "100%", "aspectRatio": "16/9"},
	},
	"testimonial": {
		Data:  db_models.JSONMap{"quote": "", "author": "", "avatar": ""},
		Style: db_models.JSONMap{"backgroundColor": "#faf8f5", "borderRadius": "8px"},
	},
	"price": {
		Data:  db_models.JSONMap{"amount": 0, "currency": "BRL", "installments": 0, "anchorAmount": 0},
		Style: db_models.JSONMap{"fontSize": "1.5rem", "fontWeight": "bold", "textAlign": "center"},
	},
}

func IsValidComponentType(t string) bool {
	_, ok := componentTemplates[t]
	return ok
}

func newComponentFromTemplate(componentType string, id uuid.UUID) (*db_models.Component, error) {
	template, ok := componentTemplates[componentType]
	if !ok {
		return nil, utils.ErrUnknownComponentType
	}

	return &db_models.Component{
		BaseModel: db_models.BaseModel{ID: id},
		Type:      componentType,
		Data:      template.Data.Clone(),
		Style:     template.Style.Clone(),
	}, nil
}
