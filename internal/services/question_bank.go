package services

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"quizfunnel/internal/models/response_models"
)

// The eight style categories every ranking reports, scored or not.
var StyleCategories = []string{
	"Natural",
	"Clássico",
	"Contemporâneo",
	"Elegante",
	"Romântico",
	"Sexy",
	"Dramático",
	"Criativo",
}

func IsStyleCategory(name string) bool {
	for _, c := range StyleCategories {
		if c == name {
			return true
		}
	}
	return false
}

// QuestionBank holds the static quiz configuration. Scored questions carry
// one option per style category; strategic questions qualify the lead and
// never contribute points.
type QuestionBank struct {
	Questions []response_models.QuizQuestion
}

func (b *QuestionBank) Question(id string) *response_models.QuizQuestion {
	for i := range b.Questions {
		if b.Questions[i].ID == id {
			return &b.Questions[i]
		}
	}
	return nil
}

func (b *QuestionBank) Option(questionID, optionID string) *response_models.QuizOption {
	q := b.Question(questionID)
	if q == nil {
		return nil
	}
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}

func (b *QuestionBank) Len() int {
	return len(b.Questions)
}

// ProvideQuestionBank loads the bank from QUIZ_QUESTIONS_PATH when set,
// falling back to the compiled-in default.
func ProvideQuestionBank() *QuestionBank {
	path := os.Getenv("QUIZ_QUESTIONS_PATH")
	if path == "" {
		return DefaultQuestionBank()
	}

	bank, err := LoadQuestionBank(path)
	if err != nil {
		log.Printf("Error loading question bank from %s: %v, using default", path, err)
		return DefaultQuestionBank()
	}
	return bank
}

func LoadQuestionBank(path string) (*QuestionBank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var questions []response_models.QuizQuestion
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank at %s is empty", path)
	}

	return &QuestionBank{Questions: questions}, nil
}

func styledOptions(questionID string, texts [8]string) []response_models.QuizOption {
	options := make([]response_models.QuizOption, 0, len(StyleCategories))
	for i, category := range StyleCategories {
		options = append(options, response_models.QuizOption{
			ID:            fmt.Sprintf("%s-o%d", questionID, i+1),
			Text:          texts[i],
			StyleCategory: category,
			Points:        1,
		})
	}
	return options
}

func DefaultQuestionBank() *QuestionBank {
	questions := []response_models.QuizQuestion{
		{
			ID:          "q1",
			Prompt:      "Qual o seu tipo de roupa favorita?",
			MultiSelect: 3,
			Options: styledOptions("q1", [8]string{
				"Conforto, leveza e praticidade no vestir",
				"Discrição, caimento clássico e sobriedade",
				"Praticidade com um toque de estilo atual",
				"Elegância refinada, moderna e sem exageros",
				"Delicadeza em tecidos suaves e fluidos",
				"Sensualidade com destaque para o corpo",
				"Impacto visual com peças estruturadas",
				"Mix criativo com formas ousadas",
			}),
		},
		{
			ID:          "q2",
			Prompt:      "Resuma a sua personalidade:",
			MultiSelect: 3,
			Options: styledOptions("q2", [8]string{
				"Informal, espontânea, alegre, essencialista",
				"Conservadora, séria, organizada",
				"Informada, ativa, prática",
				"Exigente, sofisticada, seletiva",
				"Feminina, meiga, delicada, sensível",
				"Glamorosa, vaidosa, sensual",
				"Cosmopolita, moderna e audaciosa",
				"Exótica, aventureira, livre",
			}),
		},
		{
			ID:          "q3",
			Prompt:      "Qual visual você mais se identifica?",
			MultiSelect: 3,
			Options: styledOptions("q3", [8]string{
				"Visual leve, despojado e natural",
				"Visual clássico e tradicional",
				"Visual casual com toque atual",
				"Visual refinado e imponente",
				"Visual romântico com detalhes delicados",
				"Visual sensual com transparência",
				"Visual marcante e urbano",
				"Visual criativo, colorido e ousado",
			}),
		},
		{
			ID:          "q4",
			Prompt:      "Quais detalhes você gosta?",
			MultiSelect: 3,
			Options: styledOptions("q4", [8]string{
				"Poucos detalhes, básico e prático",
				"Bem discretos e sutis, clean e clássico",
				"Básico, mas com um toque de estilo",
				"Detalhes refinados, chiques e que deem status",
				"Detalhes delicados, laços e babados",
				"Roupas que valorizem meu corpo: couro e zíperes",
				"Detalhes marcantes, firmeza e peso",
				"Detalhes diferentes do convencional",
			}),
		},
		{
			ID:          "q5",
			Prompt:      "Quais estampas você mais se identifica?",
			MultiSelect: 3,
			Options: styledOptions("q5", [8]string{
				"Estampas naturais, florais pequenos",
				"Estampas clássicas, poá e listras finas",
				"Estampas geométricas atuais",
				"Estampas discretas em tons sóbrios",
				"Estampas florais românticas",
				"Estampa animal print",
				"Estampas grandes e de impacto",
				"Estampas étnicas e artísticas",
			}),
		},
		{
			ID:          "q6",
			Prompt:      "Qual sapato você compraria hoje?",
			MultiSelect: 3,
			Options: styledOptions("q6", [8]string{
				"Tênis ou rasteirinha confortável",
				"Scarpin fechado em cor neutra",
				"Sapatilha moderna do momento",
				"Salto fino clássico e elegante",
				"Sapato delicado com laço",
				"Salto alto com tiras finas",
				"Bota pesada de bico fino",
				"Sapato colorido fora do padrão",
			}),
		},
		{
			ID:          "s1",
			Prompt:      "Como você se vê hoje em relação ao seu estilo?",
			MultiSelect: 1,
			Strategic:   true,
			Options: []response_models.QuizOption{
				{ID: "s1-o1", Text: "Me sinto desconectada da imagem que projeto"},
				{ID: "s1-o2", Text: "Tenho dúvidas sobre o que me valoriza"},
				{ID: "s1-o3", Text: "Às vezes acerto, às vezes erro"},
				{ID: "s1-o4", Text: "Me sinto segura, mas quero evoluir"},
			},
		},
		{
			ID:          "s2",
			Prompt:      "Quanto você investiria para dominar o seu estilo?",
			MultiSelect: 1,
			Strategic:   true,
			Options: []response_models.QuizOption{
				{ID: "s2-o1", Text: "Menos de R$ 100"},
				{ID: "s2-o2", Text: "Entre R$ 100 e R$ 300"},
				{ID: "s2-o3", Text: "Entre R$ 300 e R$ 500"},
				{ID: "s2-o4", Text: "Acima de R$ 500"},
			},
		},
	}

	return &QuestionBank{Questions: questions}
}
