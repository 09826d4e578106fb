package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"kensai/internal/infra"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const maxSugerencias = 3

// SugerenciaService propone descripciones de partida a partir de una
// palabra clave ("lona", "tarjetas"). Es mejor-esfuerzo: cualquier fallo
// del proveedor devuelve una lista vacía, nunca un error al usuario.
type SugerenciaService interface {
	Sugerir(ctx context.Context, keyword string) []string
}

type sugerenciaService struct {
	client *openai.Client
	cb     *infra.CircuitBreaker
}

// NewSugerenciaService devuelve el servicio; con apiKey vacía queda
// deshabilitado y siempre responde vacío.
func NewSugerenciaService(apiKey string, cb *infra.CircuitBreaker) SugerenciaService {
	s := &sugerenciaService{cb: cb}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

const promptSugerencias = `Eres asistente de una imprenta. Dada la palabra clave %q,
propone hasta 3 descripciones cortas y profesionales de partidas de cotización,
en español. Responde SOLO con JSON: {"descripciones": ["...", "..."]}`

func (s *sugerenciaService) Sugerir(ctx context.Context, keyword string) []string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || s.client == nil {
		return []string{}
	}

	var resp openai.ChatCompletionResponse
	err := s.cb.Execute(func() error {
		var err error
		resp, err = s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptSugerencias, keyword)},
			},
			MaxTokens:   300,
			Temperature: 0.7,
		})
		return err
	})
	if err != nil {
		log.Warn().Err(err).Str("keyword", keyword).Msg("sugerencias no disponibles")
		return []string{}
	}
	if len(resp.Choices) == 0 {
		return []string{}
	}

	var parsed struct {
		Descripciones []string `json:"descripciones"`
	}
	contenido := limpiarJSON(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(contenido), &parsed); err != nil {
		log.Warn().Err(err).Msg("respuesta de sugerencias no parseable")
		return []string{}
	}
	if len(parsed.Descripciones) > maxSugerencias {
		parsed.Descripciones = parsed.Descripciones[:maxSugerencias]
	}
	return parsed.Descripciones
}

// limpiarJSON quita las vallas de markdown que algunos modelos agregan.
func limpiarJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
