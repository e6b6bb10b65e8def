package postgen

import (
	"context"
	"fmt"
	"strings"
)

// Temperatures used by each template operation.
const (
	CaptionTemperature     = 0.9
	HashtagsTemperature    = 0.5
	ImagePromptTemperature = 0.7
)

// CaptionPrompt builds the instruction for a post caption.
func CaptionPrompt(avatar Avatar, topic string) string {
	return fmt.Sprintf(`Você é %s, criador(a) de conteúdo no nicho de %s.
Seu estilo: %s.

Escreva uma legenda para um post no Instagram sobre: %s

Regras:
- Soe natural e humano, como uma pessoa real escrevendo
- Entre 2 e 4 frases
- Inclua uma chamada para ação sutil
- Use no máximo 2 emojis, apenas se fizer sentido
- NÃO use aspas ao redor da legenda
- NÃO inclua explicações, apenas a legenda`,
		avatar.Name, avatar.Niche, avatar.Style(), topic)
}

// HashtagsPrompt builds the instruction for a hashtag set. count <= 0 means DefaultHashtagCount.
func HashtagsPrompt(niche, topic string, count int) string {
	if count <= 0 {
		count = DefaultHashtagCount
	}
	return fmt.Sprintf(`Gere exatamente %d hashtags para um post no Instagram.
Nicho: %s
Tema: %s

Misture hashtags populares (mais de 500k posts) com hashtags de nicho (menos de 100k posts).

Formato: apenas as hashtags, separadas por espaço, cada uma começando com #.
Não inclua nenhum outro texto.`,
		count, niche, topic)
}

// ImagePromptPrompt builds the instruction for an image-generation prompt.
func ImagePromptPrompt(avatar Avatar, topic string) string {
	return fmt.Sprintf(`Crie um prompt em inglês para gerar uma imagem para um post no Instagram.
Criador(a): %s, nicho de %s.
Estilo: %s.
Tema do post: %s

O prompt deve:
- Estar em inglês
- Descrever uma fotografia profissional
- Ser adequado para redes sociais
- Não conter texto na imagem
- Ter no máximo 100 palavras

Responda apenas com o prompt, sem explicações.`,
		avatar.Name, avatar.Niche, avatar.Style(), topic)
}

// Engine turns avatars and topics into content through a TextGenerator.
type Engine struct {
	text      TextGenerator
	maxTokens int
}

// NewEngine creates an Engine that delegates to text.
func NewEngine(text TextGenerator) *Engine {
	return &Engine{
		text:      text,
		maxTokens: DefaultMaxTokens,
	}
}

// WithMaxTokens sets the output token limit used for every template operation.
func (e *Engine) WithMaxTokens(n int) *Engine {
	if n > 0 {
		e.maxTokens = n
	}
	return e
}

// Caption generates a caption for avatar about topic.
func (e *Engine) Caption(ctx context.Context, avatar Avatar, topic string) (string, error) {
	return e.generate(ctx, CaptionPrompt(avatar, topic), CaptionTemperature)
}

// Hashtags generates count hashtags for niche and topic, as returned by the model.
func (e *Engine) Hashtags(ctx context.Context, niche, topic string, count int) (string, error) {
	return e.generate(ctx, HashtagsPrompt(niche, topic, count), HashtagsTemperature)
}

// ImagePrompt generates an English image-generation prompt for avatar about topic.
func (e *Engine) ImagePrompt(ctx context.Context, avatar Avatar, topic string) (string, error) {
	return e.generate(ctx, ImagePromptPrompt(avatar, topic), ImagePromptTemperature)
}

func (e *Engine) generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	return e.text.GenerateText(ctx, prompt, &TextOptions{
		Temperature: temperature,
		MaxTokens:   e.maxTokens,
	})
}

// ParseHashtags splits model output into distinct #-prefixed tags, in order.
func ParseHashtags(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '\n' || r == '\t' || r == '\r' || r == ','
	})

	seen := make(map[string]bool, len(fields))
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if !strings.HasPrefix(f, "#") || len(f) < 2 {
			continue
		}
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, f)
	}
	return tags
}
