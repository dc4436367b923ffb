package llm

import (
	"fmt"
	"strings"
)

// IntentResult is the structured output of the intent analysis prompt
type IntentResult struct {
	Intencao   string  `json:"intencao"`
	Confianca  float64 `json:"confianca"`
	Resumo     string  `json:"resumo"`
	Urgencia   string  `json:"urgencia"`
	Sentimento string  `json:"sentimento"`
}

// SuggestionsResult carries the three suggested replies
type SuggestionsResult struct {
	Sugestoes []string `json:"sugestoes"`
}

// ForecastResult is the structured funnel forecast for a lead
type ForecastResult struct {
	Probabilidade float64 `json:"probabilidade"`
	Justificativa string  `json:"justificativa"`
	ProximoPasso  string  `json:"proximo_passo"`
}

const intentSystemPrompt = `Você é um assistente de uma clínica de saúde que analisa conversas entre pacientes e atendentes.
Analise a conversa e identifique a intenção principal do paciente.

Responda APENAS com um objeto JSON neste formato:
{
  "intencao": "agendamento|orcamento|duvida|reclamacao|cancelamento|outro",
  "confianca": 0.0 a 1.0,
  "resumo": "resumo curto da necessidade do paciente",
  "urgencia": "baixa|media|alta",
  "sentimento": "positivo|neutro|negativo"
}`

const suggestionsSystemPrompt = `Você é um assistente de uma clínica de saúde que ajuda atendentes a responder pacientes.
Com base na conversa, gere exatamente 3 sugestões de resposta para o atendente enviar.

As sugestões devem:
- Ser educadas, empáticas e profissionais
- Estar em português brasileiro
- Ser curtas (no máximo 2 frases cada)
- Nunca inventar preços, horários ou informações médicas

Responda APENAS com um objeto JSON neste formato:
{"sugestoes": ["sugestão 1", "sugestão 2", "sugestão 3"]}`

const forecastSystemPrompt = `Você é um assistente comercial de uma clínica de saúde que avalia oportunidades de venda.
Com base no histórico da negociação, estime a probabilidade de fechamento.

Responda APENAS com um objeto JSON neste formato:
{
  "probabilidade": 0.0 a 1.0,
  "justificativa": "motivo principal da estimativa",
  "proximo_passo": "ação recomendada para o atendente"
}`

// BuildIntentPrompt formats a conversation transcript for intent analysis
func BuildIntentPrompt(transcript []TranscriptEntry) (string, string) {
	return intentSystemPrompt, formatTranscript(transcript)
}

// BuildSuggestionsPrompt formats a conversation transcript for reply suggestions
func BuildSuggestionsPrompt(transcript []TranscriptEntry) (string, string) {
	return suggestionsSystemPrompt, formatTranscript(transcript)
}

// BuildForecastPrompt formats lead context plus transcript for the funnel forecast
func BuildForecastPrompt(service string, proposedValue float64, transcript []TranscriptEntry) (string, string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Serviço em negociação: %s\n", service))
	if proposedValue > 0 {
		sb.WriteString(fmt.Sprintf("Valor proposto: R$ %.2f\n", proposedValue))
	}
	sb.WriteString("\nHistórico da conversa:\n")
	sb.WriteString(formatTranscript(transcript))
	return forecastSystemPrompt, sb.String()
}

// TranscriptEntry is a single message in the conversation history sent to the model
type TranscriptEntry struct {
	Author string
	Body   string
}

func formatTranscript(entries []TranscriptEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		label := "Paciente"
		if e.Author == "atendente" {
			label = "Atendente"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", label, e.Body))
	}
	return sb.String()
}
