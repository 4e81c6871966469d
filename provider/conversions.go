package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"englishhero/model"
)

// Role tags used on the Gemini wire.
const (
	geminiRoleUser  = "user"
	geminiRoleModel = "model"
)

// GeminiRole maps a speaker to its generateContent role tag.
func GeminiRole(s model.Speaker) string {
	if s == model.SpeakerModel {
		return geminiRoleModel
	}
	return geminiRoleUser
}

// ChatRole maps a speaker to the user/assistant role used by OpenAI-style
// and Ollama chat APIs.
func ChatRole(s model.Speaker) string {
	if s == model.SpeakerModel {
		return "assistant"
	}
	return "user"
}

// convertToGeminiRequest builds the generateContent body. The persona is
// sent once as systemInstruction, never as a turn; turn order is preserved.
//
// Example:
//
//	req := model.Request{
//	    Persona: "You are a tutor",
//	    Turns:   []model.ChatTurn{model.UserTurn("Hi")},
//	}
//	body := convertToGeminiRequest(req)
//	// {"contents":[{"role":"user","parts":[{"text":"Hi"}]}],
//	//  "systemInstruction":{"parts":[{"text":"You are a tutor"}]}}
func convertToGeminiRequest(req model.Request) geminiRequest {
	out := geminiRequest{
		Contents: make([]geminiContent, len(req.Turns)),
	}
	for i, turn := range req.Turns {
		out.Contents[i] = geminiContent{
			Role:  GeminiRole(turn.Speaker),
			Parts: []geminiPart{{Text: turn.Text}},
		}
	}
	if req.Persona != "" {
		out.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.Persona}}}
	}
	return out
}

// ConvertToGenAIContents converts turns for the official Gemini SDK.
func ConvertToGenAIContents(turns []model.ChatTurn) []*genai.Content {
	result := make([]*genai.Content, len(turns))
	for i, turn := range turns {
		role := genai.Role(genai.RoleUser)
		if turn.Speaker == model.SpeakerModel {
			role = genai.RoleModel
		}
		result[i] = genai.NewContentFromText(turn.Text, role)
	}
	return result
}

// ConvertToOpenAIMessages converts a request to OpenAI chat messages, with
// the persona as a leading system message.
func ConvertToOpenAIMessages(req model.Request) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Turns)+1)
	if req.Persona != "" {
		result = append(result, openai.SystemMessage(req.Persona))
	}

	for _, turn := range req.Turns {
		switch turn.Speaker {
		case model.SpeakerModel:
			result = append(result, openai.AssistantMessage(turn.Text))
		default:
			result = append(result, openai.UserMessage(turn.Text))
		}
	}

	return result
}

// ConvertToAnthropicMessages converts a request to Anthropic format.
// Returns the message array and the system blocks carrying the persona.
func ConvertToAnthropicMessages(req model.Request) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var systemBlocks []anthropic.TextBlockParam
	if req.Persona != "" {
		// Anthropic uses a separate system parameter, not in messages array
		systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: req.Persona})
	}

	anthropicMsgs := make([]anthropic.MessageParam, 0, len(req.Turns))
	for _, turn := range req.Turns {
		switch turn.Speaker {
		case model.SpeakerModel:
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Text)),
			)
		default:
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Text)),
			)
		}
	}

	return anthropicMsgs, systemBlocks
}

// ConvertToOllamaMessages converts a request to Ollama api.Message values.
//
// Note: Timestamps are not preserved, as the Ollama API does not support them.
func ConvertToOllamaMessages(req model.Request) []api.Message {
	result := make([]api.Message, 0, len(req.Turns)+1)
	if req.Persona != "" {
		result = append(result, api.Message{Role: "system", Content: req.Persona})
	}
	for _, turn := range req.Turns {
		result = append(result, api.Message{
			Role:    ChatRole(turn.Speaker),
			Content: turn.Text,
		})
	}
	return result
}
