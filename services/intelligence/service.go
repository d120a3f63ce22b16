package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vmake/models"
	"vmake/utils"

	"go.uber.org/zap"
)

const partsListPromptTemplate = `You are an electronics expert. Generate a detailed parts list for this project.
Consider all necessary components including tools and accessories.
Respond with ONLY the JSON data, no markdown formatting or additional text.
Project: %s

The response should be a JSON object with this structure:
{
  "parts": [
    {
      "name": "part name",
      "quantity": number,
      "price": number,
      "description": "brief description of part's purpose",
      "optional": boolean
    }
  ],
  "totalCost": number,
  "additionalNotes": [
    "note about parts compatibility",
    "note about quality considerations",
    "note about alternatives"
  ]
}`

const analysisPromptTemplate = `You are an experienced electronics and robotics expert. Analyze this project and provide detailed, specific insights.
Focus on practical challenges, safety considerations, and specific recommendations.

Project Details:
Name: %s
Description: %s
Timeline: %s
Budget: %s

Consider these aspects in your analysis:
1. Technical feasibility given the timeline
2. Specific technical challenges that might arise
3. Required tools and workspace considerations
4. Safety precautions for working with electronics
5. Essential skills needed for successful completion
6. Common mistakes to avoid
7. Detailed cost breakdown considerations

Return JSON in this format (provide detailed, specific responses for each field):
{
  "feasibility": "HIGH|MEDIUM|LOW",
  "estimatedTime": "duration",
  "complexity": "BEGINNER|INTERMEDIATE|ADVANCED",
  "challenges": [{"type": "TECHNICAL", "description": "..."}],
  "recommendations": [{"category": "SAFETY", "description": "..."}],
  "safetyConsiderations": ["..."],
  "prerequisiteKnowledge": ["..."],
  "estimatedCost": {"min": number, "max": number, "currency": "USD"}
}

Important: Provide at least 3 specific items for challenges, recommendations, safetyConsiderations, and prerequisiteKnowledge.
Make all descriptions detailed and specific to this exact project.`

// DefaultAIService builds prompts, invokes the text generator, and parses the
// JSON-shaped replies. No retries happen at this layer.
type DefaultAIService struct {
	gen   TextGenerator
	cache *ResponseCache
}

func NewDefaultAIService(gen TextGenerator, cache *ResponseCache) *DefaultAIService {
	return &DefaultAIService{gen: gen, cache: cache}
}

// CleanJSONResponse strips markdown code fences and surrounding whitespace
// from a raw model reply.
func CleanJSONResponse(text string) string {
	replacer := strings.NewReplacer("```json", "", "```JSON", "", "```", "")
	return strings.TrimSpace(replacer.Replace(text))
}

// generate runs one model call, consulting the response cache when configured.
func (s *DefaultAIService) generate(ctx context.Context, prompt string) (string, error) {
	logger := utils.GetLogger()

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, prompt); ok {
			logger.Debug("AI response cache hit")
			return cached, nil
		}
	}

	raw, err := s.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", &GenerationError{Err: err}
	}

	cleaned := CleanJSONResponse(raw)
	if s.cache != nil {
		if err := s.cache.Set(ctx, prompt, cleaned); err != nil {
			logger.Warn("Failed to cache AI response", zap.Error(err))
		}
	}
	return cleaned, nil
}

func (s *DefaultAIService) GeneratePartsList(ctx context.Context, description string) (*models.PartsList, error) {
	prompt := fmt.Sprintf(partsListPromptTemplate, description)

	cleaned, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var list models.PartsList
	if err := json.Unmarshal([]byte(cleaned), &list); err != nil {
		return nil, &ParseError{Message: "invalid response format from AI: " + err.Error()}
	}
	if list.Parts == nil {
		return nil, &ParseError{Message: "AI response is missing the parts list"}
	}
	return &list, nil
}

func (s *DefaultAIService) AnalyzeProject(ctx context.Context, sub models.ProjectSubmission) (*models.ProjectAnalysis, error) {
	prompt := fmt.Sprintf(analysisPromptTemplate,
		orNotSpecified(sub.ProjectName),
		orNotSpecified(sub.Description),
		orNotSpecified(sub.Timeline),
		orNotSpecified(sub.Budget),
	)

	cleaned, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if err := validateListFields(cleaned); err != nil {
		return nil, err
	}

	var analysis models.ProjectAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, &ParseError{Message: "invalid analysis response format: " + err.Error()}
	}
	return &analysis, nil
}

// validateListFields checks that the list-shaped analysis fields, when
// present, really are JSON arrays.
func validateListFields(cleaned string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return &ParseError{Message: "invalid analysis response format: " + err.Error()}
	}

	for _, field := range []string{"challenges", "recommendations", "safetyConsiderations", "prerequisiteKnowledge"} {
		val, ok := raw[field]
		if !ok {
			continue
		}
		trimmed := strings.TrimSpace(string(val))
		if trimmed == "null" {
			continue
		}
		if !strings.HasPrefix(trimmed, "[") {
			return &FormatError{Field: field}
		}
	}
	return nil
}

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return "Not specified"
	}
	return v
}
