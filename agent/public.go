package agent

import (
	"context"

	"google.golang.org/genai"

	"stocklens"
	"stocklens/renderer"
)

// newFacilitator builds the expert that owns the conversation and routes
// questions to the specialists.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: ModelPro,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here to research stocks: recent news, fundamentals, and his own
			investment theses. Devise a plan of questions to the experts and come up with
			the best response to the user's request.

			The user will assume you know which theses he tracks; check the Curator first.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher returns the expert grounding answers in live search.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an equity researcher, very well aware of companies,
		markets, sectors and the latest financial news.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: ModelPro,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an equity researcher. You can search and find anything about
			companies, markets, sectors and financial news. Leverage Google Search to
			ground every assertion, and relate what you find to the user's request.
				`}}},
		},
	}
}

// NewCurator returns the expert in charge of the user's investment theses.
func NewCurator(store *stocklens.ThesisStore) *Expert {
	lib := []Function{thesesFunc(store), setStatusFunc(store)}
	return &Expert{
		Name: "Curator",
		Description: `This is the Curator. He keeps the user's investment theses:
		what the user believes about each stock, what would falsify it, on which
		horizon and with which confidence. Ask him what the user tracks.`,
		ModelName: ModelFlash,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are the curator of the user's investment theses.
			Use the available tools to read them, and answer questions about what the
			user believes, which claims are still active, and which were falsified.
			When the user concludes a thesis played out or broke, update its status,
			but only when he says so explicitly.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// thesesFunc exposes the thesis store as a read tool.
func thesesFunc(store *stocklens.ThesisStore) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Theses",
			Description: `Theses lists all investment theses the user tracks, with
			their ticker, claim, falsification condition, horizon, confidence and status.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"ticker": {
						Type:        genai.TypeString,
						Description: "Optional ticker symbol to filter by. All theses by default.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the user's theses.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			var theses []stocklens.Thesis
			var err error
			if ticker, ok := args["ticker"].(string); ok && ticker != "" {
				theses, err = store.ByTicker(ticker)
			} else {
				theses, err = store.Load()
			}
			if err != nil {
				return &genai.FunctionResponse{
					ID: id, Name: "Theses",
					Response: map[string]any{"error": err.Error()},
				}
			}
			return &genai.FunctionResponse{
				ID: id, Name: "Theses",
				Response: map[string]any{"output": renderer.ThesesMarkdown(theses)},
			}
		},
	}
}

// setStatusFunc exposes thesis status transitions as a curator tool.
func setStatusFunc(store *stocklens.ThesisStore) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "SetThesisStatus",
			Description: `SetThesisStatus updates the status of one thesis, by ID
			(a unique prefix is enough). Use it when the user says a thesis was
			verified, falsified or closed.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id": {
						Type:        genai.TypeString,
						Description: "The thesis ID, or a unique prefix of it.",
					},
					"status": {
						Type:        genai.TypeString,
						Description: "One of: Active, Verified, Falsified, Closed.",
					},
				},
				Required: []string{"id", "status"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "Confirmation or error.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			thesisID, _ := args["id"].(string)
			status, _ := args["status"].(string)
			if err := store.SetStatus(thesisID, status); err != nil {
				return &genai.FunctionResponse{
					ID: id, Name: "SetThesisStatus",
					Response: map[string]any{"error": err.Error()},
				}
			}
			return &genai.FunctionResponse{
				ID: id, Name: "SetThesisStatus",
				Response: map[string]any{"output": "status updated to " + status},
			}
		},
	}
}
