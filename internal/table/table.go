// Package table holds the built-in redaction table for the workshop
// screenshots. Coordinates were measured on ~3000x1700 captures.
package table

import "github.com/redactyl/shotredact/internal/types"

var (
	userN8N = types.Redaction{
		Box:         types.Box{X1: 30, Y1: 1560, X2: 230, Y2: 1610},
		Label:       "Username",
		Placeholder: "[USER]",
	}
	userOpenAI = types.Redaction{
		Box:         types.Box{X1: 2200, Y1: 560, X2: 2340, Y2: 600},
		Label:       "Username",
		Placeholder: "[USER]",
	}
)

// Default returns a fresh copy of the built-in table.
func Default() types.Table {
	return types.Table{
		// OpenAI "Save your key" modal (3014x1698)
		{File: "07_openai_save_api_key_modal.png", Redactions: []types.Redaction{
			{Box: types.Box{X1: 1080, Y1: 820, X2: 1720, Y2: 880}, Label: "OpenAI API Key", Placeholder: "sk-proj-YOUR_API_KEY_HERE"},
			{Box: userOpenAI.Box, Label: "Username (Bizee Bee)", Placeholder: userOpenAI.Placeholder},
		}},
		// OpenAI API keys list (3022x1710)
		{File: "08_openai_api_keys_list.png", Redactions: []types.Redaction{
			{Box: types.Box{X1: 1240, Y1: 560, X2: 1410, Y2: 600}, Label: "Partial API Key", Placeholder: "sk-...****"},
			userOpenAI,
		}},
		// n8n screens, username bottom left (3024x1650)
		{File: "10_n8n_overview_workflows_list.png", Redactions: []types.Redaction{userN8N}},
		{File: "12_n8n_google_drive_oauth2_connection_form.png", Redactions: []types.Redaction{userN8N}},
		{File: "14_n8n_openai_credential_connection_form.png", Redactions: []types.Redaction{userN8N}},
		{File: "16_n8n_header_auth_credential_connection_form.png", Redactions: []types.Redaction{userN8N}},
		// Google AI Studio API keys (3024x1630)
		{File: "20_google_ai_studio_api_keys_list.png", Redactions: []types.Redaction{
			{Box: types.Box{X1: 600, Y1: 460, X2: 870, Y2: 500}, Label: "Gemini API Key", Placeholder: "...****"},
			{Box: types.Box{X1: 1080, Y1: 500, X2: 1410, Y2: 540}, Label: "Project ID", Placeholder: "gen-lang-client-XXXXXXXXXX"},
		}},
		// GCP console welcome (2916x1566)
		{File: "21_n8n_screen_01.png", Redactions: []types.Redaction{
			{Box: types.Box{X1: 660, Y1: 595, X2: 870, Y2: 635}, Label: "Project Number", Placeholder: "XXXXXXXXXXXX"},
			{Box: types.Box{X1: 1115, Y1: 595, X2: 1480, Y2: 635}, Label: "Project ID", Placeholder: "gen-lang-client-XXXXXXXXXX"},
		}},
		// GCP OAuth client created modal (2992x1624)
		{File: "27_n8n_screen_07.png", Redactions: []types.Redaction{
			{Box: types.Box{X1: 1430, Y1: 540, X2: 1930, Y2: 660}, Label: "OAuth Client ID", Placeholder: "YOUR_CLIENT_ID_HERE"},
			{Box: types.Box{X1: 1430, Y1: 980, X2: 1930, Y2: 1060}, Label: "OAuth Client Secret", Placeholder: "YOUR_CLIENT_SECRET_HERE"},
		}},
		// GCP client ID details (3010x1636)
		{File: "30_n8n_screen_10.png", Redactions: []types.Redaction{
			{Box: types.Box{X1: 560, Y1: 100, X2: 1720, Y2: 145}, Label: "Client ID (breadcrumb)", Placeholder: "[CLIENT_ID_REDACTED]"},
			{Box: types.Box{X1: 2190, Y1: 350, X2: 2880, Y2: 460}, Label: "Client ID (panel)", Placeholder: "YOUR_CLIENT_ID_HERE"},
			{Box: types.Box{X1: 2190, Y1: 1380, X2: 2350, Y2: 1420}, Label: "Client Secret", Placeholder: "****"},
		}},
		// Google AI Studio create new API key
		{File: "31_google_ai_studio_create_new_api_key.png", Redactions: []types.Redaction{
			{Box: types.Box{X1: 570, Y1: 460, X2: 870, Y2: 500}, Label: "Background API Key", Placeholder: "...****"},
			{Box: types.Box{X1: 1060, Y1: 500, X2: 1410, Y2: 540}, Label: "Background Project ID", Placeholder: "gen-lang-client-XXXXXXXXXX"},
		}},
	}
}

// Files returns the file names of t in order.
func Files(t types.Table) []string {
	out := make([]string, 0, len(t))
	for _, e := range t {
		out = append(out, e.File)
	}
	return out
}
