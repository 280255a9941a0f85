package templates

import "encoding/json"

// Содержимое блоков хранится в формате editor-js документа:
// {"blocks": [{"type": "...", "data": {...}}]}.

// basicTemplate — простой универсальный шаблон.
var basicTemplate = Template{
	Title:       "Basic Proposal",
	Description: "A simple, clean proposal template for general use",
	Sections: []SectionDef{
		{ID: "cover", Name: "Cover Page", Icon: "mdi-file-document-outline"},
		{ID: "overview", Name: "Project Overview", Icon: "mdi-information-outline"},
		{ID: "scope", Name: "Scope of Work", Icon: "mdi-clipboard-list-outline"},
		{ID: "pricing", Name: "Pricing", Icon: "mdi-currency-usd"},
		{ID: "terms", Name: "Terms & Conditions", Icon: "mdi-file-certificate-outline"},
	},
	Content: map[string][]Block{
		"cover": {
			{X: 50, Y: 50, Width: 500, Height: 100, Content: json.RawMessage(`{"blocks":[{"type":"header","data":{"text":"Project Proposal","level":1}}]}`)},
			{X: 50, Y: 200, Width: 500, Height: 100, Content: json.RawMessage(`{"blocks":[{"type":"paragraph","data":{"text":"Prepared for: [Client Name]"}},{"type":"paragraph","data":{"text":"Prepared by: [Your Company]"}},{"type":"paragraph","data":{"text":"Date: [Current Date]"}}]}`)},
		},
		"overview": {
			{X: 50, Y: 50, Width: 700, Height: 150, Content: json.RawMessage(`{"blocks":[{"type":"header","data":{"text":"Project Overview","level":2}},{"type":"paragraph","data":{"text":"This section provides a high-level overview of the project, including the problem statement and proposed solution."}}]}`)},
		},
		"scope": {
			{X: 50, Y: 50, Width: 700, Height: 300, Content: json.RawMessage(`{"blocks":[{"type":"header","data":{"text":"Scope of Work","level":2}},{"type":"paragraph","data":{"text":"This section outlines the specific deliverables and services that will be provided as part of this project."}},{"type":"list","data":{"style":"unordered","items":["Deliverable 1","Deliverable 2","Deliverable 3"]}}]}`)},
		},
		"pricing": {
			{X: 50, Y: 50, Width: 700, Height: 300, Content: json.RawMessage(`{"blocks":[{"type":"header","data":{"text":"Pricing","level":2}},{"type":"paragraph","data":{"text":"This section outlines the cost structure for the project."}},{"type":"table","data":{"content":[["Item","Description","Cost"],["Item 1","Description of item 1","$X,XXX"],["Item 2","Description of item 2","$X,XXX"],["Total","","$XX,XXX"]]}}]}`)},
		},
		"terms": {
			{X: 50, Y: 50, Width: 700, Height: 400, Content: json.RawMessage(`{"blocks":[{"type":"header","data":{"text":"Terms & Conditions","level":2}},{"type":"paragraph","data":{"text":"This section outlines the terms and conditions of the proposal."}},{"type":"paragraph","data":{"text":"1. Payment Terms: [Your payment terms]"}},{"type":"paragraph","data":{"text":"2. Timeline: [Your timeline]"}},{"type":"paragraph","data":{"text":"3. Revisions: [Your revision policy]"}},{"type":"paragraph","data":{"text":"4. Cancellation: [Your cancellation policy]"}}]}`)},
		},
	},
}

// consultingTemplate — расширенный шаблон для консалтинговых услуг.
var consultingTemplate = Template{
	Title:       "Consulting Proposal",
	Description: "A comprehensive template for consulting services",
	Sections: []SectionDef{
		{ID: "cover", Name: "Cover Page", Icon: "mdi-file-document-outline"},
		{ID: "executive", Name: "Executive Summary", Icon: "mdi-text-box-outline"},
		{ID: "background", Name: "Background", Icon: "mdi-information-outline"},
		{ID: "approach", Name: "Approach", Icon: "mdi-lightbulb-outline"},
		{ID: "deliverables", Name: "Deliverables", Icon: "mdi-package-variant-closed"},
		{ID: "timeline", Name: "Timeline", Icon: "mdi-calendar-clock"},
		{ID: "team", Name: "Team", Icon: "mdi-account-group"},
		{ID: "pricing", Name: "Pricing", Icon: "mdi-currency-usd"},
		{ID: "terms", Name: "Terms & Conditions", Icon: "mdi-file-certificate-outline"},
	},
	Content: map[string][]Block{
		"cover": {
			{X: 50, Y: 50, Width: 500, Height: 100, Content: json.RawMessage(`{"blocks":[{"type":"header","data":{"text":"Consulting Proposal","level":1}}]}`)},
			{X: 50, Y: 200, Width: 500, Height: 100, Content: json.RawMessage(`{"blocks":[{"type":"paragraph","data":{"text":"Prepared for: [Client Name]"}},{"type":"paragraph","data":{"text":"Prepared by: [Your Consulting Firm]"}},{"type":"paragraph","data":{"text":"Date: [Current Date]"}}]}`)},
		},
	},
}

// webDevelopmentTemplate — шаблон для веб-разработки.
var webDevelopmentTemplate = Template{
	Title:       "Web Development Proposal",
	Description: "A template for web development projects",
	Sections: []SectionDef{
		{ID: "cover", Name: "Cover Page", Icon: "mdi-file-document-outline"},
		{ID: "overview", Name: "Project Overview", Icon: "mdi-information-outline"},
		{ID: "requirements", Name: "Requirements", Icon: "mdi-clipboard-list-outline"},
		{ID: "solution", Name: "Proposed Solution", Icon: "mdi-lightbulb-outline"},
		{ID: "technologies", Name: "Technologies", Icon: "mdi-code-tags"},
		{ID: "timeline", Name: "Timeline", Icon: "mdi-calendar-clock"},
		{ID: "pricing", Name: "Pricing", Icon: "mdi-currency-usd"},
		{ID: "maintenance", Name: "Maintenance & Support", Icon: "mdi-wrench"},
		{ID: "terms", Name: "Terms & Conditions", Icon: "mdi-file-certificate-outline"},
	},
	Content: map[string][]Block{},
}

// catalog — все доступные шаблоны.
var catalog = []Template{
	basicTemplate,
	consultingTemplate,
	webDevelopmentTemplate,
}
