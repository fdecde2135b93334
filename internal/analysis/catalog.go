// Package analysis holds the analysis mode catalog and turns raw engine output into
// structured results.
package analysis

import "legalynx/internal/domain"

// Result keys a reasoning engine may populate.
const (
	KeyClauses          = "clauses"
	KeyRisks            = "risks"
	KeyComplianceIssues = "compliance_issues"
	KeySummary          = "summary"
	KeyRiskScore        = "risk_score"
	KeyRecommendations  = "recommendations"
	KeyRawResult        = "raw_result"
)

// Shape lists the StructuredResult keys an instruction asks the engine to populate.
type Shape []string

// Template pairs a mode's instruction text with its expected result shape.
type Template struct {
	Mode        domain.AnalysisMode
	Instruction string
	Shape       Shape
}

// DefaultMode is used for empty or unrecognized modes.
const DefaultMode = domain.ModeCompliance

var modeOrder = []domain.AnalysisMode{
	domain.ModeFull,
	domain.ModeRisks,
	domain.ModeClauses,
	domain.ModeCompliance,
}

var catalog = map[domain.AnalysisMode]Template{
	domain.ModeFull: {
		Mode:        domain.ModeFull,
		Instruction: fullInstruction,
		Shape:       Shape{KeyClauses, KeyRisks, KeyComplianceIssues, KeySummary, KeyRiskScore, KeyRecommendations},
	},
	domain.ModeRisks: {
		Mode:        domain.ModeRisks,
		Instruction: risksInstruction,
		Shape:       Shape{KeyRisks, KeyRiskScore},
	},
	domain.ModeClauses: {
		Mode:        domain.ModeClauses,
		Instruction: clausesInstruction,
		Shape:       Shape{KeyClauses},
	},
	domain.ModeCompliance: {
		Mode:        domain.ModeCompliance,
		Instruction: complianceInstruction,
		Shape:       Shape{KeyComplianceIssues},
	},
}

// TemplateFor returns the template for mode. Unknown and empty modes get the compliance template.
func TemplateFor(mode domain.AnalysisMode) Template {
	if t, ok := catalog[mode]; ok {
		return t
	}
	return catalog[DefaultMode]
}

// Resolve returns the mode whose template TemplateFor would use.
func Resolve(mode domain.AnalysisMode) domain.AnalysisMode {
	return TemplateFor(mode).Mode
}

// IsKnown reports whether mode has its own catalog entry.
func IsKnown(mode domain.AnalysisMode) bool {
	_, ok := catalog[mode]
	return ok
}

// Modes lists the catalog modes in a stable order.
func Modes() []domain.AnalysisMode {
	out := make([]domain.AnalysisMode, len(modeOrder))
	copy(out, modeOrder)
	return out
}

const fullInstruction = `You are an expert legal AI assistant specializing in contract analysis. Analyze the following contract and provide a comprehensive analysis.

Contract Text:
{contract}

Provide your analysis in the following JSON format:
{
    "clauses": [
        "List of key clauses identified in the contract"
    ],
    "risks": [
        {
            "risk": "Description of the risk",
            "severity": "High/Medium/Low",
            "location": "Where in the contract this risk appears",
            "recommendation": "How to mitigate this risk"
        }
    ],
    "compliance_issues": [
        {
            "issue": "Description of compliance issue",
            "regulation": "Relevant regulation or standard",
            "severity": "High/Medium/Low",
            "recommendation": "How to address this issue"
        }
    ],
    "summary": "Brief summary of the contract's main terms and purpose",
    "risk_score": 75,
    "recommendations": [
        "List of general recommendations for improving the contract"
    ]
}

Be thorough and precise in your analysis. Focus on identifying potential legal risks, compliance issues, and areas for improvement.`

const risksInstruction = `You are an expert legal AI assistant. Focus specifically on identifying risks in this contract.

Contract Text:
{contract}

Provide your risk analysis in JSON format:
{
    "risks": [
        {
            "risk": "Description of the risk",
            "severity": "High/Medium/Low",
            "location": "Where in the contract this risk appears",
            "recommendation": "How to mitigate this risk"
        }
    ],
    "risk_score": 75
}`

const clausesInstruction = `You are an expert legal AI assistant. Extract and categorize all important clauses from this contract.

Contract Text:
{contract}

Provide your clause analysis in JSON format:
{
    "clauses": [
        "List of key clauses with their purposes and implications"
    ]
}`

const complianceInstruction = `You are an expert legal AI assistant. Focus on compliance issues in this contract.

Contract Text:
{contract}

Provide your compliance analysis in JSON format:
{
    "compliance_issues": [
        {
            "issue": "Description of compliance issue",
            "regulation": "Relevant regulation or standard",
            "severity": "High/Medium/Low",
            "recommendation": "How to address this issue"
        }
    ]
}`
