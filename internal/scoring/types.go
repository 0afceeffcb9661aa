package scoring

// Metrics are rubric scores in [0, 1].
type Metrics struct {
	ThesisClarity          float64 `json:"thesisClarity"`
	ArgumentDepth          float64 `json:"argumentDepth"`
	StructureBalance       float64 `json:"structureBalance"`
	EvidenceDistribution   float64 `json:"evidenceDistribution"`
	AnalysisToSummaryRatio float64 `json:"analysisToSummaryRatio"`
	SentenceVariety        float64 `json:"sentenceVariety"`
	LogicalProgression     float64 `json:"logicalProgression"`
}

// Overall is the unweighted mean of the rubric scores.
func (m Metrics) Overall() float64 {
	sum := m.ThesisClarity + m.ArgumentDepth + m.StructureBalance + m.EvidenceDistribution +
		m.AnalysisToSummaryRatio + m.SentenceVariety + m.LogicalProgression
	return sum / 7
}

// Weakest returns the JSON name of the lowest rubric score. Ties go to the
// metric listed first.
func (m Metrics) Weakest() string {
	named := []struct {
		name string
		v    float64
	}{
		{"thesisClarity", m.ThesisClarity},
		{"argumentDepth", m.ArgumentDepth},
		{"structureBalance", m.StructureBalance},
		{"evidenceDistribution", m.EvidenceDistribution},
		{"analysisToSummaryRatio", m.AnalysisToSummaryRatio},
		{"sentenceVariety", m.SentenceVariety},
		{"logicalProgression", m.LogicalProgression},
	}
	low := named[0]
	for _, n := range named[1:] {
		if n.v < low.v {
			low = n
		}
	}
	return low.name
}

// ParagraphAnalysis is the feedback for one paragraph.
type ParagraphAnalysis struct {
	ParagraphNumber int      `json:"paragraphNumber"`
	Text            string   `json:"text"`
	Tags            []string `json:"tags"`
	Feedback        string   `json:"feedback"`
	IssueTypes      []string `json:"issueTypes"`
}

// StrengthsWeaknesses lists what works and what does not.
type StrengthsWeaknesses struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// Result is a full scoring of one essay.
type Result struct {
	Paragraphs           []ParagraphAnalysis `json:"paragraphAnalysis"`
	Metrics              Metrics             `json:"metrics"`
	StrengthsWeaknesses  StrengthsWeaknesses `json:"strengthsWeaknesses"`
	StrategicSuggestions []string            `json:"strategicSuggestions"`
}

// Comparison rates the change between two versions. Deltas are in [-1, 1];
// negative means regression.
type Comparison struct {
	ClarityDelta   float64  `json:"clarityDelta"`
	CoherenceDelta float64  `json:"coherenceDelta"`
	StructureDelta float64  `json:"structureDelta"`
	ArgumentDelta  float64  `json:"argumentDelta"`
	AnalysisDelta  float64  `json:"analysisDelta"`
	Improvements   []string `json:"improvements"`
}
