package compare

import (
	"github.com/goccy/go-json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
	// Summary leaves out each scenario's full calculation result and keeps
	// only the comparison metrics.
	Summary bool
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	v := compSet
	if jf.Summary {
		v = summarize(compSet)
	}

	marshal := json.Marshal
	if jf.Pretty {
		marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
	}
	data, err := marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// summarize copies a set without the full calculation results
func summarize(compSet *ComparisonSet) *ComparisonSet {
	out := *compSet
	if compSet.BaseResult != nil {
		base := *compSet.BaseResult
		base.Result = nil
		out.BaseResult = &base
	}
	out.AlternativeResults = make([]ComparisonResult, len(compSet.AlternativeResults))
	for i, alt := range compSet.AlternativeResults {
		alt.Result = nil
		out.AlternativeResults[i] = alt
	}
	return &out
}
