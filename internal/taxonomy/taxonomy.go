// Package taxonomy defines the fixed set of lung tissue classes the
// trained model distinguishes, together with the static display
// metadata attached to a diagnosis.
package taxonomy

import "fmt"

// Severity tiers.
const (
	SeverityHigh = "high"
	SeverityLow  = "low"
)

// Info is the display metadata served alongside a predicted class.
type Info struct {
	Emoji       string `json:"emoji"`
	Color       string `json:"color"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Severity    string `json:"severity"`
}

// Class is one entry of the class table.
type Class struct {
	Name string
	Info
}

// classes is index-aligned with the trained model's output vector:
// 0 Adenocarcinoma, 1 Normal, 2 Squamous Cell Carcinoma. The order is
// a contract with the model artifact and must not change.
var classes = [...]Class{
	{
		Name: "Adenocarcinoma",
		Info: Info{
			Emoji:       "🔴",
			Color:       "#FF6B6B",
			Description: "A type of non-small cell lung cancer that begins in mucus-secreting cells.",
			Action:      "Immediate consultation with oncologist recommended.",
			Severity:    SeverityHigh,
		},
	},
	{
		Name: "Normal",
		Info: Info{
			Emoji:       "🟢",
			Color:       "#51CF66",
			Description: "Healthy lung tissue with no signs of malignancy.",
			Action:      "No immediate action required. Continue regular monitoring.",
			Severity:    SeverityLow,
		},
	},
	{
		Name: "Squamous Cell Carcinoma",
		Info: Info{
			Emoji:       "🟠",
			Color:       "#FF8C42",
			Description: "A type of non-small cell lung cancer that begins in flat cells lining the airways.",
			Action:      "Immediate consultation with oncologist recommended.",
			Severity:    SeverityHigh,
		},
	},
}

// Count returns the number of classes the model must emit.
func Count() int { return len(classes) }

// Classes returns the class table in model output order.
func Classes() []Class { return classes[:] }

// Names returns the class names in model output order.
func Names() []string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.Name
	}
	return names
}

// MismatchError reports a probability vector whose width disagrees with
// the class table. It points at a configuration bug, not bad input.
type MismatchError struct {
	Want int
	Got  int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("class count mismatch: model emits %d classes, taxonomy defines %d", e.Got, e.Want)
}
