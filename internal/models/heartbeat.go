package models

// Heartbeat is a single timestamped record of editing activity. Instances
// are treated as immutable once built; the offline queue and the wire
// format share this exact shape.
type Heartbeat struct {
	Timestamp string  `json:"timestamp"`
	Project   *string `json:"project"`
	Language  *string `json:"language"`
	File      *string `json:"file"`
	Branch    *string `json:"branch"`
	Editor    string  `json:"editor"`
	OS        string  `json:"os"`
}
