package router

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// plannerReply is the JSON verdict the planning completion produces.
// Parameters is loosely typed because models sometimes emit numbers
// where strings were asked for.
type plannerReply struct {
	Endpoint   string         `json:"endpoint"`
	Parameters map[string]any `json:"parameters"`
	Missing    string         `json:"missing"`
}

// stringParams coerces all parameter values to strings.
func (p *plannerReply) stringParams() map[string]string {
	out := make(map[string]string, len(p.Parameters))
	for k, v := range p.Parameters {
		switch t := v.(type) {
		case string:
			out[k] = t
		case float64:
			out[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(t)
		case nil:
			// skip
		default:
			if b, err := json.Marshal(t); err == nil {
				out[k] = string(b)
			}
		}
	}
	return out
}

// extractPlan pulls the planner's JSON object out of the raw completion
// text. Models wrap output in code fences or prose often enough that a
// bare json.Unmarshal is not good enough.
func extractPlan(raw string) (*plannerReply, error) {
	s := stripFences(strings.TrimSpace(raw))

	var reply plannerReply
	if err := json.Unmarshal([]byte(s), &reply); err == nil {
		return &reply, nil
	}

	obj, ok := outermostObject(s)
	if !ok {
		return nil, errors.New("no JSON object in planner output")
	}
	if err := json.Unmarshal([]byte(obj), &reply); err != nil {
		return nil, errors.New("invalid JSON in planner output")
	}
	return &reply, nil
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// drop the language tag line
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// outermostObject returns the substring from the first '{' to its
// matching closing brace, tracking strings so braces in values don't
// unbalance the count.
func outermostObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
