package llm

import "strings"

// ExtractJSON strips markdown fences and chatter around the first JSON object
// in a model reply. The result is not guaranteed to be valid JSON.
func ExtractJSON(raw string) string {
	raw = StripFences(raw)
	if i := strings.Index(raw, "{"); i >= 0 {
		if j := strings.LastIndex(raw, "}"); j > i {
			return raw[i : j+1]
		}
	}
	return raw
}

// StripFences removes a surrounding ```lang ... ``` block if present.
func StripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "```") {
		return raw
	}
	start := strings.Index(raw, "```") + 3
	if nl := strings.IndexByte(raw[start:], '\n'); nl >= 0 {
		// language tag on the opening fence line
		if tag := strings.TrimSpace(raw[start : start+nl]); !strings.ContainsAny(tag, " {") {
			start += nl + 1
		}
	}
	end := strings.LastIndex(raw, "```")
	if end <= start {
		return strings.TrimSpace(raw[start:])
	}
	return strings.TrimSpace(raw[start:end])
}
