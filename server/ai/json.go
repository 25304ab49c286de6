package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON pulls a JSON document out of an LLM free-text reply.
// Models frequently wrap the document in a markdown fence or surround it
// with prose; the fence is stripped first, then the reply is narrowed to
// the outermost braces.
func ExtractJSON(reply string) string {
	reply = strings.TrimSpace(reply)

	if strings.HasPrefix(reply, "```") {
		lines := strings.Split(reply, "\n")
		var jsonLines []string
		inJSON := false
		for _, line := range lines {
			if strings.HasPrefix(line, "```") {
				inJSON = !inJSON
				continue
			}
			if inJSON {
				jsonLines = append(jsonLines, line)
			}
		}
		reply = strings.Join(jsonLines, "\n")
	}

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start >= 0 && end > start {
		reply = reply[start : end+1]
	}
	return strings.TrimSpace(reply)
}

// DecodeReply extracts and unmarshals the JSON document inside a reply.
func DecodeReply(reply string, out any) error {
	doc := ExtractJSON(reply)
	if doc == "" {
		return fmt.Errorf("reply contains no JSON document")
	}
	if err := json.Unmarshal([]byte(doc), out); err != nil {
		return fmt.Errorf("decoding reply JSON: %w", err)
	}
	return nil
}
