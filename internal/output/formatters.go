// Package output provides output formatting utilities for the Love Monster CLI.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ometa/lovemonster-cli-go/internal/api"
	"github.com/ometa/lovemonster-cli-go/internal/core"
)

// PrintLoves writes one formatted line per love.
func PrintLoves(loves []api.Love) {
	for _, love := range loves {
		fmt.Println(FormatLove(love))
	}
}

// FormatLove renders a love as a single text line.
func FormatLove(love api.Love) string {
	line := fmt.Sprintf("[%s] %s -> %s: %s",
		core.RelativeAge(love.CreatedAt), love.Lover.Username, love.Lovee.Username, love.Reason)
	if love.HasMessage() {
		line += fmt.Sprintf(" %q", love.Message)
	}
	if love.IsPrivate {
		line += " (private)"
	}
	return line
}

// LovesJSON converts loves back to wire-shaped maps for raw output.
func LovesJSON(loves []api.Love) []map[string]interface{} {
	result := make([]map[string]interface{}, 0, len(loves))
	for _, love := range loves {
		obj := map[string]interface{}{
			"reason":          love.Reason,
			"created_at":      love.CreatedAt.Format(core.WireTimestampFmt),
			"private_message": love.IsPrivate,
			"user_from":       userJSON(love.Lover),
			"user_to":         userJSON(love.Lovee),
		}
		if love.HasMessage() {
			obj["message"] = love.Message
		}
		result = append(result, obj)
	}
	return result
}

func userJSON(user *api.User) map[string]interface{} {
	obj := map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
	}
	if user.Name != "" {
		obj["name"] = user.Name
	}
	return obj
}

// PrintJSON prints a single item as formatted JSON.
func PrintJSON(item interface{}) {
	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
