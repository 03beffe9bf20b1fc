package gateway

import (
	"fmt"
	"net/url"
	"strings"
)

const imageServiceURL = "https://image.pollinations.ai/prompt/"

var imageTriggers = []string{"/image", "generate image", "draw"}

// ImagePrompt reports whether message starts with an image trigger
// (case-insensitive) and returns the remaining text as the prompt.
// A trigger with nothing after it is not an image request.
func ImagePrompt(message string) (string, bool) {
	msg := strings.TrimSpace(message)
	for _, trigger := range imageTriggers {
		if len(msg) < len(trigger) || !strings.EqualFold(msg[:len(trigger)], trigger) {
			continue
		}
		rest := msg[len(trigger):]
		// "drawing tips" is not an image request
		if rest != "" && rest[0] != ' ' && rest[0] != ':' {
			continue
		}
		prompt := strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		if prompt == "" {
			return "", false
		}
		return prompt, true
	}
	return "", false
}

// ImageReply is the markdown reply pointing at the image-by-prompt service.
func ImageReply(prompt string) string {
	imageURL := imageServiceURL + url.PathEscape(prompt)
	return fmt.Sprintf("Here is the image for \"%s\":\n\n![%s](%s)", prompt, prompt, imageURL)
}
