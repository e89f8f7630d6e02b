// internal/service/template_service.go
package service

import (
	"strings"
)

// RenderTemplate substitutes {placeholder} tokens into a message body. Job
// payloads use it to personalize the text body with the contact's name.
func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}
