package compose

import (
	"fmt"
	"strings"
)

// MinWords is the length the prompt asks the model to reach.
const MinWords = 200

const promptTemplate = `Write a complete, professional, and formal email based on these details:

- Recipient: %s
- Purpose: %s
- Key Points: %s

The email should include:
1. A clear and appropriate subject line.
2. A greeting using the recipient's name.
3. A structured body addressing the purpose and key points.
4. A polite closing statement.
5. At least %d words.

Return only the email content without placeholders or suggestions.`

// BuildPrompt embeds the request fields in the fixed email-writing
// instructions.
func BuildPrompt(r Request) string {
	return fmt.Sprintf(promptTemplate,
		oneLine(r.RecipientName),
		oneLine(r.EmailPurpose),
		r.KeyPoints,
		MinWords,
	)
}

// oneLine collapses line breaks so a single-line field cannot start a new
// bullet in the prompt.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
