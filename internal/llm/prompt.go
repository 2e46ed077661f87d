package llm

import "fmt"

// IcebreakerPrompt builds the prompt for conversation starter generation
func IcebreakerPrompt(context, personality string) string {
	return fmt.Sprintf(`
Generate 3 natural conversation starters.

Context: %s
Personality: %s

Format exactly like:

Icebreaker 1:
Follow up:
If awkward:

Icebreaker 2:
Follow up:
If awkward:

Icebreaker 3:
Follow up:
If awkward:

No explanations.
`, context, personality)
}

// SuggestRepliesPrompt builds the prompt for reply suggestions to a received
// message
func SuggestRepliesPrompt(message string) string {
	return fmt.Sprintf(`
Someone said:
"%s"

Generate:
- 3 natural follow-up replies
- 1 empathetic reply
- 1 light humorous reply

Format exactly like:

Follow-up 1:
Follow-up 2:
Follow-up 3:
Empathy:
Humor:

No extra explanation.
Keep it realistic and human.
`, message)
}

// PracticeChatPrompt builds the prompt for one practice conversation turn
func PracticeChatPrompt(message string) string {
	return fmt.Sprintf(`
You are a friendly AI helping someone practice conversation skills.

User said:
"%s"

Respond naturally like a real human.
Keep it conversational.
Do not be robotic.
Keep it short (2-4 sentences max).
`, message)
}
