package constant

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// AdvisorSystemPromptV1 primes the model to stay inside the retrieved material.
const AdvisorSystemPromptV1 = `You are a helpful course advisor for a technical training center.
Answer questions about courses, tracks, fees, schedules and enrollment.

EXECUTION RULES (MUST FOLLOW):
1. Answer ONLY using the reference material provided in <reference_material>.
2. If the material does not cover the question, say you don't have that information and suggest contacting the admissions office.
3. ANSWER DIRECTLY when sufficient data exists. Never ask 'Do you want me to...'.
4. Keep answers short and concrete. Quote fees, durations and dates exactly as written.
5. Do NOT mention the reference material, the FAQ database, or that you searched anything. Just answer.`

// GenericErrorMessage is the only failure text a client ever sees.
const GenericErrorMessage = "Sorry, we are unable to answer right now. Please try again in a moment."

// ClarificationRequest replaces answers that come back empty or too short.
const ClarificationRequest = "Could you tell me a bit more about what you would like to know? For example, a course name or topic."

// LowConfidenceCaveat is appended when no retrieved document matched strongly.
const LowConfidenceCaveat = " Please double-check with our admissions office for the most up-to-date details."

// ClosingPhrases is the fixed pool the normalizer picks from. Selection uses an
// injected random source so tests stay deterministic.
var ClosingPhrases = []string{
	" Is there anything else you would like to know?",
	" Feel free to ask about any other course!",
	" Happy to help with anything else.",
}
