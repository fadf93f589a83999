package extract

// extractionPrompt is the fixed instruction for the structured-extraction
// service. The model must answer with a single raw JSON object and nothing
// else; anything it gets wrong is repaired or defaulted downstream.
const extractionPrompt = `You are a strict JSON parser for a personal expense tracker.
The user writes one informal sentence describing an expense.

You MUST respond with ONLY raw JSON. No explanation. No markdown fences.

Use this JSON format:

{
  "amount": number (the amount spent, e.g. 3.50),
  "currency": "3-letter code, default USD",
  "merchant": "short merchant or place name, empty string if unknown",
  "category": "coffee" | "food" | "groceries" | "transport" | "subscriptions" | "shopping" | "bills" | "rent" | "college" | "fun" | "other",
  "created_at_iso": "ISO-8601 timestamp the user referred to, or empty string",
  "notes": "anything noteworthy the user said, or empty string"
}

When a field is unclear or missing, use the default shown above. NEVER guess
an amount that is not in the text.

User text:
`
