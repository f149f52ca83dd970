package extract

import (
	"fmt"
	"strings"
)

// buildInstruction composes the extraction instruction sent alongside the
// frame images. The schema conventions here (truncation marking, empty
// array on failure) are what the reconciler downstream relies on.
func buildInstruction(frameCount int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"The %d attached images are consecutive viewport screenshots of a product page, ordered top to bottom.\n\n",
		frameCount))
	sb.WriteString("Transcribe every customer review visible in the screenshots. Respond with a single JSON object of this exact shape:\n\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"reviews\": [\n")
	sb.WriteString("    {\"title\": \"...\", \"body\": \"...\", \"rating\": 5, \"reviewer\": \"...\"}\n")
	sb.WriteString("  ]\n")
	sb.WriteString("}\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- \"title\": the review headline; use an empty string if the review has none.\n")
	sb.WriteString("- \"body\": the review text exactly as shown. If the text is visibly cut off, transcribe what is visible and append \" [truncated]\". Never invent the missing part.\n")
	sb.WriteString("- \"rating\": the star rating as a number (1-5). Use 0 if no rating is shown.\n")
	sb.WriteString("- \"reviewer\": the author's display name; empty string if not shown.\n")
	sb.WriteString("- A review split across two screenshots is one review; do not duplicate it.\n")
	sb.WriteString("- If no reviews are visible anywhere, respond with {\"reviews\": []}.\n")
	sb.WriteString("- Respond with the JSON object only, no surrounding commentary.\n")

	return sb.String()
}
