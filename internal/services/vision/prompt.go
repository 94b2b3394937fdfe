package vision

import "strings"

// SystemPrompt frames the model as an inventory cataloging assistant.
const SystemPrompt = "You are an assistant that helps catalog and describe African import products for inventory."

// instructionTemplate enumerates the ten output fields. The category line is
// filled from the fixed label set so prompt and validation cannot drift.
const instructionTemplate = `Given an image of a product we sell, analyze the item and generate a JSON output with the following fields: ` +
	`- "name": A descriptive name. ` +
	`- "description": A concise and detailed product description in bullet points. ` +
	`- "category": One of [%CATEGORIES%]. ` +
	`- "material": Primary materials. ` +
	`- "color": Main colors. ` +
	`- "dimensions": Approximate dimensions. ` +
	`- "origin_source": Likely origin based on style. ` +
	`- "import_cost": Best estimated import price in USD or 'null'. ` +
	`- "retail_price": Best estimated retail price in USD or 'null'. ` +
	`- "key_tags": Important keywords/phrases for product discovery.` +
	`Provide only the JSON output without any markdown formatting.`

// InstructionPrompt renders the user instruction block with the allowed
// category labels.
func InstructionPrompt(categories []string) string {
	quoted := make([]string, len(categories))
	for i, label := range categories {
		quoted[i] = `"` + label + `"`
	}
	return strings.ReplaceAll(instructionTemplate, "%CATEGORIES%", strings.Join(quoted, ", "))
}
