package engine

import "strings"

// ContractPlaceholder marks where the contract excerpt goes in an instruction.
const ContractPlaceholder = "{contract}"

// ComposePrompt inserts the contract excerpt into the instruction. Instructions without
// a placeholder get the excerpt appended after a blank line.
func ComposePrompt(instruction, excerpt string) string {
	if strings.Contains(instruction, ContractPlaceholder) {
		return strings.ReplaceAll(instruction, ContractPlaceholder, excerpt)
	}
	return instruction + "\n\n" + excerpt
}
