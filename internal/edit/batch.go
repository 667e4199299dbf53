package edit

import (
	"clipforge/internal/editconfig"
)

// Rejection records one instruction that failed validation.
type Rejection struct {
	Index       int         `json:"index"`
	Instruction Instruction `json:"instruction"`
	Reason      string      `json:"reason"`
}

// BatchResult reports the outcome of applying a batch of instructions.
type BatchResult struct {
	Applied  []Instruction `json:"applied"`
	Rejected []Rejection   `json:"rejected"`
}

// AnyApplied reports whether at least one instruction succeeded. Callers
// persist the returned tree only when this is true.
func (r BatchResult) AnyApplied() bool {
	return len(r.Applied) > 0
}

// ApplyBatch validates and applies each instruction independently. An
// instruction is applied or rejected on its own merit; one rejection never
// aborts the rest. When every instruction is rejected the returned tree is
// the input tree unchanged.
func ApplyBatch(tree editconfig.Tree, instructions []Instruction) (editconfig.Tree, BatchResult) {
	result := BatchResult{}
	current := tree
	for i, instruction := range instructions {
		if err := Validate(instruction); err != nil {
			result.Rejected = append(result.Rejected, Rejection{
				Index:       i,
				Instruction: instruction,
				Reason:      err.Error(),
			})
			continue
		}
		current = Apply(current, instruction)
		result.Applied = append(result.Applied, instruction)
	}
	if !result.AnyApplied() {
		return tree, result
	}
	return current, result
}
