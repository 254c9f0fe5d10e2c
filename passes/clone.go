package passes

import (
	"github.com/qadapt-io/qadapt/ir"
)

// cloneStream deep-copies a run of instructions. Operand references to
// instructions inside the run are remapped to the corresponding clones;
// references to values defined outside the run are shared.
func cloneStream(instrs []*ir.Instruction) []*ir.Instruction {
	remap := make(map[*ir.Instruction]*ir.Instruction, len(instrs))
	clones := make([]*ir.Instruction, 0, len(instrs))
	for _, instr := range instrs {
		clone := &ir.Instruction{
			Op:       instr.Op,
			Operands: make([]ir.Value, len(instr.Operands)),
			Location: instr.Location,
			Name:     instr.Name,
		}
		for i, operand := range instr.Operands {
			if def, ok := operand.(*ir.Instruction); ok {
				if mapped, found := remap[def]; found {
					clone.Operands[i] = mapped
					continue
				}
			}
			clone.Operands[i] = operand
		}
		remap[instr] = clone
		clones = append(clones, clone)
	}
	return clones
}
