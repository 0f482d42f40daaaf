package operation

// OperationPrototype is the operand/parameter/arity view of one
// registered operation name, exposed to callers so they can see the
// canonical shape of a name without picking a specific candidate
// signature (spec §3, §4.3 "operation_prototype").
type OperationPrototype struct {
	Name          string
	OperandCount  int
	Operands      []string
	Parameters    []string
}

// PrototypeOf extracts the OperationPrototype view from a concrete
// Operation, representing it (spec §4.3: "The choice is deterministic
// (first registered)" — the kernel picks which Operation to pass here).
func PrototypeOf(op Operation) OperationPrototype {
	return OperationPrototype{
		Name:         op.Name(),
		OperandCount: op.OperandCount(),
		Operands:     op.Operands(),
		Parameters:   op.Parameters(),
	}
}
