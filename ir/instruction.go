package ir

// Instruction tags a structured IR operation.
type Instruction uint16

const (
	InstAbsolute Instruction = iota
	InstAdd
	InstBarrier
	InstBitwiseAnd
	InstBitwiseNot
	InstBitwiseOr
	InstBitwiseXor
	InstCall
	InstCeiling
	InstClamp
	InstCompareEqual
	InstCompareGreater
	InstCompareGreaterOrEqual
	InstCompareLess
	InstCompareLessOrEqual
	InstCompareNotEqual
	InstCosine
	InstDiscard
	InstDivide
	InstFloor
	InstFusedMultiplyAdd
	InstLogicalAnd
	InstLogicalNot
	InstLogicalOr
	InstMaximum
	InstMinimum
	InstMultiply
	InstNegate
	InstReciprocalSquareRoot
	InstReturn
	InstShiftLeft
	InstShiftRightS32
	InstShiftRightU32
	InstSine
	InstSquareRoot
	InstSubtract
)

// IsBarrier reports whether the instruction is a synchronization barrier.
// Barriers are subject to the divergent control-flow safeguard during
// generation.
func (i Instruction) IsBarrier() bool {
	return i == InstBarrier
}
