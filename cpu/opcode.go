package cpu

// CodeOp is an instruction mnemonic.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_INVALID = CodeOp(0)  // ???
	OP_MOV     = CodeOp(1)  // MOV
	OP_ADD     = CodeOp(2)  // ADD
	OP_SUB     = CodeOp(3)  // SUB
	OP_STR     = CodeOp(4)  // STR
	OP_SIT     = CodeOp(5)  // SIT
	OP_GOF     = CodeOp(6)  // GOF
	OP_JMP     = CodeOp(7)  // JMP
	OP_JMR     = CodeOp(8)  // JMR
	OP_RET     = CodeOp(9)  // RET
	OP_LIF     = CodeOp(10) // LIF
	OP_HLT     = CodeOp(11) // HLT
	OP_PSH     = CodeOp(12) // PSH
	OP_POP     = CodeOp(13) // POP
)

// opMap maps mnemonics to opcodes. Mnemonics are case sensitive.
var opMap = map[string]CodeOp{
	"MOV": OP_MOV,
	"ADD": OP_ADD,
	"SUB": OP_SUB,
	"STR": OP_STR,
	"SIT": OP_SIT,
	"GOF": OP_GOF,
	"JMP": OP_JMP,
	"JMR": OP_JMR,
	"RET": OP_RET,
	"LIF": OP_LIF,
	"HLT": OP_HLT,
	"PSH": OP_PSH,
	"POP": OP_POP,
}

// opDesc is the trace description of each executed opcode.
var opDesc = map[CodeOp]string{
	OP_MOV: "Move to Register",
	OP_ADD: "Addition",
	OP_SUB: "Subtraction",
	OP_STR: "Store to Memory",
	OP_SIT: "Set Flag",
	OP_GOF: "Conditional Jump",
	OP_JMP: "Jump",
	OP_JMR: "Jump and Link",
	OP_RET: "Return",
	OP_LIF: "Execute Next If Flag",
	OP_HLT: "Halt",
	OP_PSH: "Push to Stack",
	OP_POP: "Pop from Stack",
}

// OpcodeOf returns the opcode of a mnemonic, or OP_INVALID.
func OpcodeOf(mnemonic string) CodeOp {
	op, ok := opMap[mnemonic]
	if !ok {
		return OP_INVALID
	}

	return op
}

// Desc returns the trace description of the opcode.
func (op CodeOp) Desc() string {
	return opDesc[op]
}

// KeepsCond returns true if the opcode leaves the condition flag for the
// next instruction.
func (op CodeOp) KeepsCond() bool {
	return op == OP_SIT || op == OP_STR
}
