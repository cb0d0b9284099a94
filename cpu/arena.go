package cpu

// Address space layout.
const (
	WORD_SIZE        = 4          // Bytes per word.
	ADDR_INSTRUCTION = 0x00000000 // First instruction load address.
	ADDR_DATA        = 0x00F00000 // First data address.
	ADDR_STACK       = 0xFFFFFFFF // Address of the first stack push.
)

// SENTINEL is returned for memory misses and pops of an empty stack.
const SENTINEL = int32(-1)
