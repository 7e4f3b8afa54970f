package dynobject

// Handles to the basic atomic types.
type (
	Bool    = AtomHandle[bool]
	Int     = AtomHandle[int]
	Int8    = AtomHandle[int8]
	Int16   = AtomHandle[int16]
	Int32   = AtomHandle[int32]
	Int64   = AtomHandle[int64]
	Uint    = AtomHandle[uint]
	Uint8   = AtomHandle[uint8]
	Uint16  = AtomHandle[uint16]
	Uint32  = AtomHandle[uint32]
	Uint64  = AtomHandle[uint64]
	Float32 = AtomHandle[float32]
	Float64 = AtomHandle[float64]
)
