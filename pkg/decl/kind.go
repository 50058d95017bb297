package decl

// Kind identifies the syntactic category of a declaration node.
// The set is closed: Walk handles every value and panics on anything else.
type Kind int

// Declaration kinds.
const (
	KindFile Kind = iota
	KindClass
	KindInterface
	KindObject
	KindCompanionObject
	KindEnumEntry
	KindPrimaryConstructor
	KindSecondaryConstructor
	KindInitializer
	KindProperty
	KindFunction
	KindParameter
	KindTypeAlias

	kindCount // sentinel, keep last
)

var kindNames = [kindCount]string{
	KindFile:                 "file",
	KindClass:                "class",
	KindInterface:            "interface",
	KindObject:               "object",
	KindCompanionObject:      "companion object",
	KindEnumEntry:            "enum entry",
	KindPrimaryConstructor:   "primary constructor",
	KindSecondaryConstructor: "secondary constructor",
	KindInitializer:          "initializer",
	KindProperty:             "property",
	KindFunction:             "function",
	KindParameter:            "parameter",
	KindTypeAlias:            "type alias",
}

// String returns the Kotlin name of the kind.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// IsValid reports whether k is one of the declared kinds.
func (k Kind) IsValid() bool {
	return k >= 0 && k < kindCount
}

// IsClassLike reports whether nodes of this kind carry a declaration body and
// therefore implement ClassNode.
func (k Kind) IsClassLike() bool {
	switch k {
	case KindClass, KindInterface, KindObject, KindCompanionObject, KindEnumEntry:
		return true
	default:
		return false
	}
}
