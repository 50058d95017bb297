// Package style provides lint rules for Kotlin declaration style.
//
// Rules in this package:
//   - ProtectedMemberInFinalClass: protected members of classes that cannot be subclassed
//
// Kotlin classes are final unless marked open, so a class with none of the
// open, abstract or sealed modifiers has no subclasses. The eligibility check
// in this package relies on that default. A port to a language where classes
// are open by default has to invert it.
package style
