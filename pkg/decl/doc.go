// Package decl defines the declaration tree of one Kotlin source file and the
// visitor contract rules use to traverse it.
//
// # Tree
//
// A tree is produced once per file by pkg/parser and is immutable afterwards.
// Rules consume it through the Node and ClassNode interfaces, never through the
// concrete Decl type, so alternative front ends can supply their own nodes.
//
// Only declarations are modelled. Function bodies, property initializers and
// expression bodies are skipped by the parser; local declarations inside them
// are therefore not part of the tree.
//
// # Traversal
//
// Walk dispatches on Node.Kind with an exhaustive switch. Each Visitor handler
// returns whether Walk should continue into the node's children:
//
//	type classCounter struct {
//		decl.BaseVisitor
//		n int
//	}
//
//	func (c *classCounter) VisitClass(n decl.ClassNode) bool {
//		c.n++
//		return true // keep walking into nested classes
//	}
//
// BaseVisitor returns true everywhere, so an embedding visitor only overrides the
// kinds it cares about. A handler that returns false prunes the subtree and may
// call Walk on selected children itself.
package decl
