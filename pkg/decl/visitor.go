package decl

import "fmt"

// Visitor receives one callback per declaration kind. Each handler returns
// whether Walk should continue into the node's children.
type Visitor interface {
	VisitFile(n Node) bool
	VisitClass(n ClassNode) bool
	VisitInterface(n ClassNode) bool
	VisitObject(n ClassNode) bool
	VisitCompanionObject(n ClassNode) bool
	VisitEnumEntry(n ClassNode) bool
	VisitPrimaryConstructor(n Node) bool
	VisitSecondaryConstructor(n Node) bool
	VisitInitializer(n Node) bool
	VisitProperty(n Node) bool
	VisitFunction(n Node) bool
	VisitParameter(n Node) bool
	VisitTypeAlias(n Node) bool
}

// BaseVisitor is the default handler set: every kind recurses into its children.
// Embed it and override the kinds of interest.
type BaseVisitor struct{}

func (BaseVisitor) VisitFile(Node) bool                 { return true }
func (BaseVisitor) VisitClass(ClassNode) bool           { return true }
func (BaseVisitor) VisitInterface(ClassNode) bool       { return true }
func (BaseVisitor) VisitObject(ClassNode) bool          { return true }
func (BaseVisitor) VisitCompanionObject(ClassNode) bool { return true }
func (BaseVisitor) VisitEnumEntry(ClassNode) bool       { return true }
func (BaseVisitor) VisitPrimaryConstructor(Node) bool   { return true }
func (BaseVisitor) VisitSecondaryConstructor(Node) bool { return true }
func (BaseVisitor) VisitInitializer(Node) bool          { return true }
func (BaseVisitor) VisitProperty(Node) bool             { return true }
func (BaseVisitor) VisitFunction(Node) bool             { return true }
func (BaseVisitor) VisitParameter(Node) bool            { return true }
func (BaseVisitor) VisitTypeAlias(Node) bool            { return true }

// ContractError reports a tree that violates the Node contract, such as a
// class-kind node that does not implement ClassNode. Walk panics with it;
// lint.Analyzer recovers it and returns it as an error.
type ContractError struct {
	Kind    Kind
	Name    string
	Message string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("declaration tree contract violation at %s %q: %s", e.Kind, e.Name, e.Message)
}

// Walk dispatches n to the handler for its kind and, if the handler returns
// true, walks each child in order. A nil root is ignored.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	if dispatch(v, n) {
		WalkChildren(v, n)
	}
}

// WalkChildren walks every child of n without dispatching n itself. A nil
// child violates the Node contract and panics with *ContractError.
func WalkChildren(v Visitor, n Node) {
	for _, child := range n.Children() {
		if child == nil {
			panic(&ContractError{Kind: n.Kind(), Name: n.Name(), Message: "nil child declaration"})
		}
		Walk(v, child)
	}
}

func dispatch(v Visitor, n Node) bool {
	switch k := n.Kind(); k {
	case KindFile:
		return v.VisitFile(n)
	case KindClass:
		return v.VisitClass(mustClass(n))
	case KindInterface:
		return v.VisitInterface(mustClass(n))
	case KindObject:
		return v.VisitObject(mustClass(n))
	case KindCompanionObject:
		return v.VisitCompanionObject(mustClass(n))
	case KindEnumEntry:
		return v.VisitEnumEntry(mustClass(n))
	case KindPrimaryConstructor:
		return v.VisitPrimaryConstructor(n)
	case KindSecondaryConstructor:
		return v.VisitSecondaryConstructor(n)
	case KindInitializer:
		return v.VisitInitializer(n)
	case KindProperty:
		return v.VisitProperty(n)
	case KindFunction:
		return v.VisitFunction(n)
	case KindParameter:
		return v.VisitParameter(n)
	case KindTypeAlias:
		return v.VisitTypeAlias(n)
	default:
		panic(&ContractError{Kind: k, Name: n.Name(), Message: fmt.Sprintf("unknown node kind %d", int(k))})
	}
}

// AsClass returns n as a ClassNode, panicking with *ContractError when a
// class-like node does not implement the interface.
func AsClass(n Node) ClassNode {
	return mustClass(n)
}

func mustClass(n Node) ClassNode {
	c, ok := n.(ClassNode)
	if !ok {
		panic(&ContractError{Kind: n.Kind(), Name: n.Name(), Message: "node does not implement ClassNode"})
	}
	return c
}
