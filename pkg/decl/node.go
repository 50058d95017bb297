package decl

import "github.com/leapstack-labs/ktsmell/pkg/token"

// Node is a declaration in the tree.
type Node interface {
	// Kind returns the syntactic category of the declaration.
	Kind() Kind
	// Name returns the declared name, or "" for anonymous declarations
	// (initializers, unnamed companion objects report "Companion").
	Name() string
	// Modifiers returns the modifier keywords written on the declaration.
	Modifiers() ModifierSet
	// HasModifier reports whether m is written on the declaration.
	HasModifier(m Modifier) bool
	// Children returns the directly nested declarations in source order.
	Children() []Node
	// Span covers the declaration from its first modifier to its last token.
	Span() token.Span
}

// ClassNode is a declaration with a body: classes, interfaces, objects,
// companion objects and enum entries.
type ClassNode interface {
	Node
	// PrimaryConstructor returns the primary constructor, or nil when absent.
	PrimaryConstructor() Node
	// BodyDeclarations returns the declarations inside the braces in source order.
	BodyDeclarations() []Node
	// CompanionObjects returns the companion objects declared in the body.
	CompanionObjects() []Node
}

// Decl is the immutable Node implementation produced by the parser.
type Decl struct {
	kind      Kind
	name      string
	modifiers ModifierSet
	span      token.Span
	primary   Node
	members   []Node
}

var _ ClassNode = (*Decl)(nil)

// NewDecl creates a leaf-or-container declaration. For class-like kinds use NewClass.
func NewDecl(kind Kind, name string, mods ModifierSet, span token.Span, children ...Node) *Decl {
	return &Decl{
		kind:      kind,
		name:      name,
		modifiers: mods,
		span:      span,
		members:   children,
	}
}

// NewClass creates a class-like declaration. primary may be nil.
func NewClass(kind Kind, name string, mods ModifierSet, span token.Span, primary Node, body []Node) *Decl {
	return &Decl{
		kind:      kind,
		name:      name,
		modifiers: mods,
		span:      span,
		primary:   primary,
		members:   body,
	}
}

// Kind implements Node.
func (d *Decl) Kind() Kind { return d.kind }

// Name implements Node.
func (d *Decl) Name() string { return d.name }

// Modifiers implements Node.
func (d *Decl) Modifiers() ModifierSet { return d.modifiers }

// HasModifier implements Node.
func (d *Decl) HasModifier(m Modifier) bool { return d.modifiers.Has(m) }

// Span implements Node.
func (d *Decl) Span() token.Span { return d.span }

// Children implements Node. For class-like declarations the primary
// constructor, when present, comes first.
func (d *Decl) Children() []Node {
	if d.primary == nil {
		return d.members
	}
	out := make([]Node, 0, len(d.members)+1)
	out = append(out, d.primary)
	return append(out, d.members...)
}

// PrimaryConstructor implements ClassNode.
func (d *Decl) PrimaryConstructor() Node { return d.primary }

// BodyDeclarations implements ClassNode.
func (d *Decl) BodyDeclarations() []Node { return d.members }

// CompanionObjects implements ClassNode.
func (d *Decl) CompanionObjects() []Node {
	var out []Node
	for _, m := range d.members {
		if m != nil && m.Kind() == KindCompanionObject {
			out = append(out, m)
		}
	}
	return out
}

// Parameters returns the parameter children of a function or constructor.
func Parameters(n Node) []Node {
	var out []Node
	for _, c := range n.Children() {
		if c.Kind() == KindParameter {
			out = append(out, c)
		}
	}
	return out
}

// File is the root of a declaration tree.
type File struct {
	Decl
	Path    string // path the source was read from
	Package string // declared package, "" for the default package
}

// NewFile creates the root node for one source file.
func NewFile(path, pkg string, span token.Span, decls ...Node) *File {
	return &File{
		Decl: Decl{
			kind:    KindFile,
			name:    path,
			span:    span,
			members: decls,
		},
		Path:    path,
		Package: pkg,
	}
}
