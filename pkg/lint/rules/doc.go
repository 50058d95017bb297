// Package rules provides the built-in Kotlin lint rules.
//
// Rules are organized by category:
//   - style: declaration style (ProtectedMemberInFinalClass)
//   - complexity: declaration size (LongParameterList)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/ktsmell/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/leapstack-labs/ktsmell/pkg/lint/rules/style"
package rules
