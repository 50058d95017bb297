package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	// Import rule categories - each registers its rules via init()
	_ "github.com/leapstack-labs/ktsmell/pkg/lint/rules/complexity"
	_ "github.com/leapstack-labs/ktsmell/pkg/lint/rules/style"
)
