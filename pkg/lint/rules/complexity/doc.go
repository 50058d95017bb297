// Package complexity provides lint rules that measure declaration size.
//
// Rules in this package:
//   - LongParameterList: functions with more parameters than a threshold
package complexity
