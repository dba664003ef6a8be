// Package units owns the dimension records that numeric deck items refer to.
//
// A Registry maps dimension names (Length, Pressure, ...) to the factor that
// converts one native unit of that dimension into SI. Items never copy these
// records; they hold Handles, which resolve the factor through the registry
// when normalization runs. Compound dimensions such as "Length*Length/Time"
// are parsed on demand and memoized in the registry.
//
// The built-in METRIC, FIELD and LAB systems cover the dimensions used by
// reservoir simulation decks. Custom systems can be declared in HCL and loaded
// with LoadHCL.
package units
