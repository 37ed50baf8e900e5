/* Package tinyscript implements an embeddable scripting language for
resource-constrained hosts.

A host program hands the interpreter a fixed-capacity arena and a block
of source text; tokenizing, parsing, and evaluation happen in a single
recursive-descent pass directly against that arena. There is no
separate AST, no bytecode, and no garbage collector: control-flow
constructs (if, while, user procedures) work by capturing the source
substring of their body and re-parsing it later, and local scopes are
expressed by saving and restoring the symbol-stack top.

The zero-value entry point is New, which returns an *Interp configured
with the standard keywords and operator table described in spec.md.
Host code calls Define to register constants, native functions, and
additional operators before calling Run on script source.

See SPEC_FULL.md and DESIGN.md in the repository root for the full
design and the grounding ledger against the example corpus this module
was built from.
*/
package tinyscript
