/*

Process of compilation

Program Text ->
	parse ->
Syntax Tree (syntax) ->
	build ->
Abstract Syntax Tree (ast) ->
	front ->
Circuit (circuit) ->
	evaluate ->
Output Samples

Each function except main becomes a template circuit.
Every call embeds its own copy of the template as a part.

*/
package compiler
