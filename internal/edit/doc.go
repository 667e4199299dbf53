// Package edit validates and applies edit instructions against a
// configuration tree.
//
// Instructions arrive as untrusted structured output from the generation
// collaborator. The validator is the guardrail: it checks each instruction
// against the preset registry and fixed property allow-lists before the
// mutator touches the tree. The mutator itself is not a second line of
// defense; callers must validate first.
//
// Mutation is copy-on-write. Apply returns a new tree and never modifies its
// input, so a batch can be abandoned partway without corrupting the original.
package edit
