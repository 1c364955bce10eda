package command

// Success indicates a successful command execution.
const Success int = 0

// Failure covers every unsuccessful execution: bad flags, a missing input file, an unknown engine name,
// configuration problems, and mid-run I/O errors. The tool deliberately collapses its failure modes to a
// single code so shell callers only need to test for non-zero.
const Failure int = 1
