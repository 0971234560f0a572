// Package convert runs a complete pack conversion.
//
// A Converter copies the input pack into a private workspace, runs the
// rewrite passes over it in order and writes the result to the output
// location. The workspace is removed on every exit path, and nothing is
// written to the output unless every pass succeeded.
package convert
