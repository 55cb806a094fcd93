// Package app wires a scenario to the planner, the simulated executor and
// the optional metrics endpoint and viewer stream, and reports the outcome.
package app
