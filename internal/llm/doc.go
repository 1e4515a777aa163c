// Package llm contains adapters for invoking the planning model. It
// abstracts away provider-specific APIs and hands the raw model text to
// the planner layer for validation.
package llm
