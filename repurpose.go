// Package repurpose turns a social-media post into three LinkedIn-ready
// rewrites. It scrapes the post from Twitter/X, LinkedIn, or Reddit, builds a
// generation prompt, calls a text-generation backend, and recovers exactly
// three variations from the backend's free-form answer.
//
// This package contains domain types, interfaces, and the pure parts of the
// pipeline (routing, prompt building, variation parsing) following Ben
// Johnson's Standard Package Layout. Implementations live in subdirectories
// named after their primary dependency (e.g., goquery/, gjson/, gemini/).
package repurpose
