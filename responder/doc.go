// Package responder writes handler output: raw bundle files, JSON payloads,
// and RFC 9457 problem documents carrying ULID trace identifiers. Failures
// are logged through slog at a level chosen per HTTP status.
package responder
