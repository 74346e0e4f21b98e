// Package core provides the business logic for the dashboard service.
//
// This package is the heart of the application, containing all domain logic
// independent of any UI or transport layer. It can be used by web handlers,
// CLI tools, or tests without modification.
//
// # Architecture
//
// The package is organized around a few key concepts:
//
//   - Service: The main entry point for all operations (upload, render,
//     export). It owns the in-memory session store.
//   - Session: One uploaded dataset plus its column partition, addressed by
//     a UUID and swept after a configurable idle TTL.
//   - Dashboard: The complete render result for one interaction. Rendering
//     is a pure function of (dataset, selections); no state accumulates
//     between requests.
//
// # Session Lifecycle
//
// A session is created from an uploaded CSV or XLSX file:
//
//  1. Client calls [Service.CreateSession] with the file bytes
//  2. The loader parses, normalizes headers, and types each column
//  3. The classifier partitions columns into numeric, categorical,
//     datetime, and excluded roles
//  4. A janitor goroutine drops sessions idle past the configured TTL
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE001-FILE005: File errors (format, type, size)
//   - VAL001-VAL003: Selection errors (columns, metrics, dates)
//   - SES001-SES002: Session errors (expired, store full)
//   - CHT001: Chart errors (nothing to draw)
package core
