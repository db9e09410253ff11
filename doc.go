// Package lummu is the Composition Root for the Lummu personal toolkit.
//
// It connects three small features (a notes store, a four-function
// calculator and a background preference) to a pluggable key-value storage
// using the Hexagonal Architecture pattern.
//
// Features:
//
//   - **Notes**: create, update, delete and search tagged notes, most recent first.
//   - **Calculator**: an immediate-execution engine with a ten-entry history.
//   - **Background**: preset images, CSS gradients or a custom image URL.
//   - **Pluggable Storage**: filesystem (optionally versioned with Git), SQLite or in-memory.
//
// Every mutation persists the whole collection under a well-known key
// ("lummu-notes", "lummu-background"). Persistence failures are logged and
// swallowed: the in-memory state stays authoritative for the session.
//
// Usage:
//
//	app, err := lummu.New("./data",
//		lummu.WithAutoInit(true),
//		lummu.WithLogger(logger),
//	)
//
//	note, err := app.Notes.Create(ctx, "Groceries", "milk, eggs", "home, errands")
package lummu
