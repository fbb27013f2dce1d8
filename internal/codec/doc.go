// Package codec converts album lists between their JSON file
// representations and in-memory model values.
//
// Two formats exist:
//
//   - The current format (.sush): a versioned JSON object with a
//     metadata block and an albums array carrying ISO dates, 1-based
//     ranks, rank-derived points and inline base64 cover art. This is
//     the only format the codec writes.
//
//   - The legacy format (.json): a bare JSON array of album objects
//     with DD-MM-YYYY dates. Read-only; it exists for import and
//     migration.
//
// # Error policy
//
// Whole-file problems (unreadable JSON) surface as *ImportError or
// *ExportError. Per-row problems never abort a list: a bad date
// becomes today's date, a corrupt cover payload becomes no cover, and
// a newer-than-supported format version is read best-effort. One bad
// row in a sixty-album list must not block the other fifty-nine.
//
// # Points
//
// Points are a derived export convenience looked up from an injectable
// PointsTable: rank 1 scores highest, and ranks beyond the table floor
// to 1 point. Points are never used for ordering; the albums' order in
// the file is the ranking.
package codec
