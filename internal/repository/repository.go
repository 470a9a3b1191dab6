// Package repository holds the SQL run against the property table.
//
// Queries are built as plain strings with positional arguments so the
// builders can be tested without a database.
package repository
