// Package models defines the connection-profile data model: categories,
// connections with their display and redirection options, and the
// export/import document.
package models
